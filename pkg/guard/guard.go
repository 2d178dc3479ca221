package guard

import (
	"log/slog"

	"github.com/omeeai/appshell/pkg/logger"
	"github.com/omeeai/appshell/pkg/session"
)

// State is the guard's view of the session, derived from a store snapshot.
type State string

const (
	// StatePending means the bootstrap has not resolved; no decision is
	// finalized and consumers must suspend rendering, never redirect.
	StatePending State = "pending"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// StateOf derives the guard state from a session snapshot. A failed
// bootstrap leaves no user and therefore maps to StateAnonymous; the guard
// does not distinguish "never logged in" from "session check failed".
func StateOf(snap session.Snapshot) State {
	switch {
	case snap.Loading:
		return StatePending
	case snap.Authenticated():
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

// Action is the kind of decision the guard makes for a route.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionSuspend  Action = "suspend"
	ActionRedirect Action = "redirect"
)

// Decision is the guard's verdict for one (state, route) pair.
type Decision struct {
	Action Action
	Target string // redirect target, set only when Action is ActionRedirect
}

// Guard decides, from the session state and the requested route, whether a
// view may render or the visitor must be redirected.
type Guard struct {
	guestOnly map[string]struct{}
	landing   string
	login     string
	log       *slog.Logger
}

// Option configures the Guard.
type Option func(*Guard)

// WithGuestRoutes replaces the set of unauthenticated-only routes.
func WithGuestRoutes(routes ...string) Option {
	return func(g *Guard) {
		g.guestOnly = make(map[string]struct{}, len(routes))
		for _, r := range routes {
			g.guestOnly[r] = struct{}{}
		}
	}
}

// WithLandingRoute sets the default route authenticated visitors land on.
func WithLandingRoute(route string) Option {
	return func(g *Guard) { g.landing = route }
}

// WithLoginRoute sets the route anonymous visitors are sent to.
func WithLoginRoute(route string) Option {
	return func(g *Guard) { g.login = route }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Guard. Panics when the configured redirect targets are not
// stable under the decision rule itself, since that configuration can only
// produce redirect loops.
func New(opts ...Option) *Guard {
	g := &Guard{
		guestOnly: map[string]struct{}{
			"/login":    {},
			"/register": {},
		},
		landing: "/home",
		login:   "/login",
		log:     logger.Noop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Redirect targets must be fixed points of the rule for the state that
	// caused the redirect.
	if g.isGuestOnly(g.landing) {
		panic("guard: landing route must not be guest-only")
	}
	if !g.isGuestOnly(g.login) {
		panic("guard: login route must be guest-only")
	}

	return g
}

// Evaluate returns the guard's decision for the given state and route. It is
// deterministic, and every redirect it issues targets a route that Evaluate
// allows under the same state.
func (g *Guard) Evaluate(state State, route string) Decision {
	switch state {
	case StatePending:
		return Decision{Action: ActionSuspend}
	case StateAuthenticated:
		if g.isGuestOnly(route) {
			return Decision{Action: ActionRedirect, Target: g.landing}
		}
		return Decision{Action: ActionAllow}
	default:
		if !g.isGuestOnly(route) {
			return Decision{Action: ActionRedirect, Target: g.login}
		}
		return Decision{Action: ActionAllow}
	}
}

func (g *Guard) isGuestOnly(route string) bool {
	_, ok := g.guestOnly[route]
	return ok
}
