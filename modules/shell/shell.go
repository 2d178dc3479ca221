package shell

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omeeai/appshell/pkg/apiclient"
	"github.com/omeeai/appshell/pkg/guard"
	"github.com/omeeai/appshell/pkg/logger"
	"github.com/omeeai/appshell/pkg/payment"
	"github.com/omeeai/appshell/pkg/session"
)

// Module wires the session store, route guard and payment orchestrator into
// the shell's HTTP surface. Presentation is intentionally minimal; handlers
// only orchestrate the core packages and emit JSON.
type Module struct {
	store        *session.Store
	guard        *guard.Guard
	orchestrator *payment.Orchestrator
	api          *apiclient.Client
	log          *slog.Logger
}

// Option configures the Module.
type Option func(*Module)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Module) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates the shell module. Panics if a dependency is nil to fail fast
// on misconfiguration.
func New(store *session.Store, g *guard.Guard, orchestrator *payment.Orchestrator, api *apiclient.Client, opts ...Option) *Module {
	if store == nil {
		panic("shell: session store is required")
	}
	if g == nil {
		panic("shell: route guard is required")
	}
	if orchestrator == nil {
		panic("shell: payment orchestrator is required")
	}
	if api == nil {
		panic("shell: api client is required")
	}

	m := &Module{
		store:        store,
		guard:        g,
		orchestrator: orchestrator,
		api:          api,
		log:          logger.Noop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handler returns the shell's router. Every route passes through the guard;
// per-view configuration beyond the guest/authenticated split lives in the
// guard itself.
func (m *Module) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(m.guard.Middleware(m.store))

	r.Get("/login", m.loginPage)
	r.Post("/login", m.handleLogin)
	r.Get("/register", m.registerPage)
	r.Post("/register", m.handleRegister)

	r.Get("/home", m.homePage)
	r.Get("/dash", m.dashPage)
	r.Get("/pricing", m.pricingPage)
	r.Get("/payment", m.paymentPage)
	r.Post("/checkout", m.handleCheckout)
	r.Post("/logout", m.handleLogout)
	r.Post("/change-password", m.handleChangePassword)

	return r
}

func (m *Module) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.log.Error("response encoding failed", slog.Any("error", err))
	}
}

// notify emits a transient user-facing failure without mutating any state.
func (m *Module) notify(w http.ResponseWriter, status int, message string) {
	m.respond(w, status, map[string]string{"notification": message})
}
