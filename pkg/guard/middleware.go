package guard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/omeeai/appshell/pkg/session"
)

// SessionSource provides the current session snapshot.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Middleware gates every request through the guard's decision. The snapshot
// and the request path are read at evaluation time, per request; nothing is
// captured at mount time, so the decision always reflects current state.
//
// Pending sessions receive a neutral loading response and are never
// redirected. Redirects use 303 so browsers re-request the target with GET.
func (g *Guard) Middleware(source SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := StateOf(source.Snapshot())
			decision := g.Evaluate(state, r.URL.Path)

			g.log.DebugContext(r.Context(), "route guard decision",
				slog.String("state", string(state)),
				slog.String("route", r.URL.Path),
				slog.String("action", string(decision.Action)),
				slog.String("target", decision.Target),
			)

			switch decision.Action {
			case ActionSuspend:
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]bool{"loading": true})
			case ActionRedirect:
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
