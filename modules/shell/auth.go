package shell

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/omeeai/appshell/pkg/apiclient"
)

func (m *Module) loginPage(w http.ResponseWriter, r *http.Request) {
	m.respond(w, http.StatusOK, map[string]string{
		"view":   "login",
		"google": m.api.GoogleAuthURL(),
	})
}

func (m *Module) registerPage(w http.ResponseWriter, r *http.Request) {
	m.respond(w, http.StatusOK, map[string]string{"view": "register"})
}

func (m *Module) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds apiclient.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		m.notify(w, http.StatusBadRequest, "Invalid login request")
		return
	}

	user, err := m.api.Login(r.Context(), creds)
	if err != nil {
		m.log.InfoContext(r.Context(), "login rejected", slog.Any("error", err))
		m.notify(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	m.store.Login(user)
	m.loadCatalogIfAbsent(r)

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// loadCatalogIfAbsent fetches the price catalog after a sign-in when the
// bootstrap resolved anonymous and therefore skipped it. Failure keeps the
// catalog absent; dependent views render a loading state and the next
// sign-in retries.
func (m *Module) loadCatalogIfAbsent(r *http.Request) {
	if m.store.Snapshot().Catalog != nil {
		return
	}
	// LoadCatalog already logs the failure.
	_ = m.store.LoadCatalog(r.Context())
}

func (m *Module) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		m.notify(w, http.StatusBadRequest, "Invalid registration request")
		return
	}

	user, err := m.api.Signup(r.Context(), payload)
	if err != nil {
		m.log.InfoContext(r.Context(), "registration rejected", slog.Any("error", err))
		m.notify(w, http.StatusUnprocessableEntity, "Registration failed")
		return
	}

	m.store.Login(user)
	m.loadCatalogIfAbsent(r)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (m *Module) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Local session clears regardless of the server call outcome; the
	// navigation happens only after the call resolves.
	if err := m.store.Logout(r.Context()); err != nil {
		m.log.WarnContext(r.Context(), "logout completed with error", slog.Any("error", err))
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (m *Module) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.ChangePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		m.notify(w, http.StatusBadRequest, "Invalid change-password request")
		return
	}

	if err := m.api.ChangePassword(r.Context(), payload); err != nil {
		m.log.InfoContext(r.Context(), "change password rejected", slog.Any("error", err))
		m.notify(w, http.StatusUnprocessableEntity, "Could not change password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
