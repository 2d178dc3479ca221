package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/omeeai/appshell/pkg/session"
)

// CurrentUser fetches the user attached to the current backend session.
// A 401 maps to session.ErrUnauthenticated; the store treats it as anonymous.
func (c *Client) CurrentUser(ctx context.Context) (*session.User, error) {
	resp, err := c.get(ctx, "/api/auth-me")
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var user session.User
		if err := decode(resp, &user); err != nil {
			return nil, fmt.Errorf("apiclient: decode current user: %w", err)
		}
		return &user, nil
	case http.StatusUnauthorized:
		drain(resp)
		return nil, session.ErrUnauthenticated
	default:
		drain(resp)
		return nil, errors.Join(ErrUnexpectedStatus, fmt.Errorf("auth-me returned %d", resp.StatusCode))
	}
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the backend and returns the user record.
func (c *Client) Login(ctx context.Context, creds Credentials) (*session.User, error) {
	resp, err := c.postJSON(ctx, "/api/login", creds)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, errors.Join(ErrUnexpectedStatus, fmt.Errorf("login returned %d", resp.StatusCode))
	}

	var user session.User
	if err := decode(resp, &user); err != nil {
		return nil, fmt.Errorf("apiclient: decode login response: %w", err)
	}
	return &user, nil
}

// SignupPayload is the registration request payload.
type SignupPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup registers a new account and returns the created user record.
func (c *Client) Signup(ctx context.Context, payload SignupPayload) (*session.User, error) {
	resp, err := c.postJSON(ctx, "/api/signup", payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		drain(resp)
		return nil, errors.Join(ErrUnexpectedStatus, fmt.Errorf("signup returned %d", resp.StatusCode))
	}

	var user session.User
	if err := decode(resp, &user); err != nil {
		return nil, fmt.Errorf("apiclient: decode signup response: %w", err)
	}
	return &user, nil
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.get(ctx, "/api/logout")
	if err != nil {
		return err
	}
	drain(resp)

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrUnexpectedStatus, fmt.Errorf("logout returned %d", resp.StatusCode))
	}
	return nil
}

// ChangePasswordPayload is the change-password request payload.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the account password for the current session.
func (c *Client) ChangePassword(ctx context.Context, payload ChangePasswordPayload) error {
	resp, err := c.postJSON(ctx, "/api/change-password", payload)
	if err != nil {
		return err
	}
	drain(resp)

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrUnexpectedStatus, fmt.Errorf("change-password returned %d", resp.StatusCode))
	}
	return nil
}

// GoogleAuthURL returns the backend endpoint that starts the Google sign-in
// flow. The backend owns the provider exchange; the shell only navigates
// the visitor there.
func (c *Client) GoogleAuthURL() string {
	return c.url("/api/google")
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
