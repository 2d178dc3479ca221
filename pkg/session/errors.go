package session

import "errors"

var (
	// ErrUnauthenticated indicates the backend reported no current session (401).
	ErrUnauthenticated = errors.New("session: unauthenticated")

	// ErrSessionFetch indicates the bootstrap session fetch failed. Consumers
	// treat this identically to "no session", never as a distinct error state.
	ErrSessionFetch = errors.New("session: session fetch failed")

	// ErrCatalogFetch indicates the price catalog fetch failed. It is logged,
	// never surfaced to the user; dependent views treat the absent catalog as
	// a loading state.
	ErrCatalogFetch = errors.New("session: price catalog fetch failed")

	// ErrLogout indicates the server-side session termination call failed.
	// Local session state is cleared regardless.
	ErrLogout = errors.New("session: logout failed")
)
