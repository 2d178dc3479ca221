package apiclient

import "errors"

var (
	// ErrMissingBaseURL indicates the client was built without a backend URL.
	ErrMissingBaseURL = errors.New("apiclient: backend base URL is required")

	// ErrUnexpectedStatus indicates the backend answered with a status the
	// endpoint contract does not define.
	ErrUnexpectedStatus = errors.New("apiclient: unexpected response status")
)
