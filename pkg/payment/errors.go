package payment

import "errors"

var (
	// ErrPrecondition indicates Submit was reached without an authenticated
	// user or a resolvable offer. This is a programmer error: the checkout
	// view must not make submission reachable in that state.
	ErrPrecondition = errors.New("payment: submission precondition violated")

	// ErrTokenization indicates instrument tokenization failed for a reason
	// other than provider-side validation (transport failure, provider down).
	ErrTokenization = errors.New("payment: instrument tokenization failed")

	// ErrSubmission indicates the backend rejected or failed the submission.
	ErrSubmission = errors.New("payment: backend submission failed")
)

// GenericFailureMessage is surfaced when the backend's error payload does not
// match the expected shape. A malformed payload must never crash the flow.
const GenericFailureMessage = "Something went wrong"

// ValidationError carries the payment provider's validation message, surfaced
// verbatim inline near the payment field. When it occurs, no backend call has
// been made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers class-match with errors.Is(err, ErrTokenization).
func (e *ValidationError) Is(target error) bool { return target == ErrTokenization }

// SubmissionError carries the human-readable backend rejection message,
// surfaced as a transient notification.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string { return e.Message }

// Is lets callers class-match with errors.Is(err, ErrSubmission).
func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }
