// Package payment sequences the one-shot payment submission: precondition
// checks, instrument tokenization with the external provider, and backend
// entitlement submission, with the error taxonomy the checkout view relies
// on.
//
// The Orchestrator depends on abstract collaborators: a Tokenizer (Stripe
// implementation included) and a Submitter (the backend API client). Errors
// split into *ValidationError (provider message, shown inline, no backend
// call made), *SubmissionError (backend rejection message, shown as a
// transient notification) and ErrPrecondition (programmer error: submission
// must not be reachable without a user and a resolvable offer). Nothing is
// retried automatically.
package payment
