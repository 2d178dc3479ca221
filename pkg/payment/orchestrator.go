package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omeeai/appshell/pkg/catalog"
	"github.com/omeeai/appshell/pkg/logger"
	"github.com/omeeai/appshell/pkg/session"
)

// SessionSource provides the current session snapshot.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Orchestrator sequences a one-shot payment: instrument tokenization, backend
// submission and error translation. Nothing is retried automatically; the
// caller may re-invoke Submit with the same or corrected inputs.
type Orchestrator struct {
	source    SessionSource
	tokenizer Tokenizer
	submitter Submitter
	log       *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates a payment orchestrator. Panics if a collaborator is nil to
// fail fast on misconfiguration.
func New(source SessionSource, tokenizer Tokenizer, submitter Submitter, opts ...Option) *Orchestrator {
	if source == nil {
		panic("payment: SessionSource is required")
	}
	if tokenizer == nil {
		panic("payment: Tokenizer is required")
	}
	if submitter == nil {
		panic("payment: Submitter is required")
	}

	o := &Orchestrator{
		source:    source,
		tokenizer: tokenizer,
		submitter: submitter,
		log:       logger.Noop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Submit runs the payment sequence for the given selection.
//
// Preconditions are checked before any network effect: the session must hold
// a user and the selection must resolve against the loaded catalog. A
// provider validation failure stops the flow before the backend call and is
// returned as *ValidationError; a backend rejection is returned as
// *SubmissionError. On success the entitlement lives server-side; no session
// mutation happens here beyond whatever re-fetch the caller performs.
func (o *Orchestrator) Submit(ctx context.Context, sel PlanSelection, profile BillingProfile, instrument RawInstrument) (Result, error) {
	snap := o.source.Snapshot()

	if snap.User == nil {
		return Result{}, errors.Join(ErrPrecondition, errors.New("no authenticated user"))
	}
	if snap.Catalog == nil {
		return Result{}, errors.Join(ErrPrecondition, catalog.ErrNoCatalog)
	}

	offer, err := catalog.Resolve(snap.Catalog, sel.PlanName, sel.Duration)
	if err != nil {
		return Result{}, errors.Join(ErrPrecondition, err)
	}

	user := *snap.User

	token, err := o.tokenizer.Tokenize(ctx, instrument, user.FullName())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			// Provider-side validation: surface the message, skip the backend.
			return Result{}, verr
		}
		return Result{}, errors.Join(ErrTokenization, err)
	}

	sub := Submission{
		Token:    token,
		Profile:  profile,
		Plan:     offer.Plan.Name,
		Duration: offer.Price.Duration,
		Email:    user.Email,
		Name:     user.FullName(),
	}

	result, err := o.submitter.SubmitPayment(ctx, sub)
	if err != nil {
		var serr *SubmissionError
		if errors.As(err, &serr) {
			return Result{}, serr
		}
		return Result{}, errors.Join(ErrSubmission, err)
	}

	if !result.Active() {
		return result, &SubmissionError{Message: fmt.Sprintf("Payment not confirmed (status %q)", result.Status)}
	}

	o.log.InfoContext(ctx, "payment processed",
		slog.String("plan", sub.Plan),
		slog.String("duration", string(sub.Duration)),
	)

	return result, nil
}
