package payment

import (
	"context"

	"github.com/omeeai/appshell/pkg/catalog"
)

// RawInstrument is a user-supplied card credential. It exists only long
// enough to be tokenized and is never persisted or sent to our backend.
type RawInstrument struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// BillingProfile is the billing address collected alongside the instrument.
type BillingProfile struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// PlanSelection is the visitor's plan/billing-cycle choice, carried via
// navigation parameters through the checkout flow.
type PlanSelection struct {
	PlanName string
	Duration catalog.Duration
}

// Submission is the one-shot request sent to the backend entitlement
// endpoint. It exists only for the duration of a submit call.
type Submission struct {
	Token    string
	Profile  BillingProfile
	Plan     string
	Duration catalog.Duration
	Email    string
	Name     string
}

// Result is the backend's response to a payment submission.
type Result struct {
	Status string
}

// Active reports whether the backend confirmed an active entitlement.
func (r Result) Active() bool {
	return r.Status == "active"
}

// Tokenizer exchanges a raw instrument for a provider token.
type Tokenizer interface {
	// Tokenize returns the provider token for the instrument, or a
	// *ValidationError carrying the provider's message verbatim when the
	// instrument fails provider-side validation.
	Tokenize(ctx context.Context, instrument RawInstrument, billingName string) (string, error)
}

// Submitter posts the assembled submission to the backend entitlement
// endpoint.
type Submitter interface {
	SubmitPayment(ctx context.Context, sub Submission) (Result, error)
}
