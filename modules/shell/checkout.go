package shell

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/omeeai/appshell/pkg/catalog"
	"github.com/omeeai/appshell/pkg/payment"
)

// checkoutRequest is the payment form as submitted by the checkout view. The
// plan selection itself travels in the navigation parameters, not the body.
type checkoutRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	State   string `json:"state"`
	Country string `json:"country"`
	Card    struct {
		Number   string `json:"number"`
		ExpMonth string `json:"exp_month"`
		ExpYear  string `json:"exp_year"`
		CVC      string `json:"cvc"`
	} `json:"card"`
}

func (req checkoutRequest) missingFields() []string {
	var missing []string
	for field, value := range map[string]string{
		"address": req.Address,
		"city":    req.City,
		"zipCode": req.ZipCode,
		"state":   req.State,
		"country": req.Country,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// handleCheckout drives the one-shot payment submission and translates the
// orchestrator's error taxonomy into responses: provider validation failures
// appear inline near the payment field, backend rejections as transient
// notifications.
func (m *Module) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.notify(w, http.StatusBadRequest, "Invalid checkout request")
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		m.respond(w, http.StatusUnprocessableEntity, map[string]any{
			"missing": missing,
		})
		return
	}

	snap := m.store.Snapshot()
	if snap.Catalog == nil {
		// Catalog still loading; the view re-submits once it resolves.
		m.respond(w, http.StatusOK, map[string]bool{"loading": true})
		return
	}

	sel := payment.PlanSelection{PlanName: r.URL.Query().Get("plan")}
	if d, err := catalog.ParseDuration(r.URL.Query().Get("subscriptionType")); err == nil {
		sel.Duration = d
	}

	if _, err := catalog.Resolve(snap.Catalog, sel.PlanName, sel.Duration); err != nil {
		http.Redirect(w, r, "/pricing", http.StatusSeeOther)
		return
	}

	profile := payment.BillingProfile{
		Address: req.Address,
		City:    req.City,
		ZipCode: req.ZipCode,
		State:   req.State,
		Country: req.Country,
	}
	instrument := payment.RawInstrument{
		Number:   req.Card.Number,
		ExpMonth: req.Card.ExpMonth,
		ExpYear:  req.Card.ExpYear,
		CVC:      req.Card.CVC,
	}

	_, err := m.orchestrator.Submit(r.Context(), sel, profile, instrument)
	switch {
	case err == nil:
		m.respond(w, http.StatusOK, map[string]string{
			"status":       "active",
			"notification": "Payment successfully processed",
		})
	case isValidationError(err):
		// Provider message verbatim, rendered inline near the card field.
		m.respond(w, http.StatusUnprocessableEntity, map[string]string{
			"field":   "card",
			"message": err.Error(),
		})
	case errors.Is(err, payment.ErrSubmission):
		m.notify(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, payment.ErrPrecondition):
		// The view must not make submission reachable without a resolved
		// offer; treat as an assertion failure.
		m.log.ErrorContext(r.Context(), "checkout precondition violated", slog.Any("error", err))
		m.notify(w, http.StatusInternalServerError, payment.GenericFailureMessage)
	default:
		m.log.ErrorContext(r.Context(), "checkout failed", slog.Any("error", err))
		m.notify(w, http.StatusBadGateway, payment.GenericFailureMessage)
	}
}

func isValidationError(err error) bool {
	var verr *payment.ValidationError
	return errors.As(err, &verr)
}
