package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/omeeai/appshell/pkg/payment"
)

// paymentRequest mirrors the backend entitlement endpoint's request shape.
type paymentRequest struct {
	PaymentMethodID  string `json:"paymentMethodId"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	City             string `json:"city"`
	ZipCode          string `json:"zipCode"`
	State            string `json:"state"`
	Country          string `json:"country"`
	Plan             string `json:"plan"`
	SubscriptionType string `json:"subscriptionType"`
}

// paymentErrorBody is the backend's structured rejection payload.
type paymentErrorBody struct {
	Error []struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitPayment posts the assembled submission to the backend entitlement
// endpoint. Rejections come back as *payment.SubmissionError carrying the
// first structured error message, or the generic fallback when the payload
// does not match the expected shape.
func (c *Client) SubmitPayment(ctx context.Context, sub payment.Submission) (payment.Result, error) {
	req := paymentRequest{
		PaymentMethodID:  sub.Token,
		Email:            sub.Email,
		Name:             sub.Name,
		Address:          sub.Profile.Address,
		City:             sub.Profile.City,
		ZipCode:          sub.Profile.ZipCode,
		State:            sub.Profile.State,
		Country:          sub.Profile.Country,
		Plan:             sub.Plan,
		SubscriptionType: string(sub.Duration),
	}

	resp, err := c.postJSON(ctx, "/api/stripe-payment", req)
	if err != nil {
		return payment.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return payment.Result{}, &payment.SubmissionError{Message: rejectionMessage(resp)}
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return payment.Result{}, fmt.Errorf("apiclient: decode payment response: %w", err)
	}

	return payment.Result{Status: result.Status}, nil
}

// rejectionMessage extracts the first human-readable message from the
// backend's structured error payload. A malformed payload yields the generic
// fallback; it must never crash the flow.
func rejectionMessage(resp *http.Response) string {
	var body paymentErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return payment.GenericFailureMessage
	}
	if len(body.Error) == 0 || body.Error[0].Message == "" {
		return payment.GenericFailureMessage
	}
	return body.Error[0].Message
}
