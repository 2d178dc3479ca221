package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StripeConfig holds configuration for the Stripe tokenization provider.
type StripeConfig struct {
	SecretKey string        `env:"STRIPE_SECRET_KEY,required"`
	BaseURL   string        `env:"STRIPE_API_BASE_URL" envDefault:"https://api.stripe.com"`
	Timeout   time.Duration `env:"STRIPE_TIMEOUT" envDefault:"15s"`
}

// StripeTokenizer implements Tokenizer over Stripe's card token endpoint.
// Card data goes straight to the provider; only the resulting token ever
// reaches our backend.
type StripeTokenizer struct {
	config StripeConfig
	client *http.Client
}

// StripeOption configures the StripeTokenizer.
type StripeOption func(*StripeTokenizer)

// WithHTTPClient sets a custom HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) StripeOption {
	return func(t *StripeTokenizer) {
		if client != nil {
			t.client = client
		}
	}
}

// NewStripeTokenizer creates a Stripe-backed tokenizer.
func NewStripeTokenizer(config StripeConfig, opts ...StripeOption) (*StripeTokenizer, error) {
	if config.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.stripe.com"
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	t := &StripeTokenizer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// stripeTokenResponse is the subset of Stripe's token response we consume.
type stripeTokenResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Tokenize exchanges card details for a Stripe token. Card validation
// failures come back as *ValidationError with the provider's message.
func (t *StripeTokenizer) Tokenize(ctx context.Context, instrument RawInstrument, billingName string) (string, error) {
	form := url.Values{}
	form.Set("card[number]", instrument.Number)
	form.Set("card[exp_month]", instrument.ExpMonth)
	form.Set("card[exp_year]", instrument.ExpYear)
	form.Set("card[cvc]", instrument.CVC)
	form.Set("card[name]", billingName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(t.config.BaseURL, "/")+"/v1/tokens",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Join(ErrTokenization, err)
	}
	req.Header.Set("Authorization", "Bearer "+t.config.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", errors.Join(ErrTokenization, err)
	}
	defer resp.Body.Close()

	var body stripeTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Join(ErrTokenization, fmt.Errorf("malformed provider response: %w", err))
	}

	if body.Error != nil {
		if body.Error.Type == "card_error" || body.Error.Type == "invalid_request_error" {
			return "", &ValidationError{Message: body.Error.Message}
		}
		return "", errors.Join(ErrTokenization, fmt.Errorf("provider error: %s", body.Error.Message))
	}

	if resp.StatusCode != http.StatusOK || body.ID == "" {
		return "", errors.Join(ErrTokenization, fmt.Errorf("unexpected provider response status %d", resp.StatusCode))
	}

	return body.ID, nil
}
