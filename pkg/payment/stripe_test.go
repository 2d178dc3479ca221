package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeeai/appshell/pkg/payment"
)

func newStripeTokenizer(t *testing.T, handler http.HandlerFunc) *payment.StripeTokenizer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tok, err := payment.NewStripeTokenizer(payment.StripeConfig{
		SecretKey: "sk_test_123",
		BaseURL:   srv.URL,
	}, payment.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return tok
}

func TestNewStripeTokenizer(t *testing.T) {
	t.Parallel()

	_, err := payment.NewStripeTokenizer(payment.StripeConfig{})
	assert.Error(t, err)
}

func TestStripeTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("posts the card form and returns the token", func(t *testing.T) {
		t.Parallel()

		tok := newStripeTokenizer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/tokens", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "4242424242424242", r.PostForm.Get("card[number]"))
			assert.Equal(t, "12", r.PostForm.Get("card[exp_month]"))
			assert.Equal(t, "2030", r.PostForm.Get("card[exp_year]"))
			assert.Equal(t, "123", r.PostForm.Get("card[cvc]"))
			assert.Equal(t, "Jane Doe", r.PostForm.Get("card[name]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"tok_visa"}`))
		})

		token, err := tok.Tokenize(context.Background(), testInstrument(), "Jane Doe")
		require.NoError(t, err)
		assert.Equal(t, "tok_visa", token)
	})

	t.Run("card errors become validation errors with the provider message", func(t *testing.T) {
		t.Parallel()

		tok := newStripeTokenizer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"incorrect_number","message":"Your card number is incorrect."}}`))
		})

		_, err := tok.Tokenize(context.Background(), testInstrument(), "Jane Doe")
		require.Error(t, err)

		var verr *payment.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Your card number is incorrect.", verr.Message)
		assert.ErrorIs(t, err, payment.ErrTokenization)
	})

	t.Run("non-card provider errors are not validation errors", func(t *testing.T) {
		t.Parallel()

		tok := newStripeTokenizer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"Something is wrong on our end"}}`))
		})

		_, err := tok.Tokenize(context.Background(), testInstrument(), "Jane Doe")
		require.Error(t, err)
		assert.ErrorIs(t, err, payment.ErrTokenization)

		var verr *payment.ValidationError
		assert.False(t, errors.As(err, &verr))
	})

	t.Run("malformed provider responses fail tokenization", func(t *testing.T) {
		t.Parallel()

		tok := newStripeTokenizer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := tok.Tokenize(context.Background(), testInstrument(), "Jane Doe")
		assert.ErrorIs(t, err, payment.ErrTokenization)
	})
}
