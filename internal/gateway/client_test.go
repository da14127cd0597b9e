package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_CreateSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(29999), payload["amount"])
		assert.Equal(t, "USD", payload["currency"])

		json.NewEncoder(w).Encode(map[string]string{
			"id":           "cs_123",
			"redirect_url": "https://gateway.test/pay/cs_123",
		})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "sk_test", 5*time.Second)

	session, err := c.CreateSession(context.Background(), SessionRequest{
		Amount:   29999,
		Currency: "USD",
		Metadata: map[string]string{"order_id": "ord_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://gateway.test/pay/cs_123", session.RedirectURL)
}

func TestHTTPClient_CreateRefund_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"message": "charge already refunded"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "sk_test", 5*time.Second)

	_, err := c.CreateRefund(context.Background(), "ch_1", 100)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusPaymentRequired, gwErr.StatusCode)
	assert.Equal(t, "charge already refunded", gwErr.Message)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", "sk_test", time.Second)

	_, err := c.CreateSession(context.Background(), SessionRequest{Amount: 100})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_VoidSession(t *testing.T) {
	var gotPath string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "sk_test", 5*time.Second)

	require.NoError(t, c.VoidSession(context.Background(), "cs_123"))
	assert.Equal(t, "/v1/checkout/sessions/cs_123/expire", gotPath)
}
