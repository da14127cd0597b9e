package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient implements Client against the provider's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type sessionPayload struct {
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type sessionResponse struct {
	ID           string `json:"id"`
	RedirectURL  string `json:"redirect_url"`
	ClientSecret string `json:"client_secret"`
}

func (c *HTTPClient) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	var resp sessionResponse

	err := c.post(ctx, "/v1/checkout/sessions", sessionPayload{
		Amount:     req.Amount,
		Currency:   req.Currency,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   req.Metadata,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:           resp.ID,
		RedirectURL:  resp.RedirectURL,
		ClientSecret: resp.ClientSecret,
	}, nil
}

type refundPayload struct {
	ChargeID string `json:"charge_id"`
	Amount   int64  `json:"amount"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *HTTPClient) CreateRefund(ctx context.Context, chargeID string, amount int64) (*RefundResult, error) {
	var resp refundResponse

	err := c.post(ctx, "/v1/refunds", refundPayload{ChargeID: chargeID, Amount: amount}, &resp)
	if err != nil {
		return nil, err
	}

	return &RefundResult{ID: resp.ID, Status: resp.Status}, nil
}

func (c *HTTPClient) VoidSession(ctx context.Context, sessionID string) error {
	return c.post(ctx, "/v1/checkout/sessions/"+sessionID+"/expire", struct{}{}, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}

		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		return &Error{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
