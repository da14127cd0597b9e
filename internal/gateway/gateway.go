// Package gateway talks to the external payment provider: hosted checkout
// sessions, refunds, and webhook signature verification. It is a capability
// adapter, not a business-logic component; all settlement decisions live in
// the ledger and its callers.
package gateway

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=gateway.go -destination=client_mock.go -package=gateway

// Client is the payment-provider capability consumed by checkout and refunds.
type Client interface {
	// CreateSession opens a hosted checkout session for the given net amount.
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	// CreateRefund refunds part or all of a captured charge.
	CreateRefund(ctx context.Context, chargeID string, amount int64) (*RefundResult, error)
	// VoidSession expires a session that will never be paid, used to
	// compensate when the local checkout record could not be created.
	VoidSession(ctx context.Context, sessionID string) error
}

type SessionRequest struct {
	Amount     int64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type Session struct {
	ID           string
	RedirectURL  string
	ClientSecret string
}

type RefundResult struct {
	ID     string
	Status string
}

// Error is a failure reported by the provider. The local state is never
// mutated when one of these surfaces.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
}

// ErrUnavailable indicates the provider could not be reached at all.
var ErrUnavailable = errors.New("gateway unavailable")
