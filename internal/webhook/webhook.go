// Package webhook reconciles gateway deliveries into ledger state. Every
// delivery is signature-verified before its body is parsed, recorded once
// per (provider, event id), and dispatched through the ledger's guarded
// transitions so redeliveries and out-of-order arrivals cannot move a
// transaction twice.
package webhook

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Provider identifies the payment gateway in the event dedup table.
const Provider = "gateway"

// Event types delivered by the gateway.
const (
	EventCheckoutCompleted = "checkout.completed"
	EventPaymentFailed     = "payment.failed"
)

// Event is one recorded delivery. ProcessedAt is set only after the side
// effects for the delivery have been applied; an event that was received but
// never processed is retried on redelivery instead of being deduplicated.
type Event struct {
	ID              uuid.UUID
	Provider        string
	EventID         string
	Type            string
	Payload         []byte
	ProcessedAt     *time.Time
	ProcessingError string
	ReceivedAt      time.Time
}

// Result reports what a delivery did.
type Result struct {
	EventID   string
	Type      string
	Duplicate bool
	Applied   bool
}

var (
	ErrBadSignature = errors.New("webhook signature verification failed")
	ErrMalformed    = errors.New("malformed webhook payload")
)
