// Package ledger is the append-only record of monetary events and the sole
// state-transition authority for transactions and refunds.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending           Status = "pending"
	StatusProcessing        Status = "processing"
	StatusCompleted         Status = "completed"
	StatusFailed            Status = "failed"
	StatusCancelled         Status = "cancelled"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusRefunded          Status = "refunded"
)

// legalTransitions is the closed transition table. Anything not listed here
// is rejected before the database is touched.
var legalTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusProcessing: true,
		StatusCompleted:  true,
		StatusFailed:     true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusCompleted: true,
		StatusFailed:    true,
		StatusCancelled: true,
	},
	StatusCompleted: {
		StatusPartiallyRefunded: true,
		StatusRefunded:          true,
	},
	StatusPartiallyRefunded: {
		StatusRefunded: true,
	},
}

// CanTransitionTo reports whether to is reachable from s in one step.
func (s Status) CanTransitionTo(to Status) bool {
	return legalTransitions[s][to]
}

// Refundable reports whether a transaction in this state accepts refunds.
func (s Status) Refundable() bool {
	return s == StatusCompleted || s == StatusPartiallyRefunded
}

// Transaction is the ledger record of one purchase attempt and its monetary
// breakdown. Rows are never deleted; failed and cancelled attempts stay as
// audit trail.
type Transaction struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CourseID         *uuid.UUID // nil for bundle/subscription purchases
	OrderID          string
	GatewaySessionID string
	GatewayChargeID  string
	Amount           int64 // gross, in cents, before discount
	DiscountAmount   int64 // fixed at creation time, never recomputed
	FeeAmount        int64
	NetAmount        int64 // Amount - DiscountAmount - FeeAmount
	Currency         string
	Status           Status
	CouponCode       *string
	FailureReason    string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// RemainingBalance is the refundable amount left given the sum of completed
// refunds so far.
func (t *Transaction) RemainingBalance(refunded int64) int64 {
	return t.Amount - refunded
}

// RefundReason classifies why a refund was issued.
type RefundReason string

const (
	ReasonCustomerRequest RefundReason = "customer_request"
	ReasonFraud           RefundReason = "fraud"
	ReasonDuplicate       RefundReason = "duplicate"
	ReasonOther           RefundReason = "other"
)

// ValidReason reports whether r is a known refund reason.
func ValidReason(r RefundReason) bool {
	switch r {
	case ReasonCustomerRequest, ReasonFraud, ReasonDuplicate, ReasonOther:
		return true
	}

	return false
}

// RefundStatus is the state of a refund row. Refunds are only written after
// the gateway confirmed them, so there is no pending state.
type RefundStatus string

const RefundCompleted RefundStatus = "completed"

// Refund is one refund action against a transaction. Immutable once written.
type Refund struct {
	ID              uuid.UUID
	TransactionID   uuid.UUID
	Amount          int64
	Reason          RefundReason
	Status          RefundStatus
	GatewayRefundID string
	ProcessedBy     uuid.UUID
	ProcessedAt     time.Time
}

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNotRefundable     = errors.New("transaction is not refundable")
)

// ValidationError reports bad input that never reached the database.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ExceedsBalanceError is returned when a refund asks for more than the
// remaining refundable balance. The message carries the exact remaining
// amount so the caller can retry with a corrected value.
type ExceedsBalanceError struct {
	Remaining int64
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("refund amount exceeds remaining refundable balance of %.2f", float64(e.Remaining)/100.0)
}
