package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, t *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Transaction, error)

	// Transition applies the status change under a row lock only when the
	// current status is in from. When it is not, the unchanged record is
	// returned with applied=false; callers on idempotent paths must not
	// treat that as an error.
	Transition(ctx context.Context, id uuid.UUID, from []Status, to Status, fields TransitionFields) (*Transaction, bool, error)

	// AppendRefund inserts the refund and recomputes the owning
	// transaction's status in one unit of work, re-checking the remaining
	// balance under the row lock.
	AppendRefund(ctx context.Context, params AppendRefundParams) (*RefundOutcome, error)

	SumCompletedRefunds(ctx context.Context, transactionID uuid.UUID) (int64, error)
	ListRefunds(ctx context.Context, transactionID uuid.UUID) ([]*Refund, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID           uuid.UUID
	CourseID         *uuid.UUID
	Amount           int64
	DiscountAmount   int64
	FeeAmount        int64
	Currency         string
	CouponCode       *string
	GatewaySessionID string
}

type TransitionFields struct {
	GatewayChargeID string
	FailureReason   string
	CompletedAt     *time.Time
}

type ListFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
}

type AppendRefundParams struct {
	TransactionID   uuid.UUID
	Amount          int64
	Reason          RefundReason
	GatewayRefundID string
	ProcessedBy     uuid.UUID
}

// RefundOutcome is the result of appending a refund: the new refund row and
// the transaction with its recomputed status.
type RefundOutcome struct {
	Refund      *Refund
	Transaction *Transaction
}

// NewPending validates params and builds an unrecorded pending transaction.
// Exposed separately from CreatePending so the checkout unit of work can
// construct the row and persist it inside its own database transaction.
func NewPending(p CreateParams) (*Transaction, error) {
	if p.Amount < 0 {
		return nil, ValidationError("amount must not be negative")
	}

	if p.DiscountAmount < 0 || p.FeeAmount < 0 {
		return nil, ValidationError("discount and fee must not be negative")
	}

	net := p.Amount - p.DiscountAmount - p.FeeAmount
	if net < 0 {
		return nil, ValidationError("net amount must not be negative")
	}

	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Transaction{
		ID:               uuid.New(),
		UserID:           p.UserID,
		CourseID:         p.CourseID,
		OrderID:          "ord_" + uuid.NewString(),
		GatewaySessionID: p.GatewaySessionID,
		Amount:           p.Amount,
		DiscountAmount:   p.DiscountAmount,
		FeeAmount:        p.FeeAmount,
		NetAmount:        net,
		Currency:         currency,
		Status:           StatusPending,
		CouponCode:       p.CouponCode,
	}, nil
}

func (s *Service) CreatePending(ctx context.Context, p CreateParams) (*Transaction, error) {
	t, err := NewPending(p)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Transition moves a transaction to a new status, guarded by the set of
// statuses the caller expects it to currently be in. Requesting a transition
// that the state machine never allows is a programming error and rejected
// outright; losing the race to another writer is not, and surfaces as
// applied=false with the current record.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, from []Status, to Status, fields TransitionFields) (*Transaction, bool, error) {
	if len(from) == 0 {
		return nil, false, ErrInvalidTransition
	}

	for _, f := range from {
		if !f.CanTransitionTo(to) {
			return nil, false, ErrInvalidTransition
		}
	}

	return s.repo.Transition(ctx, id, from, to, fields)
}

func (s *Service) AppendRefund(ctx context.Context, p AppendRefundParams) (*RefundOutcome, error) {
	if p.Amount <= 0 {
		return nil, ValidationError("refund amount must be positive")
	}

	if !ValidReason(p.Reason) {
		return nil, ValidationError("unknown refund reason")
	}

	return s.repo.AppendRefund(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) GetBySessionID(ctx context.Context, sessionID string) (*Transaction, error) {
	return s.repo.GetBySessionID(ctx, sessionID)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ListRefunds(ctx context.Context, transactionID uuid.UUID) ([]*Refund, error) {
	return s.repo.ListRefunds(ctx, transactionID)
}

func (s *Service) SumCompletedRefunds(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	return s.repo.SumCompletedRefunds(ctx, transactionID)
}
