// Package refund drives the refund flow: preconditions against the ledger,
// the gateway call, and the ledger append. The gateway is paid out before
// anything local changes, so a provider failure leaves no partial state; the
// append re-checks the balance under a row lock in case two refunds raced.
package refund

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=refund

// Ledger is the slice of the transaction ledger refunds read and append to.
type Ledger interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	SumCompletedRefunds(ctx context.Context, transactionID uuid.UUID) (int64, error)
	AppendRefund(ctx context.Context, p ledger.AppendRefundParams) (*ledger.RefundOutcome, error)
}

type Service struct {
	ledger  Ledger
	gateway gateway.Client
}

func NewService(l Ledger, gw gateway.Client) *Service {
	return &Service{ledger: l, gateway: gw}
}

type ProcessParams struct {
	TransactionID uuid.UUID
	Amount        int64
	Reason        ledger.RefundReason
	ProcessedBy   uuid.UUID
}

// ProcessRefund refunds part or all of a captured payment. The precondition
// read is advisory; the definitive balance check happens inside AppendRefund
// so concurrent refunds cannot overdraw the transaction.
func (s *Service) ProcessRefund(ctx context.Context, p ProcessParams) (*ledger.Refund, error) {
	if p.Amount <= 0 {
		return nil, ledger.ValidationError("refund amount must be positive")
	}

	if !ledger.ValidReason(p.Reason) {
		return nil, ledger.ValidationError("unknown refund reason")
	}

	t, err := s.ledger.Get(ctx, p.TransactionID)
	if err != nil {
		return nil, err
	}

	if !t.Status.Refundable() {
		return nil, ledger.ErrNotRefundable
	}

	refunded, err := s.ledger.SumCompletedRefunds(ctx, p.TransactionID)
	if err != nil {
		return nil, err
	}

	if remaining := t.RemainingBalance(refunded); p.Amount > remaining {
		return nil, &ledger.ExceedsBalanceError{Remaining: remaining}
	}

	res, err := s.gateway.CreateRefund(ctx, t.GatewayChargeID, p.Amount)
	if err != nil {
		return nil, err
	}

	outcome, err := s.ledger.AppendRefund(ctx, ledger.AppendRefundParams{
		TransactionID:   p.TransactionID,
		Amount:          p.Amount,
		Reason:          p.Reason,
		GatewayRefundID: res.ID,
		ProcessedBy:     p.ProcessedBy,
	})
	if err != nil {
		// The provider refund went through but the ledger did not take it.
		// Surface loudly; reconciliation against the provider's records is
		// the recovery path.
		slog.Error("gateway refund succeeded but ledger append failed",
			"transaction_id", p.TransactionID, "gateway_refund_id", res.ID, "error", err)

		return nil, err
	}

	slog.Info("refund processed",
		"transaction_id", p.TransactionID,
		"refund_id", outcome.Refund.ID,
		"amount", p.Amount,
		"new_status", outcome.Transaction.Status)

	return outcome.Refund, nil
}
