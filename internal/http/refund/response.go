package refund

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/ledger"
)

type refundResponse struct {
	ID              uuid.UUID           `json:"id"`
	TransactionID   uuid.UUID           `json:"transaction_id"`
	Amount          int64               `json:"amount"`
	Reason          ledger.RefundReason `json:"reason"`
	Status          ledger.RefundStatus `json:"status"`
	GatewayRefundID string              `json:"gateway_refund_id"`
	ProcessedBy     uuid.UUID           `json:"processed_by"`
	ProcessedAt     time.Time           `json:"processed_at"`
}

func toResponse(r *ledger.Refund) refundResponse {
	return refundResponse{
		ID:              r.ID,
		TransactionID:   r.TransactionID,
		Amount:          r.Amount,
		Reason:          r.Reason,
		Status:          r.Status,
		GatewayRefundID: r.GatewayRefundID,
		ProcessedBy:     r.ProcessedBy,
		ProcessedAt:     r.ProcessedAt,
	}
}
