package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/ledger"
)

type transactionResponse struct {
	ID             uuid.UUID     `json:"id"`
	OrderID        string        `json:"order_id"`
	CourseID       *uuid.UUID    `json:"course_id,omitempty"`
	Amount         int64         `json:"amount"`
	DiscountAmount int64         `json:"discount_amount"`
	FeeAmount      int64         `json:"fee_amount"`
	NetAmount      int64         `json:"net_amount"`
	Currency       string        `json:"currency"`
	Status         ledger.Status `json:"status"`
	CouponCode     *string       `json:"coupon_code,omitempty"`
	FailureReason  string        `json:"failure_reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

func toResponse(t *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:             t.ID,
		OrderID:        t.OrderID,
		CourseID:       t.CourseID,
		Amount:         t.Amount,
		DiscountAmount: t.DiscountAmount,
		FeeAmount:      t.FeeAmount,
		NetAmount:      t.NetAmount,
		Currency:       t.Currency,
		Status:         t.Status,
		CouponCode:     t.CouponCode,
		FailureReason:  t.FailureReason,
		CreatedAt:      t.CreatedAt,
		CompletedAt:    t.CompletedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toResponse(t)
	}

	return resp
}

type refundResponse struct {
	ID          uuid.UUID           `json:"id"`
	Amount      int64               `json:"amount"`
	Reason      ledger.RefundReason `json:"reason"`
	Status      ledger.RefundStatus `json:"status"`
	ProcessedAt time.Time           `json:"processed_at"`
}

func toRefundResponseList(refunds []*ledger.Refund) []refundResponse {
	resp := make([]refundResponse, len(refunds))
	for i, r := range refunds {
		resp[i] = refundResponse{
			ID:          r.ID,
			Amount:      r.Amount,
			Reason:      r.Reason,
			Status:      r.Status,
			ProcessedAt: r.ProcessedAt,
		}
	}

	return resp
}
