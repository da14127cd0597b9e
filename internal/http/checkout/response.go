package checkout

import (
	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/checkout"
	"github.com/skillforge/coursepay/internal/ledger"
)

type checkoutResponse struct {
	TransactionID  uuid.UUID     `json:"transaction_id"`
	OrderID        string        `json:"order_id"`
	Status         ledger.Status `json:"status"`
	Amount         int64         `json:"amount"`
	DiscountAmount int64         `json:"discount_amount"`
	NetAmount      int64         `json:"net_amount"`
	Currency       string        `json:"currency"`
	CheckoutURL    string        `json:"checkout_url,omitempty"`
	ClientSecret   string        `json:"client_secret,omitempty"`
	Settled        bool          `json:"settled"`
}

func toResponse(out *checkout.Checkout) checkoutResponse {
	t := out.Transaction

	return checkoutResponse{
		TransactionID:  t.ID,
		OrderID:        t.OrderID,
		Status:         t.Status,
		Amount:         t.Amount,
		DiscountAmount: t.DiscountAmount,
		NetAmount:      t.NetAmount,
		Currency:       t.Currency,
		CheckoutURL:    out.CheckoutURL,
		ClientSecret:   out.ClientSecret,
		Settled:        out.Settled,
	}
}
