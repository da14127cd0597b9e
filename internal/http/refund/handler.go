package refund

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/http/auth"
	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/refund"
)

type Handler struct {
	svc *refund.Service
}

func NewHandler(svc *refund.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
}

type createRefundRequest struct {
	TransactionID uuid.UUID           `json:"transaction_id"`
	Amount        int64               `json:"amount"`
	Reason        ledger.RefundReason `json:"reason"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.ProcessRefund(r.Context(), refund.ProcessParams{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Reason:        req.Reason,
		ProcessedBy:   claims.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var (
		verr   ledger.ValidationError
		balErr *ledger.ExceedsBalanceError
		gwErr  *gateway.Error
	)

	switch {
	case errors.As(err, &verr), errors.As(err, &balErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrNotRefundable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gateway.ErrUnavailable), errors.As(err, &gwErr):
		http.Error(w, "payment provider error", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
