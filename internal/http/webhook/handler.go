package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/webhook"
)

// maxBodyBytes caps webhook payloads; gateway events are small.
const maxBodyBytes = 1 << 20

type Handler struct {
	svc *webhook.Service
}

func NewHandler(svc *webhook.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.receive)
}

type receiveResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// receive reads the raw body so the signature is verified over exactly the
// bytes the gateway signed.
func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Handle(r.Context(), body, r.Header.Get(gateway.SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrBadSignature), errors.Is(err, webhook.ErrMalformed):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledger.ErrNotFound):
			// The gateway redelivers on 404, which covers events racing
			// ahead of the checkout record.
			http.Error(w, "unknown session", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := receiveResponse{Received: true, EventID: res.EventID, Duplicate: res.Duplicate}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
