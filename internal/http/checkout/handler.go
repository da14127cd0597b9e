package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/checkout"
	"github.com/skillforge/coursepay/internal/coupon"
	"github.com/skillforge/coursepay/internal/course"
	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/http/auth"
	"github.com/skillforge/coursepay/internal/ledger"
)

type Handler struct {
	svc *checkout.Service
}

func NewHandler(svc *checkout.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
}

type createCheckoutRequest struct {
	CourseID   uuid.UUID `json:"course_id"`
	CouponCode string    `json:"coupon_code,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.CourseID == uuid.Nil {
		http.Error(w, "course_id is required", http.StatusBadRequest)
		return
	}

	out, err := h.svc.CreateCheckout(r.Context(), checkout.CreateParams{
		UserID:     claims.UserID,
		CourseID:   req.CourseID,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(out)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr ledger.ValidationError

	switch {
	case errors.Is(err, course.ErrNotFound):
		http.Error(w, "course not found", http.StatusNotFound)
	case errors.Is(err, checkout.ErrCourseNotPublished):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, checkout.ErrAlreadyEnrolled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, coupon.ErrNotFound):
		http.Error(w, "coupon not found", http.StatusNotFound)
	case isCouponRejection(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &verr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, gateway.ErrUnavailable), isGatewayError(err):
		http.Error(w, "payment provider error", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func isCouponRejection(err error) bool {
	for _, sentinel := range []error{
		coupon.ErrInactive,
		coupon.ErrNotStarted,
		coupon.ErrExpired,
		coupon.ErrBelowMinimum,
		coupon.ErrNotApplicable,
		coupon.ErrLimitReached,
		coupon.ErrUserLimit,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func isGatewayError(err error) bool {
	var gwErr *gateway.Error
	return errors.As(err, &gwErr)
}
