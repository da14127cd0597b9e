package coupon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/coupon"
)

type Handler struct {
	svc *coupon.Service
}

func NewHandler(svc *coupon.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.deactivate)
}

type createCouponRequest struct {
	Code                 string      `json:"code"`
	Type                 coupon.Type `json:"type"`
	Value                string      `json:"value"`
	MinimumAmount        int64       `json:"minimum_amount"`
	MaximumDiscount      *int64      `json:"maximum_discount,omitempty"`
	UsageLimit           *int        `json:"usage_limit,omitempty"`
	UsageLimitPerUser    int         `json:"usage_limit_per_user,omitempty"`
	ApplicableCourses    []uuid.UUID `json:"applicable_courses,omitempty"`
	ApplicableCategories []string    `json:"applicable_categories,omitempty"`
	ExcludeCourses       []uuid.UUID `json:"exclude_courses,omitempty"`
	ExcludeCategories    []string    `json:"exclude_categories,omitempty"`
	StartsAt             *time.Time  `json:"starts_at,omitempty"`
	ExpiresAt            *time.Time  `json:"expires_at,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), coupon.CreateParams{
		Code:                 req.Code,
		Type:                 req.Type,
		Value:                req.Value,
		MinimumAmount:        req.MinimumAmount,
		MaximumDiscount:      req.MaximumDiscount,
		UsageLimit:           req.UsageLimit,
		UsageLimitPerUser:    req.UsageLimitPerUser,
		ApplicableCourses:    req.ApplicableCourses,
		ApplicableCategories: req.ApplicableCategories,
		ExcludeCourses:       req.ExcludeCourses,
		ExcludeCategories:    req.ExcludeCategories,
		StartsAt:             req.StartsAt,
		ExpiresAt:            req.ExpiresAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(coupons)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCouponRequest struct {
	MinimumAmount     *int64     `json:"minimum_amount,omitempty"`
	MaximumDiscount   *int64     `json:"maximum_discount,omitempty"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	UsageLimitPerUser *int       `json:"usage_limit_per_user,omitempty"`
	StartsAt          *time.Time `json:"starts_at,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.MinimumAmount != nil {
		c.MinimumAmount = *req.MinimumAmount
	}

	if req.MaximumDiscount != nil {
		c.MaximumDiscount = req.MaximumDiscount
	}

	if req.UsageLimit != nil {
		c.UsageLimit = req.UsageLimit
	}

	if req.UsageLimitPerUser != nil {
		c.UsageLimitPerUser = *req.UsageLimitPerUser
	}

	if req.StartsAt != nil {
		c.StartsAt = req.StartsAt
	}

	if req.ExpiresAt != nil {
		c.ExpiresAt = req.ExpiresAt
	}

	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	var verr coupon.ValidationError

	switch {
	case errors.Is(err, coupon.ErrNotFound):
		http.Error(w, "coupon not found", http.StatusNotFound)
	case errors.As(err, &verr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
