package coupon

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/coupon"
)

type couponResponse struct {
	ID                   uuid.UUID   `json:"id"`
	Code                 string      `json:"code"`
	Type                 coupon.Type `json:"type"`
	Value                string      `json:"value"`
	MinimumAmount        int64       `json:"minimum_amount"`
	MaximumDiscount      *int64      `json:"maximum_discount,omitempty"`
	UsageLimit           *int        `json:"usage_limit,omitempty"`
	UsageLimitPerUser    int         `json:"usage_limit_per_user"`
	UsedCount            int         `json:"used_count"`
	ApplicableCourses    []uuid.UUID `json:"applicable_courses,omitempty"`
	ApplicableCategories []string    `json:"applicable_categories,omitempty"`
	ExcludeCourses       []uuid.UUID `json:"exclude_courses,omitempty"`
	ExcludeCategories    []string    `json:"exclude_categories,omitempty"`
	StartsAt             *time.Time  `json:"starts_at,omitempty"`
	ExpiresAt            *time.Time  `json:"expires_at,omitempty"`
	IsActive             bool        `json:"is_active"`
	CreatedAt            time.Time   `json:"created_at"`
}

func toResponse(c *coupon.Coupon) couponResponse {
	return couponResponse{
		ID:                   c.ID,
		Code:                 c.Code,
		Type:                 c.Type,
		Value:                c.Value.String(),
		MinimumAmount:        c.MinimumAmount,
		MaximumDiscount:      c.MaximumDiscount,
		UsageLimit:           c.UsageLimit,
		UsageLimitPerUser:    c.UsageLimitPerUser,
		UsedCount:            c.UsedCount,
		ApplicableCourses:    c.ApplicableCourses,
		ApplicableCategories: c.ApplicableCategories,
		ExcludeCourses:       c.ExcludeCourses,
		ExcludeCategories:    c.ExcludeCategories,
		StartsAt:             c.StartsAt,
		ExpiresAt:            c.ExpiresAt,
		IsActive:             c.IsActive,
		CreatedAt:            c.CreatedAt,
	}
}

func toResponseList(coupons []*coupon.Coupon) []couponResponse {
	resp := make([]couponResponse, len(coupons))
	for i, c := range coupons {
		resp[i] = toResponse(c)
	}

	return resp
}
