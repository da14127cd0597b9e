// Package coupon validates and prices promotional codes and owns the usage
// counters that enforce redemption quotas.
package coupon

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes how a coupon's Value is interpreted.
type Type string

const (
	// TypePercentage discounts Value percent of the purchase amount.
	TypePercentage Type = "percentage"
	// TypeFixedAmount discounts Value cents, clamped to the purchase amount.
	TypeFixedAmount Type = "fixed_amount"
)

// Coupon is a promotional rule. The exclude lists win over the applicable
// lists when a course appears in both.
type Coupon struct {
	ID                   uuid.UUID
	Code                 string // stored upper-cased
	Type                 Type
	Value                decimal.Decimal
	MinimumAmount        int64  // cents; purchase must be at least this much
	MaximumDiscount      *int64 // cents; caps percentage discounts when set
	UsageLimit           *int   // nil = unlimited
	UsageLimitPerUser    int
	UsedCount            int
	ApplicableCourses    []uuid.UUID
	ApplicableCategories []string
	ExcludeCourses       []uuid.UUID
	ExcludeCategories    []string
	StartsAt             *time.Time // nil = no lower bound
	ExpiresAt            *time.Time // nil = no upper bound
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Usage is one redemption of a coupon, unique per transaction.
type Usage struct {
	ID              uuid.UUID
	CouponID        uuid.UUID
	UserID          uuid.UUID
	TransactionID   uuid.UUID
	DiscountApplied int64
	UsedAt          time.Time
}

var (
	ErrNotFound      = errors.New("coupon not found")
	ErrInactive      = errors.New("coupon is not active")
	ErrNotStarted    = errors.New("coupon is not valid yet")
	ErrExpired       = errors.New("coupon has expired")
	ErrBelowMinimum  = errors.New("purchase amount below coupon minimum")
	ErrNotApplicable = errors.New("coupon is not applicable to this course")
	ErrLimitReached  = errors.New("coupon usage limit reached")
	ErrUserLimit     = errors.New("coupon usage limit for this user reached")
)

// ValidationError reports bad input on coupon management operations.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// NormalizeCode upper-cases and trims a user-supplied coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ComputeDiscount returns the discount in cents for applying c to a purchase
// of amount cents. Pure: never negative, never exceeds amount.
func ComputeDiscount(c *Coupon, amount int64) int64 {
	if amount <= 0 {
		return 0
	}

	var discount int64

	switch c.Type {
	case TypePercentage:
		discount = decimal.NewFromInt(amount).
			Mul(c.Value).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()

		if c.MaximumDiscount != nil && discount > *c.MaximumDiscount {
			discount = *c.MaximumDiscount
		}
	case TypeFixedAmount:
		discount = c.Value.Round(0).IntPart()
	}

	if discount < 0 {
		return 0
	}

	if discount > amount {
		return amount
	}

	return discount
}

// applicableTo checks the course/category lists, exclusions first.
func (c *Coupon) applicableTo(courseID uuid.UUID, categories []string) bool {
	for _, ex := range c.ExcludeCourses {
		if ex == courseID {
			return false
		}
	}

	for _, ex := range c.ExcludeCategories {
		for _, cat := range categories {
			if strings.EqualFold(ex, cat) {
				return false
			}
		}
	}

	// No allow-lists means the coupon applies storewide.
	if len(c.ApplicableCourses) == 0 && len(c.ApplicableCategories) == 0 {
		return true
	}

	for _, ac := range c.ApplicableCourses {
		if ac == courseID {
			return true
		}
	}

	for _, ac := range c.ApplicableCategories {
		for _, cat := range categories {
			if strings.EqualFold(ac, cat) {
				return true
			}
		}
	}

	return false
}
