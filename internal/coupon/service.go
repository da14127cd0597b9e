package coupon

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=coupon
type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*Coupon, error)
	ListCoupons(ctx context.Context) ([]*Coupon, error)
	CreateCoupon(ctx context.Context, c *Coupon) error
	UpdateCoupon(ctx context.Context, c *Coupon) error
	DeactivateCoupon(ctx context.Context, id uuid.UUID) error

	CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int, error)

	// RecordUsage re-checks the global usage limit under a row lock on the
	// coupon, increments the counter and inserts the usage row in one unit
	// of work. Returns ErrLimitReached when the last use was lost to a
	// concurrent redemption.
	RecordUsage(ctx context.Context, u *Usage) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ValidateParams struct {
	Code             string
	CourseID         uuid.UUID
	CourseCategories []string
	UserID           uuid.UUID
	PurchaseAmount   int64
	Now              time.Time
}

// Validate checks a coupon code against a prospective purchase and returns
// the first failing rule as a typed error. This is the early, advisory check;
// RecordUsage performs the binding limit re-check at redemption time because
// the two are separated by the gateway-session round-trip.
func (s *Service) Validate(ctx context.Context, p ValidateParams) (*Coupon, error) {
	c, err := s.repo.GetByCode(ctx, NormalizeCode(p.Code))
	if err != nil {
		return nil, err
	}

	if !c.IsActive {
		return nil, ErrInactive
	}

	if c.StartsAt != nil && p.Now.Before(*c.StartsAt) {
		return nil, ErrNotStarted
	}

	if c.ExpiresAt != nil && p.Now.After(*c.ExpiresAt) {
		return nil, ErrExpired
	}

	if p.PurchaseAmount < c.MinimumAmount {
		return nil, ErrBelowMinimum
	}

	if !c.applicableTo(p.CourseID, p.CourseCategories) {
		return nil, ErrNotApplicable
	}

	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return nil, ErrLimitReached
	}

	if c.UsageLimitPerUser > 0 {
		used, err := s.repo.CountUsageByUser(ctx, c.ID, p.UserID)
		if err != nil {
			return nil, err
		}

		if used >= c.UsageLimitPerUser {
			return nil, ErrUserLimit
		}
	}

	return c, nil
}

// RecordUsage consumes one use of the coupon for the given transaction.
func (s *Service) RecordUsage(ctx context.Context, c *Coupon, userID, transactionID uuid.UUID, discount int64) error {
	return s.repo.RecordUsage(ctx, &Usage{
		ID:              uuid.New(),
		CouponID:        c.ID,
		UserID:          userID,
		TransactionID:   transactionID,
		DiscountApplied: discount,
	})
}

type CreateParams struct {
	Code                 string
	Type                 Type
	Value                string // decimal string, e.g. "20" or "12.5"
	MinimumAmount        int64
	MaximumDiscount      *int64
	UsageLimit           *int
	UsageLimitPerUser    int
	ApplicableCourses    []uuid.UUID
	ApplicableCategories []string
	ExcludeCourses       []uuid.UUID
	ExcludeCategories    []string
	StartsAt             *time.Time
	ExpiresAt            *time.Time
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Coupon, error) {
	c, err := newCoupon(p)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateCoupon(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, c *Coupon) error {
	return s.repo.UpdateCoupon(ctx, c)
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateCoupon(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	return s.repo.GetCoupon(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	return s.repo.GetByCode(ctx, NormalizeCode(code))
}

func (s *Service) List(ctx context.Context) ([]*Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

func newCoupon(p CreateParams) (*Coupon, error) {
	code := NormalizeCode(p.Code)
	if code == "" {
		return nil, ValidationError("coupon code is required")
	}

	if p.Type != TypePercentage && p.Type != TypeFixedAmount {
		return nil, ValidationError("coupon type must be percentage or fixed_amount")
	}

	value, err := decimal.NewFromString(p.Value)
	if err != nil || value.IsNegative() {
		return nil, ValidationError("coupon value must be a non-negative number")
	}

	if p.Type == TypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ValidationError("percentage value must not exceed 100")
	}

	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return nil, ValidationError("usage limit must not be negative")
	}

	limitPerUser := p.UsageLimitPerUser
	if limitPerUser == 0 {
		limitPerUser = 1
	}

	return &Coupon{
		ID:                   uuid.New(),
		Code:                 code,
		Type:                 p.Type,
		Value:                value,
		MinimumAmount:        p.MinimumAmount,
		MaximumDiscount:      p.MaximumDiscount,
		UsageLimit:           p.UsageLimit,
		UsageLimitPerUser:    limitPerUser,
		ApplicableCourses:    p.ApplicableCourses,
		ApplicableCategories: p.ApplicableCategories,
		ExcludeCourses:       p.ExcludeCourses,
		ExcludeCategories:    p.ExcludeCategories,
		StartsAt:             p.StartsAt,
		ExpiresAt:            p.ExpiresAt,
		IsActive:             true,
	}, nil
}
