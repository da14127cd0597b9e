package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/coupon"
	"github.com/skillforge/coursepay/internal/course"
	"github.com/skillforge/coursepay/internal/enrollment"
	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=checkout

// Repository persists the atomic checkout unit: the pending transaction and,
// when a coupon is applied, its redemption. Either both land or neither does.
type Repository interface {
	CreateCheckout(ctx context.Context, t *ledger.Transaction, u *coupon.Usage) error
}

// Catalog is the read side of the course subsystem.
type Catalog interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*course.Course, error)
}

// Enrollments answers whether the buyer already owns the course.
type Enrollments interface {
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

// Coupons validates a code against the prospective purchase. The binding
// limit re-check happens inside the checkout unit, not here.
type Coupons interface {
	Validate(ctx context.Context, p coupon.ValidateParams) (*coupon.Coupon, error)
}

// Settler grants course access for a completed transaction.
type Settler interface {
	Settle(ctx context.Context, t *ledger.Transaction) (*enrollment.Enrollment, bool, error)
}

type Config struct {
	SuccessURL string
	CancelURL  string
}

type Service struct {
	cfg         Config
	repo        Repository
	catalog     Catalog
	enrollments Enrollments
	coupons     Coupons
	gateway     gateway.Client
	settler     Settler
}

func NewService(cfg Config, repo Repository, catalog Catalog, enrollments Enrollments, coupons Coupons, gw gateway.Client, settler Settler) *Service {
	return &Service{
		cfg:         cfg,
		repo:        repo,
		catalog:     catalog,
		enrollments: enrollments,
		coupons:     coupons,
		gateway:     gw,
		settler:     settler,
	}
}

type CreateParams struct {
	UserID     uuid.UUID
	CourseID   uuid.UUID
	CouponCode string
}

// CreateCheckout starts a purchase. The gateway session is opened before the
// local rows exist; if recording them fails the session is voided so no
// payable session survives without a matching transaction.
func (s *Service) CreateCheckout(ctx context.Context, p CreateParams) (*Checkout, error) {
	c, err := s.catalog.GetCourse(ctx, p.CourseID)
	if err != nil {
		return nil, err
	}

	if !c.IsPublished {
		return nil, ErrCourseNotPublished
	}

	enrolled, err := s.enrollments.Exists(ctx, p.UserID, p.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	price := c.EffectivePrice()

	var (
		cpn      *coupon.Coupon
		discount int64
		code     *string
	)

	if p.CouponCode != "" {
		cpn, err = s.coupons.Validate(ctx, coupon.ValidateParams{
			Code:             p.CouponCode,
			CourseID:         p.CourseID,
			CourseCategories: c.Categories,
			UserID:           p.UserID,
			PurchaseAmount:   price,
			Now:              time.Now(),
		})
		if err != nil {
			return nil, err
		}

		discount = coupon.ComputeDiscount(cpn, price)
		code = &cpn.Code
	}

	t, err := ledger.NewPending(ledger.CreateParams{
		UserID:         p.UserID,
		CourseID:       &p.CourseID,
		Amount:         price,
		DiscountAmount: discount,
		CouponCode:     code,
	})
	if err != nil {
		return nil, err
	}

	var usage *coupon.Usage
	if cpn != nil {
		usage = &coupon.Usage{
			ID:              uuid.New(),
			CouponID:        cpn.ID,
			UserID:          p.UserID,
			TransactionID:   t.ID,
			DiscountApplied: discount,
		}
	}

	if t.NetAmount == 0 {
		return s.settleFree(ctx, t, usage)
	}

	session, err := s.gateway.CreateSession(ctx, gateway.SessionRequest{
		Amount:     t.NetAmount,
		Currency:   t.Currency,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Metadata: map[string]string{
			"order_id":  t.OrderID,
			"user_id":   p.UserID.String(),
			"course_id": p.CourseID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	t.GatewaySessionID = session.ID

	if err := s.repo.CreateCheckout(ctx, t, usage); err != nil {
		if voidErr := s.gateway.VoidSession(context.WithoutCancel(ctx), session.ID); voidErr != nil {
			slog.Error("failed to void orphaned gateway session",
				"session_id", session.ID, "error", voidErr)
		}

		return nil, err
	}

	return &Checkout{
		Transaction:  t,
		CheckoutURL:  session.RedirectURL,
		ClientSecret: session.ClientSecret,
	}, nil
}

// settleFree completes a zero-amount purchase on the spot. There is nothing
// to collect, so no gateway session is opened and the transaction is
// recorded already completed.
func (s *Service) settleFree(ctx context.Context, t *ledger.Transaction, usage *coupon.Usage) (*Checkout, error) {
	now := time.Now()
	t.Status = ledger.StatusCompleted
	t.CompletedAt = &now

	if err := s.repo.CreateCheckout(ctx, t, usage); err != nil {
		return nil, err
	}

	e, _, err := s.settler.Settle(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to settle free checkout: %w", err)
	}

	return &Checkout{
		Transaction: t,
		Settled:     true,
		Enrollment:  e,
	}, nil
}
