package enrollment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/notify"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=enrollment
type Repository interface {
	GetByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error)

	// CreateSettled inserts the enrollment, its initial progress row and the
	// course's student-counter increment in one unit of work. When a row for
	// (userID, courseID) already exists the existing enrollment is returned
	// with created=false and nothing is written.
	CreateSettled(ctx context.Context, e *Enrollment) (*Enrollment, bool, error)
}

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Settle turns a completed transaction into course access. Idempotent: a
// retry for an already-settled purchase returns the existing enrollment
// unchanged and emits no event.
func (s *Service) Settle(ctx context.Context, t *ledger.Transaction) (*Enrollment, bool, error) {
	if t.CourseID == nil {
		return nil, false, ErrNotFound
	}

	e := &Enrollment{
		ID:            uuid.New(),
		UserID:        t.UserID,
		CourseID:      *t.CourseID,
		Status:        StatusActive,
		PaymentStatus: PaymentPaid,
	}

	settled, created, err := s.repo.CreateSettled(ctx, e)
	if err != nil {
		return nil, false, err
	}

	if created {
		// Notification delivery must never roll back settlement.
		event := notify.EnrollmentEvent{
			TransactionID: t.ID,
			UserID:        t.UserID,
			CourseID:      *t.CourseID,
			Amount:        t.NetAmount,
			Currency:      t.Currency,
			EnrolledAt:    settled.EnrolledAt,
		}

		if err := s.notifier.EnrollmentCreated(context.WithoutCancel(ctx), event); err != nil {
			slog.Error("failed to publish enrollment event",
				"transaction_id", t.ID, "error", err)
		}
	}

	return settled, created, nil
}

func (s *Service) Get(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error) {
	return s.repo.GetByUserCourse(ctx, userID, courseID)
}
