// Package notify publishes settlement events for the notification service.
// Delivery is fire-and-forget: a publish failure is logged and never rolls
// back the financial transaction that produced the event.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EnrollmentEvent is emitted after an enrollment is settled. The field names
// match what the downstream notification consumer expects.
type EnrollmentEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	UserID        uuid.UUID `json:"user_id"`
	CourseID      uuid.UUID `json:"course_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	EnrolledAt    time.Time `json:"enrolled_at"`
}

//go:generate mockgen -source=notify.go -destination=notifier_mock.go -package=notify
type Notifier interface {
	EnrollmentCreated(ctx context.Context, event EnrollmentEvent) error
}

// LogNotifier is the fallback when no broker is configured; it only records
// the event in the application log.
type LogNotifier struct{}

func (LogNotifier) EnrollmentCreated(_ context.Context, event EnrollmentEvent) error {
	slog.Info("enrollment created",
		"transaction_id", event.TransactionID,
		"user_id", event.UserID,
		"course_id", event.CourseID,
	)

	return nil
}
