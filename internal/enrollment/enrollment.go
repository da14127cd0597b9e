// Package enrollment settles paid purchases into course access. It is the
// only creator of enrollment rows; the course subsystem owns everything that
// happens to an enrollment afterwards.
package enrollment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const StatusActive Status = "active"

// PaymentStatus mirrors the owning transaction's settlement state. Partial
// refunds update this field but do not revoke access.
type PaymentStatus string

const (
	PaymentPaid              PaymentStatus = "paid"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

type Enrollment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CourseID      uuid.UUID
	Status        Status
	PaymentStatus PaymentStatus
	EnrolledAt    time.Time
}

var ErrNotFound = errors.New("enrollment not found")
