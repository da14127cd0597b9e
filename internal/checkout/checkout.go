// Package checkout starts purchases: it prices the course, applies an
// optional coupon, opens the gateway session and records the pending
// transaction plus the coupon redemption in one unit of work.
package checkout

import (
	"errors"

	"github.com/skillforge/coursepay/internal/enrollment"
	"github.com/skillforge/coursepay/internal/ledger"
)

// Checkout is the outcome of starting a purchase. For paid courses the
// buyer is redirected to CheckoutURL and settlement arrives later over the
// webhook; Settled marks zero-amount purchases that completed immediately
// without a gateway session.
type Checkout struct {
	Transaction  *ledger.Transaction
	CheckoutURL  string
	ClientSecret string
	Settled      bool
	Enrollment   *enrollment.Enrollment
}

var (
	ErrCourseNotPublished = errors.New("course is not available for purchase")
	ErrAlreadyEnrolled    = errors.New("user is already enrolled in this course")
)
