package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatMoney renders an amount stored as cents with its currency code,
// e.g. "299.99 USD".
func FormatMoney(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100.0, strings.ToUpper(currency))
}

// ParseCents parses a user-typed cent amount. Anything that is not a
// positive integer is rejected.
func ParseCents(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("enter a positive amount in cents")
	}

	return v, nil
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
