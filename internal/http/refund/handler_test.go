package refund

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        ledger.ValidationError("refund amount must be positive"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "amount over remaining balance",
			err:        fmt.Errorf("appending refund: %w", &ledger.ExceedsBalanceError{Remaining: 19999}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown transaction",
			err:        ledger.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-refundable status",
			err:        ledger.ErrNotRefundable,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "gateway unavailable",
			err:        gateway.ErrUnavailable,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "gateway rejection",
			err:        &gateway.Error{StatusCode: 402, Message: "charge already refunded"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
