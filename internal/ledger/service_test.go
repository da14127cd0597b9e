package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skillforge/coursepay/internal/ledger"
)

func TestService_CreatePending(t *testing.T) {
	courseID := uuid.New()

	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.CreateParams{
				UserID:           uuid.New(),
				CourseID:         &courseID,
				Amount:           29999,
				DiscountAmount:   0,
				FeeAmount:        899,
				Currency:         "USD",
				GatewaySessionID: "cs_123",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "NegativeAmount",
			params:  ledger.CreateParams{UserID: uuid.New(), Amount: -1},
			wantErr: true,
		},
		{
			name:    "NegativeDiscount",
			params:  ledger.CreateParams{UserID: uuid.New(), Amount: 100, DiscountAmount: -5},
			wantErr: true,
		},
		{
			name: "DiscountAndFeeExceedAmount",
			params: ledger.CreateParams{
				UserID:         uuid.New(),
				Amount:         1000,
				DiscountAmount: 900,
				FeeAmount:      200,
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: ledger.CreateParams{UserID: uuid.New(), Amount: 500},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.CreatePending(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, ledger.StatusPending, got.Status)
			assert.NotEmpty(t, got.ID)
			assert.NotEmpty(t, got.OrderID)
			assert.Equal(t, got.Amount-got.DiscountAmount-got.FeeAmount, got.NetAmount)
		})
	}
}

func TestNewPending_ValidationErrorType(t *testing.T) {
	_, err := ledger.NewPending(ledger.CreateParams{Amount: -1})

	var verr ledger.ValidationError

	require.ErrorAs(t, err, &verr)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	type testCase struct {
		from ledger.Status
		to   ledger.Status
		want bool
	}

	tests := []testCase{
		{ledger.StatusPending, ledger.StatusProcessing, true},
		{ledger.StatusPending, ledger.StatusCompleted, true},
		{ledger.StatusPending, ledger.StatusFailed, true},
		{ledger.StatusPending, ledger.StatusCancelled, true},
		{ledger.StatusPending, ledger.StatusRefunded, false},
		{ledger.StatusProcessing, ledger.StatusCompleted, true},
		{ledger.StatusProcessing, ledger.StatusFailed, true},
		{ledger.StatusCompleted, ledger.StatusPartiallyRefunded, true},
		{ledger.StatusCompleted, ledger.StatusRefunded, true},
		{ledger.StatusCompleted, ledger.StatusFailed, false},
		{ledger.StatusCompleted, ledger.StatusPending, false},
		{ledger.StatusPartiallyRefunded, ledger.StatusRefunded, true},
		{ledger.StatusPartiallyRefunded, ledger.StatusCompleted, false},
		{ledger.StatusRefunded, ledger.StatusRefunded, false},
		{ledger.StatusFailed, ledger.StatusCompleted, false},
		{ledger.StatusCancelled, ledger.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestService_Transition(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	type testCase struct {
		name        string
		from        []ledger.Status
		to          ledger.Status
		setupMock   func(m *ledger.MockRepository)
		wantApplied bool
		wantErr     error
	}

	tests := []testCase{
		{
			name: "AppliedFromPending",
			from: []ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
			to:   ledger.StatusCompleted,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Transition(gomock.Any(), id, []ledger.Status{ledger.StatusPending, ledger.StatusProcessing}, ledger.StatusCompleted, gomock.Any()).
					Return(&ledger.Transaction{ID: id, Status: ledger.StatusCompleted, CompletedAt: &now}, true, nil)
			},
			wantApplied: true,
		},
		{
			name: "NoOpOnRedelivery",
			from: []ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
			to:   ledger.StatusCompleted,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Transition(gomock.Any(), id, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
					Return(&ledger.Transaction{ID: id, Status: ledger.StatusCompleted}, false, nil)
			},
			wantApplied: false,
		},
		{
			name:    "IllegalTransitionRejectedBeforeRepo",
			from:    []ledger.Status{ledger.StatusFailed},
			to:      ledger.StatusCompleted,
			wantErr: ledger.ErrInvalidTransition,
		},
		{
			name:    "EmptyFromSetRejected",
			from:    nil,
			to:      ledger.StatusCompleted,
			wantErr: ledger.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, applied, err := svc.Transition(context.Background(), id, tt.from, tt.to, ledger.TransitionFields{})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}

func TestService_AppendRefund(t *testing.T) {
	txID := uuid.New()
	actor := uuid.New()

	type testCase struct {
		name      string
		params    ledger.AppendRefundParams
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.AppendRefundParams{
				TransactionID: txID,
				Amount:        10000,
				Reason:        ledger.ReasonCustomerRequest,
				ProcessedBy:   actor,
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					AppendRefund(gomock.Any(), gomock.Any()).
					Return(&ledger.RefundOutcome{
						Refund:      &ledger.Refund{ID: uuid.New(), TransactionID: txID, Amount: 10000},
						Transaction: &ledger.Transaction{ID: txID, Status: ledger.StatusPartiallyRefunded},
					}, nil)
			},
		},
		{
			name:    "ZeroAmount",
			params:  ledger.AppendRefundParams{TransactionID: txID, Amount: 0, Reason: ledger.ReasonOther},
			wantErr: true,
		},
		{
			name:    "NegativeAmount",
			params:  ledger.AppendRefundParams{TransactionID: txID, Amount: -100, Reason: ledger.ReasonOther},
			wantErr: true,
		},
		{
			name:    "UnknownReason",
			params:  ledger.AppendRefundParams{TransactionID: txID, Amount: 100, Reason: "buyer_remorse"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.AppendRefund(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.Refund)
		})
	}
}

func TestExceedsBalanceError_Message(t *testing.T) {
	err := &ledger.ExceedsBalanceError{Remaining: 19999}

	assert.Contains(t, err.Error(), "199.99")
}
