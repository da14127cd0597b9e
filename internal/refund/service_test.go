package refund_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/refund"
)

func completedTransaction(amount int64) *ledger.Transaction {
	now := time.Now()

	return &ledger.Transaction{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Amount:          amount,
		NetAmount:       amount,
		Currency:        "USD",
		Status:          ledger.StatusCompleted,
		GatewayChargeID: "ch_1",
		CompletedAt:     &now,
	}
}

func TestService_ProcessRefund(t *testing.T) {
	admin := uuid.New()

	t.Run("PartialRefund", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction(50000)

		l := refund.NewMockLedger(ctrl)
		l.EXPECT().Get(gomock.Any(), tx.ID).Return(tx, nil)
		l.EXPECT().SumCompletedRefunds(gomock.Any(), tx.ID).Return(int64(0), nil)

		gw := gateway.NewMockClient(ctrl)
		gw.EXPECT().
			CreateRefund(gomock.Any(), "ch_1", int64(20000)).
			Return(&gateway.RefundResult{ID: "re_1", Status: "succeeded"}, nil)

		l.EXPECT().
			AppendRefund(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p ledger.AppendRefundParams) (*ledger.RefundOutcome, error) {
				assert.Equal(t, int64(20000), p.Amount)
				assert.Equal(t, "re_1", p.GatewayRefundID)
				assert.Equal(t, admin, p.ProcessedBy)

				partial := *tx
				partial.Status = ledger.StatusPartiallyRefunded
				return &ledger.RefundOutcome{
					Refund: &ledger.Refund{
						ID:            uuid.New(),
						TransactionID: p.TransactionID,
						Amount:        p.Amount,
						Reason:        p.Reason,
						Status:        ledger.RefundCompleted,
					},
					Transaction: &partial,
				}, nil
			})

		got, err := refund.NewService(l, gw).ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        20000,
			Reason:        ledger.ReasonCustomerRequest,
			ProcessedBy:   admin,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(20000), got.Amount)
		assert.Equal(t, ledger.RefundCompleted, got.Status)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := refund.NewService(refund.NewMockLedger(ctrl), gateway.NewMockClient(ctrl))

		_, err := svc.ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: uuid.New(),
			Amount:        0,
			Reason:        ledger.ReasonCustomerRequest,
		})

		var verr ledger.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("UnknownReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := refund.NewService(refund.NewMockLedger(ctrl), gateway.NewMockClient(ctrl))

		_, err := svc.ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: uuid.New(),
			Amount:        100,
			Reason:        ledger.RefundReason("buyer_remorse"),
		})

		var verr ledger.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("NotRefundableStatus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction(50000)
		tx.Status = ledger.StatusPending

		l := refund.NewMockLedger(ctrl)
		l.EXPECT().Get(gomock.Any(), tx.ID).Return(tx, nil)

		_, err := refund.NewService(l, gateway.NewMockClient(ctrl)).ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        100,
			Reason:        ledger.ReasonCustomerRequest,
		})

		assert.ErrorIs(t, err, ledger.ErrNotRefundable)
	})

	t.Run("ExceedsRemainingBalance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction(50000)
		tx.Status = ledger.StatusPartiallyRefunded

		l := refund.NewMockLedger(ctrl)
		l.EXPECT().Get(gomock.Any(), tx.ID).Return(tx, nil)
		l.EXPECT().SumCompletedRefunds(gomock.Any(), tx.ID).Return(int64(30001), nil)

		_, err := refund.NewService(l, gateway.NewMockClient(ctrl)).ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        20000,
			Reason:        ledger.ReasonCustomerRequest,
		})

		var balErr *ledger.ExceedsBalanceError
		require.ErrorAs(t, err, &balErr)
		assert.Equal(t, int64(19999), balErr.Remaining)
		assert.Contains(t, balErr.Error(), "199.99")
	})

	t.Run("GatewayFailureLeavesLedgerUntouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction(50000)

		l := refund.NewMockLedger(ctrl)
		l.EXPECT().Get(gomock.Any(), tx.ID).Return(tx, nil)
		l.EXPECT().SumCompletedRefunds(gomock.Any(), tx.ID).Return(int64(0), nil)

		gw := gateway.NewMockClient(ctrl)
		gw.EXPECT().
			CreateRefund(gomock.Any(), "ch_1", int64(50000)).
			Return(nil, &gateway.Error{StatusCode: 502, Message: "provider error"})

		// No AppendRefund expectation: nothing local may change.
		_, err := refund.NewService(l, gw).ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        50000,
			Reason:        ledger.ReasonCustomerRequest,
		})

		var gwErr *gateway.Error
		assert.ErrorAs(t, err, &gwErr)
	})

	t.Run("FullRefundAfterPartial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction(50000)
		tx.Status = ledger.StatusPartiallyRefunded

		l := refund.NewMockLedger(ctrl)
		l.EXPECT().Get(gomock.Any(), tx.ID).Return(tx, nil)
		l.EXPECT().SumCompletedRefunds(gomock.Any(), tx.ID).Return(int64(20000), nil)

		gw := gateway.NewMockClient(ctrl)
		gw.EXPECT().
			CreateRefund(gomock.Any(), "ch_1", int64(30000)).
			Return(&gateway.RefundResult{ID: "re_2", Status: "succeeded"}, nil)

		l.EXPECT().
			AppendRefund(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p ledger.AppendRefundParams) (*ledger.RefundOutcome, error) {
				full := *tx
				full.Status = ledger.StatusRefunded
				return &ledger.RefundOutcome{
					Refund: &ledger.Refund{
						ID:     uuid.New(),
						Amount: p.Amount,
						Status: ledger.RefundCompleted,
					},
					Transaction: &full,
				}, nil
			})

		got, err := refund.NewService(l, gw).ProcessRefund(context.Background(), refund.ProcessParams{
			TransactionID: tx.ID,
			Amount:        30000,
			Reason:        ledger.ReasonDuplicate,
			ProcessedBy:   admin,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(30000), got.Amount)
	})
}
