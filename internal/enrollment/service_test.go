package enrollment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skillforge/coursepay/internal/enrollment"
	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/notify"
)

func completedTransaction() *ledger.Transaction {
	courseID := uuid.New()
	now := time.Now()

	return &ledger.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		CourseID:    &courseID,
		Amount:      29999,
		NetAmount:   29999,
		Currency:    "USD",
		Status:      ledger.StatusCompleted,
		CompletedAt: &now,
	}
}

func TestService_Settle(t *testing.T) {
	t.Run("CreatesEnrollmentAndNotifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction()

		repo := enrollment.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateSettled(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *enrollment.Enrollment) (*enrollment.Enrollment, bool, error) {
				assert.Equal(t, tx.UserID, e.UserID)
				assert.Equal(t, *tx.CourseID, e.CourseID)
				assert.Equal(t, enrollment.StatusActive, e.Status)
				assert.Equal(t, enrollment.PaymentPaid, e.PaymentStatus)
				e.EnrolledAt = time.Now()
				return e, true, nil
			})

		notifier := notify.NewMockNotifier(ctrl)
		notifier.EXPECT().
			EnrollmentCreated(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event notify.EnrollmentEvent) error {
				assert.Equal(t, tx.ID, event.TransactionID)
				assert.Equal(t, tx.NetAmount, event.Amount)
				return nil
			})

		svc := enrollment.NewService(repo, notifier)
		got, created, err := svc.Settle(context.Background(), tx)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, created)
	})

	t.Run("IdempotentRetryDoesNotNotify", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction()
		existing := &enrollment.Enrollment{
			ID:       uuid.New(),
			UserID:   tx.UserID,
			CourseID: *tx.CourseID,
			Status:   enrollment.StatusActive,
		}

		repo := enrollment.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateSettled(gomock.Any(), gomock.Any()).
			Return(existing, false, nil)

		// No EnrollmentCreated expectation: a second settle must stay silent.
		notifier := notify.NewMockNotifier(ctrl)

		svc := enrollment.NewService(repo, notifier)
		got, created, err := svc.Settle(context.Background(), tx)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, got.ID)
	})

	t.Run("NotifyFailureDoesNotFailSettlement", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction()

		repo := enrollment.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateSettled(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *enrollment.Enrollment) (*enrollment.Enrollment, bool, error) {
				return e, true, nil
			})

		notifier := notify.NewMockNotifier(ctrl)
		notifier.EXPECT().
			EnrollmentCreated(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))

		svc := enrollment.NewService(repo, notifier)
		got, created, err := svc.Settle(context.Background(), tx)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, created)
	})

	t.Run("NoCourseID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction()
		tx.CourseID = nil

		svc := enrollment.NewService(enrollment.NewMockRepository(ctrl), notify.NewMockNotifier(ctrl))
		_, _, err := svc.Settle(context.Background(), tx)

		require.Error(t, err)
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tx := completedTransaction()

		repo := enrollment.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateSettled(gomock.Any(), gomock.Any()).
			Return(nil, false, errors.New("db error"))

		svc := enrollment.NewService(repo, notify.NewMockNotifier(ctrl))
		_, _, err := svc.Settle(context.Background(), tx)

		require.Error(t, err)
	})
}
