package webhook_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skillforge/coursepay/internal/enrollment"
	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
	"github.com/skillforge/coursepay/internal/webhook"
)

var testSecret = []byte("whsec_test")

type webhookMocks struct {
	repo    *webhook.MockRepository
	ledger  *webhook.MockLedger
	settler *webhook.MockSettler
}

func newWebhookMocks(ctrl *gomock.Controller) webhookMocks {
	return webhookMocks{
		repo:    webhook.NewMockRepository(ctrl),
		ledger:  webhook.NewMockLedger(ctrl),
		settler: webhook.NewMockSettler(ctrl),
	}
}

func (m webhookMocks) service() *webhook.Service {
	return webhook.NewService(m.repo, m.ledger, m.settler, testSecret)
}

func signedEvent(eventID, eventType, sessionID string) ([]byte, string) {
	body := []byte(fmt.Sprintf(
		`{"id":%q,"type":%q,"data":{"session_id":%q,"charge_id":"ch_1","failure_reason":"card_declined"}}`,
		eventID, eventType, sessionID,
	))

	return body, gateway.Sign(body, testSecret)
}

func pendingTransaction(sessionID string) *ledger.Transaction {
	courseID := uuid.New()

	return &ledger.Transaction{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		CourseID:         &courseID,
		GatewaySessionID: sessionID,
		Amount:           29999,
		NetAmount:        29999,
		Currency:         "USD",
		Status:           ledger.StatusPending,
	}
}

func expectInsertCreated(repo *webhook.MockRepository) {
	repo.EXPECT().
		InsertEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *webhook.Event) (*webhook.Event, bool, error) {
			return e, true, nil
		})
}

func TestService_Handle(t *testing.T) {
	t.Run("CheckoutCompletedSettles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_1", webhook.EventCheckoutCompleted, "cs_123")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID,
				[]ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
				ledger.StatusCompleted, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ []ledger.Status, _ ledger.Status, fields ledger.TransitionFields) (*ledger.Transaction, bool, error) {
				assert.Equal(t, "ch_1", fields.GatewayChargeID)
				require.NotNil(t, fields.CompletedAt)
				completed := *tx
				completed.Status = ledger.StatusCompleted
				return &completed, true, nil
			})
		m.settler.EXPECT().
			Settle(gomock.Any(), gomock.Any()).
			Return(&enrollment.Enrollment{ID: uuid.New()}, true, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.False(t, res.Duplicate)
		assert.Equal(t, "evt_1", res.EventID)
	})

	t.Run("BadSignature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body, _ := signedEvent("evt_1", webhook.EventCheckoutCompleted, "cs_123")

		_, err := m.service().Handle(context.Background(), body, "v1=deadbeef")

		assert.ErrorIs(t, err, webhook.ErrBadSignature)
	})

	t.Run("TamperedBody", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body, sig := signedEvent("evt_1", webhook.EventCheckoutCompleted, "cs_123")
		tampered := append([]byte{}, body...)
		tampered[len(tampered)-2] = '4'

		_, err := m.service().Handle(context.Background(), tampered, sig)

		assert.ErrorIs(t, err, webhook.ErrBadSignature)
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body := []byte(`{"id":"evt_1"`)

		_, err := m.service().Handle(context.Background(), body, gateway.Sign(body, testSecret))

		assert.ErrorIs(t, err, webhook.ErrMalformed)
	})

	t.Run("MissingEventType", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body := []byte(`{"id":"evt_1","data":{}}`)

		_, err := m.service().Handle(context.Background(), body, gateway.Sign(body, testSecret))

		assert.ErrorIs(t, err, webhook.ErrMalformed)
	})

	t.Run("DuplicateDeliveryHasNoSideEffects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_1", webhook.EventCheckoutCompleted, "cs_123")
		processedAt := time.Now().Add(-time.Minute)

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		m.repo.EXPECT().
			InsertEvent(gomock.Any(), gomock.Any()).
			Return(&webhook.Event{ID: uuid.New(), EventID: "evt_1", ProcessedAt: &processedAt}, false, nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.True(t, res.Duplicate)
		assert.False(t, res.Applied)
	})

	t.Run("UnprocessedDuplicateIsRetried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_1", webhook.EventCheckoutCompleted, "cs_123")
		stored := &webhook.Event{ID: uuid.New(), EventID: "evt_1"}

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		m.repo.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(stored, false, nil)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(tx, true, nil)
		m.settler.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), stored.ID).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.True(t, res.Applied)
	})

	t.Run("CompletionRedeliveryResettlesWithoutNewEnrollment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		tx.Status = ledger.StatusCompleted
		body, sig := signedEvent("evt_2", webhook.EventCheckoutCompleted, "cs_123")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(tx, false, nil)
		m.settler.EXPECT().
			Settle(gomock.Any(), tx).
			Return(&enrollment.Enrollment{ID: uuid.New()}, false, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.False(t, res.Applied)
	})

	t.Run("SettleFailureRecoveredOnRedelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_8", webhook.EventCheckoutCompleted, "cs_123")
		settleErr := errors.New("db unavailable")

		completed := *tx
		completed.Status = ledger.StatusCompleted

		// First delivery commits the transition but fails to settle.
		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(&completed, true, nil)
		m.settler.EXPECT().Settle(gomock.Any(), &completed).Return(nil, false, settleErr)
		m.repo.EXPECT().RecordFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		svc := m.service()
		_, err := svc.Handle(context.Background(), body, sig)
		require.ErrorIs(t, err, settleErr)

		// Redelivery finds the transition already applied and must still settle.
		stored := &webhook.Event{ID: uuid.New(), EventID: "evt_8"}
		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(&completed, nil)
		m.repo.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(stored, false, nil)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(&completed, false, nil)
		m.settler.EXPECT().
			Settle(gomock.Any(), &completed).
			Return(&enrollment.Enrollment{ID: uuid.New()}, true, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), stored.ID).Return(nil)

		res, err := svc.Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.False(t, res.Applied)
	})

	t.Run("CompletionAfterRefundDoesNotResettle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		tx.Status = ledger.StatusRefunded
		body, sig := signedEvent("evt_9", webhook.EventCheckoutCompleted, "cs_123")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(tx, false, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.False(t, res.Applied)
	})

	t.Run("FailureAfterCompletionIsIgnored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		tx.Status = ledger.StatusCompleted
		body, sig := signedEvent("evt_3", webhook.EventPaymentFailed, "cs_123")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID,
				[]ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
				ledger.StatusFailed, gomock.Any()).
			Return(tx, false, nil)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.False(t, res.Applied)
	})

	t.Run("PaymentFailedRecordsReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_4", webhook.EventPaymentFailed, "cs_123")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusFailed, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ []ledger.Status, _ ledger.Status, fields ledger.TransitionFields) (*ledger.Transaction, bool, error) {
				assert.Equal(t, "card_declined", fields.FailureReason)
				failed := *tx
				failed.Status = ledger.StatusFailed
				return &failed, true, nil
			})
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.True(t, res.Applied)
	})

	t.Run("UnknownSessionRejectedBeforeRecording", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body, sig := signedEvent("evt_5", webhook.EventCheckoutCompleted, "cs_missing")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_missing").Return(nil, ledger.ErrNotFound)

		_, err := m.service().Handle(context.Background(), body, sig)

		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("UnknownEventTypeAcknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		body, sig := signedEvent("evt_6", "charge.updated", "cs_123")

		expectInsertCreated(m.repo)
		m.repo.EXPECT().MarkProcessed(gomock.Any(), gomock.Any()).Return(nil)

		res, err := m.service().Handle(context.Background(), body, sig)

		require.NoError(t, err)
		assert.False(t, res.Applied)
	})

	t.Run("SettleFailureStaysRetryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newWebhookMocks(ctrl)
		tx := pendingTransaction("cs_123")
		body, sig := signedEvent("evt_7", webhook.EventCheckoutCompleted, "cs_123")
		settleErr := errors.New("db unavailable")

		m.ledger.EXPECT().GetBySessionID(gomock.Any(), "cs_123").Return(tx, nil)
		expectInsertCreated(m.repo)
		m.ledger.EXPECT().
			Transition(gomock.Any(), tx.ID, gomock.Any(), ledger.StatusCompleted, gomock.Any()).
			Return(tx, true, nil)
		m.settler.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, false, settleErr)
		m.repo.EXPECT().RecordFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := m.service().Handle(context.Background(), body, sig)

		assert.ErrorIs(t, err, settleErr)
	})
}
