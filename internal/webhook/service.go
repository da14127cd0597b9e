package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/enrollment"
	"github.com/skillforge/coursepay/internal/gateway"
	"github.com/skillforge/coursepay/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=webhook

// Ledger is the slice of the transaction ledger the reconciler drives.
type Ledger interface {
	GetBySessionID(ctx context.Context, sessionID string) (*ledger.Transaction, error)
	Transition(ctx context.Context, id uuid.UUID, from []ledger.Status, to ledger.Status, fields ledger.TransitionFields) (*ledger.Transaction, bool, error)
}

// Settler grants course access once a transaction completes.
type Settler interface {
	Settle(ctx context.Context, t *ledger.Transaction) (*enrollment.Enrollment, bool, error)
}

// Repository records deliveries for deduplication.
type Repository interface {
	// InsertEvent stores the delivery, or returns the previously recorded
	// event for the same (provider, event id) with created=false.
	InsertEvent(ctx context.Context, e *Event) (*Event, bool, error)

	// MarkProcessed stamps the event; only stamped events deduplicate
	// redeliveries. RecordFailure keeps the event retryable.
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, msg string) error
}

type Service struct {
	repo    Repository
	ledger  Ledger
	settler Settler
	secret  []byte
}

func NewService(repo Repository, l Ledger, settler Settler, secret []byte) *Service {
	return &Service{repo: repo, ledger: l, settler: settler, secret: secret}
}

// payload is the gateway's delivery envelope.
type payload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		SessionID     string `json:"session_id"`
		ChargeID      string `json:"charge_id"`
		FailureReason string `json:"failure_reason"`
	} `json:"data"`
}

// Handle processes one raw delivery. The signature is verified against the
// untouched body before anything is parsed. Duplicate deliveries succeed
// without side effects; deliveries for transactions already past the
// expected status succeed as no-ops.
func (s *Service) Handle(ctx context.Context, body []byte, signature string) (*Result, error) {
	if !gateway.VerifySignature(body, signature, s.secret) {
		slog.Warn("rejected webhook with invalid signature",
			"provider", Provider, "body_bytes", len(body))

		return nil, ErrBadSignature
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if p.ID == "" || p.Type == "" {
		return nil, ErrMalformed
	}

	res := &Result{EventID: p.ID, Type: p.Type}

	// Resolve the transaction before recording the event so an unknown
	// session is rejected without consuming the event id; the gateway will
	// redeliver once checkout has been recorded.
	var t *ledger.Transaction
	switch p.Type {
	case EventCheckoutCompleted, EventPaymentFailed:
		if p.Data.SessionID == "" {
			return nil, ErrMalformed
		}

		var err error
		t, err = s.ledger.GetBySessionID(ctx, p.Data.SessionID)
		if err != nil {
			return nil, err
		}
	}

	e, created, err := s.repo.InsertEvent(ctx, &Event{
		ID:       uuid.New(),
		Provider: Provider,
		EventID:  p.ID,
		Type:     p.Type,
		Payload:  body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record webhook event: %w", err)
	}

	if !created && e.ProcessedAt != nil {
		res.Duplicate = true
		return res, nil
	}

	switch p.Type {
	case EventCheckoutCompleted:
		res.Applied, err = s.completeCheckout(ctx, t, p.Data.ChargeID)
	case EventPaymentFailed:
		res.Applied, err = s.failPayment(ctx, t, p.Data.FailureReason)
	default:
		slog.Info("ignoring webhook event of unhandled type",
			"event_id", p.ID, "type", p.Type)
	}

	if err != nil {
		if recErr := s.repo.RecordFailure(ctx, e.ID, err.Error()); recErr != nil {
			slog.Error("failed to record webhook processing error",
				"event_id", p.ID, "error", recErr)
		}

		return nil, err
	}

	if err := s.repo.MarkProcessed(ctx, e.ID); err != nil {
		return nil, fmt.Errorf("failed to mark webhook event processed: %w", err)
	}

	return res, nil
}

func (s *Service) completeCheckout(ctx context.Context, t *ledger.Transaction, chargeID string) (bool, error) {
	now := time.Now()

	t, applied, err := s.ledger.Transition(ctx, t.ID,
		[]ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
		ledger.StatusCompleted,
		ledger.TransitionFields{GatewayChargeID: chargeID, CompletedAt: &now})
	if err != nil {
		return false, err
	}

	if !applied {
		if t.Status != ledger.StatusCompleted {
			slog.Info("checkout completion ignored for transaction past completion",
				"transaction_id", t.ID, "status", t.Status)

			return false, nil
		}

		// The transition committed on an earlier delivery that errored before
		// settlement finished. Settle is idempotent, so the redelivery must
		// settle again instead of skipping straight to the processed stamp.
		slog.Info("checkout completion redelivered for completed transaction",
			"transaction_id", t.ID)
	}

	if _, _, err := s.settler.Settle(ctx, t); err != nil {
		return false, fmt.Errorf("failed to settle enrollment: %w", err)
	}

	return applied, nil
}

func (s *Service) failPayment(ctx context.Context, t *ledger.Transaction, reason string) (bool, error) {
	t, applied, err := s.ledger.Transition(ctx, t.ID,
		[]ledger.Status{ledger.StatusPending, ledger.StatusProcessing},
		ledger.StatusFailed,
		ledger.TransitionFields{FailureReason: reason})
	if err != nil {
		return false, err
	}

	if !applied {
		// A failure arriving after completion never claws the payment back.
		slog.Info("payment failure ignored for transaction past pending",
			"transaction_id", t.ID, "status", t.Status)
	}

	return applied, nil
}
