package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/database"
	"github.com/skillforge/coursepay/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.user_id, t.course_id, t.order_id, t.gateway_session_id, t.gateway_charge_id,
	t.amount, t.discount_amount, t.fee_amount, t.net_amount, t.currency, t.status,
	t.coupon_code, t.failure_reason, t.created_at, t.completed_at
`

// scanTransaction reads a transaction row in selectTransactionColumns order.
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	var statusStr string

	var couponCode sql.NullString

	if err := s.Scan(
		&t.ID, &t.UserID, &t.CourseID, &t.OrderID, &t.GatewaySessionID, &t.GatewayChargeID,
		&t.Amount, &t.DiscountAmount, &t.FeeAmount, &t.NetAmount, &t.Currency, &statusStr,
		&couponCode, &t.FailureReason, &t.CreatedAt, &t.CompletedAt,
	); err != nil {
		return nil, err
	}

	t.Status = ledger.Status(statusStr)

	if couponCode.Valid {
		t.CouponCode = &couponCode.String
	}

	return &t, nil
}

// CreateTransactionTx inserts the transaction using the given handle, which
// may be the pool or a caller-owned database transaction (checkout unit).
func CreateTransactionTx(ctx context.Context, q database.DBTX, t *ledger.Transaction) error {
	query := `
		INSERT INTO payment_transactions
			(id, user_id, course_id, order_id, gateway_session_id, gateway_charge_id,
			 amount, discount_amount, fee_amount, net_amount, currency, status,
			 coupon_code, failure_reason, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), $15)
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.CourseID, t.OrderID, t.GatewaySessionID, t.GatewayChargeID,
		t.Amount, t.DiscountAmount, t.FeeAmount, t.NetAmount, t.Currency, t.Status,
		t.CouponCode, t.FailureReason, t.CompletedAt,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *ledger.Transaction) error {
	return CreateTransactionTx(ctx, s.db, t)
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM payment_transactions t WHERE t.id = $1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return t, nil
}

func (s *Store) GetBySessionID(ctx context.Context, sessionID string) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM payment_transactions t
		WHERE t.gateway_session_id = $1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction by session: %w", err)
	}

	return t, nil
}

func (s *Store) Transition(ctx context.Context, id uuid.UUID, from []ledger.Status, to ledger.Status, fields ledger.TransitionFields) (*ledger.Transaction, bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("beginning transition tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectTransactionColumns + `
		FROM payment_transactions t
		WHERE t.id = $1
		FOR UPDATE`

	cur, err := scanTransaction(dbTx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, ledger.ErrNotFound
		}

		return nil, false, fmt.Errorf("locking transaction: %w", err)
	}

	if !statusIn(cur.Status, from) {
		// Lost the race or a redelivery: hand back the record unchanged.
		if err := dbTx.Commit(); err != nil {
			return nil, false, fmt.Errorf("committing transition tx: %w", err)
		}

		return cur, false, nil
	}

	cur.Status = to

	if fields.GatewayChargeID != "" {
		cur.GatewayChargeID = fields.GatewayChargeID
	}

	if fields.FailureReason != "" {
		cur.FailureReason = fields.FailureReason
	}

	if fields.CompletedAt != nil {
		cur.CompletedAt = fields.CompletedAt
	}

	update := `
		UPDATE payment_transactions
		SET status = $1, gateway_charge_id = $2, failure_reason = $3, completed_at = $4
		WHERE id = $5
	`
	if _, err := dbTx.ExecContext(ctx, update,
		cur.Status, cur.GatewayChargeID, cur.FailureReason, cur.CompletedAt, cur.ID,
	); err != nil {
		return nil, false, fmt.Errorf("updating transaction status: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, false, fmt.Errorf("committing transition tx: %w", err)
	}

	return cur, true, nil
}

func (s *Store) AppendRefund(ctx context.Context, p ledger.AppendRefundParams) (*ledger.RefundOutcome, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning refund tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectTransactionColumns + `
		FROM payment_transactions t
		WHERE t.id = $1
		FOR UPDATE`

	t, err := scanTransaction(dbTx.QueryRowContext(ctx, query, p.TransactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	if !t.Status.Refundable() {
		return nil, ledger.ErrNotRefundable
	}

	refunded, err := sumCompletedRefunds(ctx, dbTx, p.TransactionID)
	if err != nil {
		return nil, err
	}

	// Binding re-check under the row lock: the pre-check in the refund
	// processor happened before the gateway round-trip.
	remaining := t.RemainingBalance(refunded)
	if p.Amount > remaining {
		return nil, &ledger.ExceedsBalanceError{Remaining: remaining}
	}

	refund := &ledger.Refund{
		ID:              uuid.New(),
		TransactionID:   p.TransactionID,
		Amount:          p.Amount,
		Reason:          p.Reason,
		Status:          ledger.RefundCompleted,
		GatewayRefundID: p.GatewayRefundID,
		ProcessedBy:     p.ProcessedBy,
	}

	insert := `
		INSERT INTO refunds (id, transaction_id, amount, reason, status, gateway_refund_id, processed_by, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING processed_at
	`
	if err := dbTx.QueryRowContext(ctx, insert,
		refund.ID, refund.TransactionID, refund.Amount, refund.Reason,
		refund.Status, refund.GatewayRefundID, refund.ProcessedBy,
	).Scan(&refund.ProcessedAt); err != nil {
		return nil, fmt.Errorf("inserting refund: %w", err)
	}

	newStatus := ledger.StatusPartiallyRefunded
	if refunded+p.Amount == t.Amount {
		newStatus = ledger.StatusRefunded
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE payment_transactions SET status = $1 WHERE id = $2`,
		newStatus, t.ID,
	); err != nil {
		return nil, fmt.Errorf("updating transaction status: %w", err)
	}

	t.Status = newStatus

	// Mirror the new status onto the enrollment's payment_status. Access is
	// not revoked on partial refund.
	if t.CourseID != nil {
		if _, err := dbTx.ExecContext(ctx,
			`UPDATE enrollments SET payment_status = $1 WHERE user_id = $2 AND course_id = $3`,
			string(newStatus), t.UserID, *t.CourseID,
		); err != nil {
			return nil, fmt.Errorf("mirroring enrollment payment status: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing refund tx: %w", err)
	}

	return &ledger.RefundOutcome{Refund: refund, Transaction: t}, nil
}

func sumCompletedRefunds(ctx context.Context, q database.DBTX, transactionID uuid.UUID) (int64, error) {
	var total int64

	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM refunds WHERE transaction_id = $1 AND status = 'completed'`,
		transactionID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing refunds: %w", err)
	}

	return total, nil
}

func (s *Store) SumCompletedRefunds(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	return sumCompletedRefunds(ctx, s.db, transactionID)
}

func (s *Store) ListRefunds(ctx context.Context, transactionID uuid.UUID) ([]*ledger.Refund, error) {
	query := `
		SELECT id, transaction_id, amount, reason, status, gateway_refund_id, processed_by, processed_at
		FROM refunds
		WHERE transaction_id = $1
		ORDER BY processed_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing refunds: %w", err)
	}
	defer rows.Close()

	var refunds []*ledger.Refund

	for rows.Next() {
		var r ledger.Refund

		var reason, status string

		if err := rows.Scan(
			&r.ID, &r.TransactionID, &r.Amount, &reason, &status,
			&r.GatewayRefundID, &r.ProcessedBy, &r.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning refund: %w", err)
		}

		r.Reason = ledger.RefundReason(reason)
		r.Status = ledger.RefundStatus(status)

		refunds = append(refunds, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refund rows: %w", err)
	}

	return refunds, nil
}

func (s *Store) List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	return s.list(ctx, nil, filter)
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	return s.list(ctx, &userID, filter)
}

func (s *Store) list(ctx context.Context, userID *uuid.UUID, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM payment_transactions t
		WHERE 1=1`

	args := []any{}
	argIdx := 1

	if userID != nil {
		query += fmt.Sprintf(" AND t.user_id = $%d", argIdx)

		args = append(args, *userID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func statusIn(s ledger.Status, set []ledger.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}

	return false
}
