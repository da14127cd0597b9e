// Package store persists the checkout unit. It owns no SQL of its own: the
// ledger and coupon stores expose tx-scoped helpers, and this package runs
// them on a single database transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillforge/coursepay/internal/coupon"
	couponstore "github.com/skillforge/coursepay/internal/coupon/store"
	"github.com/skillforge/coursepay/internal/ledger"
	ledgerstore "github.com/skillforge/coursepay/internal/ledger/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateCheckout records the transaction and, when usage is non-nil, the
// coupon redemption in one database transaction. The redemption re-checks
// the coupon's usage limit under a row lock, so a lost race rolls the whole
// checkout back.
func (s *Store) CreateCheckout(ctx context.Context, t *ledger.Transaction, u *coupon.Usage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ledgerstore.CreateTransactionTx(ctx, tx, t); err != nil {
		return err
	}

	if u != nil {
		if err := couponstore.RedeemTx(ctx, tx, u); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
