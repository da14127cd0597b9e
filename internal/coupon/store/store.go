package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skillforge/coursepay/internal/coupon"
	"github.com/skillforge/coursepay/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCouponColumns = `
	c.id, c.code, c.type, c.value, c.minimum_amount, c.maximum_discount,
	c.usage_limit, c.usage_limit_per_user, c.used_count,
	c.applicable_courses, c.applicable_categories, c.exclude_courses, c.exclude_categories,
	c.starts_at, c.expires_at, c.is_active, c.created_at, c.updated_at
`

func scanCoupon(s scanner) (*coupon.Coupon, error) {
	var c coupon.Coupon

	var (
		typeStr        string
		valueStr       string
		maxDiscount    sql.NullInt64
		usageLimit     sql.NullInt32
		applicable     []byte
		applicableCats []byte
		excluded       []byte
		excludedCats   []byte
	)

	if err := s.Scan(
		&c.ID, &c.Code, &typeStr, &valueStr, &c.MinimumAmount, &maxDiscount,
		&usageLimit, &c.UsageLimitPerUser, &c.UsedCount,
		&applicable, &applicableCats, &excluded, &excludedCats,
		&c.StartsAt, &c.ExpiresAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = coupon.Type(typeStr)

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("parsing coupon value: %w", err)
	}

	c.Value = value

	if maxDiscount.Valid {
		c.MaximumDiscount = &maxDiscount.Int64
	}

	if usageLimit.Valid {
		limit := int(usageLimit.Int32)
		c.UsageLimit = &limit
	}

	if err := json.Unmarshal(applicable, &c.ApplicableCourses); err != nil {
		return nil, fmt.Errorf("decoding applicable courses: %w", err)
	}

	if err := json.Unmarshal(applicableCats, &c.ApplicableCategories); err != nil {
		return nil, fmt.Errorf("decoding applicable categories: %w", err)
	}

	if err := json.Unmarshal(excluded, &c.ExcludeCourses); err != nil {
		return nil, fmt.Errorf("decoding exclude courses: %w", err)
	}

	if err := json.Unmarshal(excludedCats, &c.ExcludeCategories); err != nil {
		return nil, fmt.Errorf("decoding exclude categories: %w", err)
	}

	return &c, nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	query := `SELECT ` + selectCouponColumns + ` FROM coupons c WHERE c.code = $1`

	c, err := scanCoupon(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coupon.ErrNotFound
		}

		return nil, fmt.Errorf("getting coupon by code: %w", err)
	}

	return c, nil
}

func (s *Store) GetCoupon(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	query := `SELECT ` + selectCouponColumns + ` FROM coupons c WHERE c.id = $1`

	c, err := scanCoupon(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coupon.ErrNotFound
		}

		return nil, fmt.Errorf("getting coupon: %w", err)
	}

	return c, nil
}

func (s *Store) ListCoupons(ctx context.Context) ([]*coupon.Coupon, error) {
	query := `SELECT ` + selectCouponColumns + ` FROM coupons c ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*coupon.Coupon

	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning coupon: %w", err)
		}

		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coupon rows: %w", err)
	}

	return coupons, nil
}

func (s *Store) CreateCoupon(ctx context.Context, c *coupon.Coupon) error {
	applicable, applicableCats, excluded, excludedCats, err := encodeLists(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO coupons
			(id, code, type, value, minimum_amount, maximum_discount,
			 usage_limit, usage_limit_per_user, used_count,
			 applicable_courses, applicable_categories, exclude_courses, exclude_categories,
			 starts_at, expires_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.ID, c.Code, c.Type, c.Value.String(), c.MinimumAmount, c.MaximumDiscount,
		nullableInt(c.UsageLimit), c.UsageLimitPerUser, c.UsedCount,
		applicable, applicableCats, excluded, excludedCats,
		c.StartsAt, c.ExpiresAt, c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating coupon: %w", err)
	}

	return nil
}

func (s *Store) UpdateCoupon(ctx context.Context, c *coupon.Coupon) error {
	applicable, applicableCats, excluded, excludedCats, err := encodeLists(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE coupons
		SET type = $1, value = $2, minimum_amount = $3, maximum_discount = $4,
		    usage_limit = $5, usage_limit_per_user = $6,
		    applicable_courses = $7, applicable_categories = $8,
		    exclude_courses = $9, exclude_categories = $10,
		    starts_at = $11, expires_at = $12, is_active = $13, updated_at = NOW()
		WHERE id = $14
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Type, c.Value.String(), c.MinimumAmount, c.MaximumDiscount,
		nullableInt(c.UsageLimit), c.UsageLimitPerUser,
		applicable, applicableCats, excluded, excludedCats,
		c.StartsAt, c.ExpiresAt, c.IsActive, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating coupon: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return coupon.ErrNotFound
	}

	return nil
}

func (s *Store) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE coupons SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivating coupon: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return coupon.ErrNotFound
	}

	return nil
}

func (s *Store) CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupon_usage WHERE coupon_id = $1 AND user_id = $2`,
		couponID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting coupon usage: %w", err)
	}

	return count, nil
}

// RedeemTx consumes one use of the coupon inside a caller-owned database
// transaction. The usage limit is re-checked under a row lock on the coupon
// row; losing the race for the last use surfaces as coupon.ErrLimitReached.
func RedeemTx(ctx context.Context, q database.DBTX, u *coupon.Usage) error {
	var (
		usageLimit sql.NullInt32
		usedCount  int
	)

	err := q.QueryRowContext(ctx,
		`SELECT usage_limit, used_count FROM coupons WHERE id = $1 FOR UPDATE`,
		u.CouponID,
	).Scan(&usageLimit, &usedCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return coupon.ErrNotFound
		}

		return fmt.Errorf("locking coupon: %w", err)
	}

	if usageLimit.Valid && usedCount >= int(usageLimit.Int32) {
		return coupon.ErrLimitReached
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE coupons SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`,
		u.CouponID,
	); err != nil {
		return fmt.Errorf("incrementing coupon usage: %w", err)
	}

	if _, err := q.ExecContext(ctx,
		`INSERT INTO coupon_usage (id, coupon_id, user_id, transaction_id, discount_applied, used_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		u.ID, u.CouponID, u.UserID, u.TransactionID, u.DiscountApplied,
	); err != nil {
		return fmt.Errorf("inserting coupon usage: %w", err)
	}

	return nil
}

func (s *Store) RecordUsage(ctx context.Context, u *coupon.Usage) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning redemption tx: %w", err)
	}
	defer dbTx.Rollback()

	if err := RedeemTx(ctx, dbTx, u); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing redemption tx: %w", err)
	}

	return nil
}

func encodeLists(c *coupon.Coupon) (applicable, applicableCats, excluded, excludedCats []byte, err error) {
	if applicable, err = json.Marshal(orEmptyUUIDs(c.ApplicableCourses)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding applicable courses: %w", err)
	}

	if applicableCats, err = json.Marshal(orEmptyStrings(c.ApplicableCategories)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding applicable categories: %w", err)
	}

	if excluded, err = json.Marshal(orEmptyUUIDs(c.ExcludeCourses)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding exclude courses: %w", err)
	}

	if excludedCats, err = json.Marshal(orEmptyStrings(c.ExcludeCategories)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encoding exclude categories: %w", err)
	}

	return applicable, applicableCats, excluded, excludedCats, nil
}

func orEmptyUUIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}

	return ids
}

func orEmptyStrings(ss []string) []string {
	if ss == nil {
		return []string{}
	}

	return ss
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}

	return *v
}
