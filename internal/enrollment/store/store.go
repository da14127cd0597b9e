package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/enrollment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectEnrollmentColumns = `id, user_id, course_id, status, payment_status, enrolled_at`

func (s *Store) GetByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + `
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2`

	e, err := scanEnrollment(s.db.QueryRowContext(ctx, query, userID, courseID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, enrollment.ErrNotFound
		}

		return nil, fmt.Errorf("getting enrollment: %w", err)
	}

	return e, nil
}

func (s *Store) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking enrollment: %w", err)
	}

	return exists, nil
}

func (s *Store) CreateSettled(ctx context.Context, e *enrollment.Enrollment) (*enrollment.Enrollment, bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("beginning settlement tx: %w", err)
	}
	defer dbTx.Rollback()

	insert := `
		INSERT INTO enrollments (id, user_id, course_id, status, payment_status, enrolled_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, course_id) DO NOTHING
		RETURNING enrolled_at
	`

	err = dbTx.QueryRowContext(ctx, insert,
		e.ID, e.UserID, e.CourseID, e.Status, e.PaymentStatus,
	).Scan(&e.EnrolledAt)

	if err == sql.ErrNoRows {
		// Concurrent or earlier settlement won: return the existing row.
		query := `SELECT ` + selectEnrollmentColumns + `
			FROM enrollments
			WHERE user_id = $1 AND course_id = $2`

		existing, err := scanEnrollment(dbTx.QueryRowContext(ctx, query, e.UserID, e.CourseID))
		if err != nil {
			return nil, false, fmt.Errorf("getting existing enrollment: %w", err)
		}

		if err := dbTx.Commit(); err != nil {
			return nil, false, fmt.Errorf("committing settlement tx: %w", err)
		}

		return existing, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("inserting enrollment: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO course_progress (id, enrollment_id, completed_items, percent, updated_at)
		 VALUES ($1, $2, 0, 0, NOW())`,
		uuid.New(), e.ID,
	); err != nil {
		return nil, false, fmt.Errorf("inserting initial progress: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE courses SET total_students = total_students + 1 WHERE id = $1`,
		e.CourseID,
	); err != nil {
		return nil, false, fmt.Errorf("incrementing student counter: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, false, fmt.Errorf("committing settlement tx: %w", err)
	}

	return e, true, nil
}

func scanEnrollment(row *sql.Row) (*enrollment.Enrollment, error) {
	var e enrollment.Enrollment

	var status, paymentStatus string

	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &status, &paymentStatus, &e.EnrolledAt); err != nil {
		return nil, err
	}

	e.Status = enrollment.Status(status)
	e.PaymentStatus = enrollment.PaymentStatus(paymentStatus)

	return &e, nil
}
