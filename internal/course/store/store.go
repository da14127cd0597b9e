package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/course"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetCourse(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	query := `
		SELECT id, title, price, discount_price, categories, is_published, total_students
		FROM courses
		WHERE id = $1
	`

	var c course.Course

	var categories []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Price, &c.DiscountPrice, &categories, &c.IsPublished, &c.TotalStudents,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, course.ErrNotFound
		}

		return nil, fmt.Errorf("getting course: %w", err)
	}

	if err := json.Unmarshal(categories, &c.Categories); err != nil {
		return nil, fmt.Errorf("decoding course categories: %w", err)
	}

	return &c, nil
}
