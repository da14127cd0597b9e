// Package course is a read-only adapter over the catalog owned by the course
// subsystem. The settlement engine only needs pricing, publication state and
// categories; everything else about courses lives elsewhere.
package course

import (
	"errors"

	"github.com/google/uuid"
)

type Course struct {
	ID            uuid.UUID
	Title         string
	Price         int64  // list price in cents
	DiscountPrice *int64 // promotional price in cents, overrides Price when set
	Categories    []string
	IsPublished   bool
	TotalStudents int
}

// EffectivePrice is the price a checkout starts from.
func (c *Course) EffectivePrice() int64 {
	if c.DiscountPrice != nil {
		return *c.DiscountPrice
	}

	return c.Price
}

var ErrNotFound = errors.New("course not found")
