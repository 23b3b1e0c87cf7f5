package pin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength bounds the pin title, matching the column width.
const MaxTitleLength = 255

// Pin is a stored named geographic point with optional notes.
type Pin struct {
	ID        uuid.UUID
	Title     string
	Notes     *string
	Lat       float64
	Lon       float64
	CreatedAt time.Time
}

// BoundingBox is an inclusive [minLon, minLat, maxLon, maxLat] filter.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// ParseBoundingBox builds a BoundingBox from the wire order
// [minLon, minLat, maxLon, maxLat].
func ParseBoundingBox(values []float64) (*BoundingBox, error) {
	if len(values) != 4 {
		return nil, fmt.Errorf("bounding box must have 4 values, got %d", len(values))
	}
	return &BoundingBox{
		MinLon: values[0],
		MinLat: values[1],
		MaxLon: values[2],
		MaxLat: values[3],
	}, nil
}

// Repository is the persistence contract for pins.
type Repository interface {
	Create(ctx context.Context, p *Pin) error
	FindAll(ctx context.Context) ([]*Pin, error)
	FindInBounds(ctx context.Context, box BoundingBox) ([]*Pin, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	DeleteAll(ctx context.Context) (int64, error)
}
