package dbschema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ursa-server/spatial-api/internal/domain/pin"
)

// Pin represents the database schema for pins
type Pin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Notes     *string   `gorm:"type:text"`
	Lat       float64   `gorm:"not null"`
	Lon       float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (p *Pin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// NewSchemaPin maps a domain pin onto the schema model.
func NewSchemaPin(d *pin.Pin) *Pin {
	return &Pin{
		ID:        d.ID,
		Title:     d.Title,
		Notes:     d.Notes,
		Lat:       d.Lat,
		Lon:       d.Lon,
		CreatedAt: d.CreatedAt,
	}
}

// EtoD converts the schema model back to the domain entity.
func (p *Pin) EtoD() *pin.Pin {
	return &pin.Pin{
		ID:        p.ID,
		Title:     p.Title,
		Notes:     p.Notes,
		Lat:       p.Lat,
		Lon:       p.Lon,
		CreatedAt: p.CreatedAt,
	}
}
