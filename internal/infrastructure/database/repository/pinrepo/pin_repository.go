package pinrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ursa-server/spatial-api/internal/domain/pin"
	"ursa-server/spatial-api/internal/infrastructure/database/dbschema"
	"ursa-server/spatial-api/internal/utils/functional"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

type PinGormRepository struct {
	db *gorm.DB
}

var _ pin.Repository = (*PinGormRepository)(nil)

func NewPinGormRepository(db *gorm.DB) pin.Repository {
	return &PinGormRepository{db: db}
}

// Create implements pin.Repository.
func (repo *PinGormRepository) Create(ctx context.Context, p *pin.Pin) error {
	model := dbschema.NewSchemaPin(p)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create pin")
	}
	// Propagate generated id and insert timestamp back to the domain object.
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	return nil
}

// FindAll implements pin.Repository. Newest pins come first.
func (repo *PinGormRepository) FindAll(ctx context.Context) ([]*pin.Pin, error) {
	var rows []*dbschema.Pin
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find pins")
	}
	return functional.Map(rows, func(row *dbschema.Pin) *pin.Pin { return row.EtoD() }), nil
}

// FindInBounds implements pin.Repository. All four bounds are inclusive.
func (repo *PinGormRepository) FindInBounds(ctx context.Context, box pin.BoundingBox) ([]*pin.Pin, error) {
	var rows []*dbschema.Pin
	err := repo.db.WithContext(ctx).
		Where("lon >= ? AND lon <= ?", box.MinLon, box.MaxLon).
		Where("lat >= ? AND lat <= ?", box.MinLat, box.MaxLat).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find pins in bounding box")
	}
	return functional.Map(rows, func(row *dbschema.Pin) *pin.Pin { return row.EtoD() }), nil
}

// Delete implements pin.Repository. It reports whether the id existed.
func (repo *PinGormRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Delete(&dbschema.Pin{}, "id = ?", id)
	if result.Error != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete pin")
	}
	return result.RowsAffected > 0, nil
}

// DeleteMany implements pin.Repository. Requested ids that do not exist are
// silently ignored; the returned list holds only ids that were removed.
func (repo *PinGormRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	var present []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Pin{}).
		Where("id IN ?", ids).
		Pluck("id", &present).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to resolve pin ids")
	}
	if len(present) == 0 {
		return []uuid.UUID{}, nil
	}

	if err := repo.db.WithContext(ctx).Delete(&dbschema.Pin{}, "id IN ?", present).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete pins")
	}
	return present, nil
}

// DeleteAll implements pin.Repository and returns the number of pins removed.
func (repo *PinGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbschema.Pin{})
	if result.Error != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete all pins")
	}
	return result.RowsAffected, nil
}
