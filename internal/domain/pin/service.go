package pin

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// Service owns pin lifecycle rules on top of the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePinInput carries the caller-supplied pin fields.
type CreatePinInput struct {
	Title string
	Notes *string
	Lat   float64
	Lon   float64
}

// CreatePin validates the input and persists a new pin. The id and creation
// timestamp are assigned by the store and never updated afterwards.
func (s *Service) CreatePin(ctx context.Context, input CreatePinInput) (*Pin, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"pin title is required", nil)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("pin title exceeds %d characters", MaxTitleLength), nil)
	}

	p := &Pin{
		Title: title,
		Notes: input.Notes,
		Lat:   input.Lat,
		Lon:   input.Lon,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create pin")
	}
	return p, nil
}

// ListPins returns every pin, newest first.
func (s *Service) ListPins(ctx context.Context) ([]*Pin, error) {
	pins, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list pins")
	}
	return pins, nil
}

// ListPinsInBounds returns pins inside the inclusive bounding box, newest first.
func (s *Service) ListPinsInBounds(ctx context.Context, box BoundingBox) ([]*Pin, error) {
	pins, err := s.repo.FindInBounds(ctx, box)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list pins in bounding box")
	}
	return pins, nil
}

// DeletePin removes one pin. It reports found=false for an unknown id rather
// than failing.
func (s *Service) DeletePin(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete pin")
	}
	return found, nil
}

// DeletePins removes the requested subset and returns the ids that actually
// existed. Unknown ids are silently ignored.
func (s *Service) DeletePins(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	removed, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete pins")
	}
	return removed, nil
}

// DeleteAllPins removes every pin and returns the number removed.
func (s *Service) DeleteAllPins(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete all pins")
	}
	return count, nil
}
