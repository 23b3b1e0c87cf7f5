package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ursa-server/spatial-api/internal/domain/pin"
	"ursa-server/spatial-api/internal/utils/functional"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// GeocodeCandidate is one forward-geocode match with parsed coordinates.
type GeocodeCandidate struct {
	Label string
	Lat   float64
	Lon   float64
}

// ReversePlace is a reverse-geocode descriptor.
type ReversePlace struct {
	DisplayName string
	Address     map[string]any
}

// Geocoder is the executor's view of the geocoding proxy.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]GeocodeCandidate, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*ReversePlace, error)
}

// Geocode result statuses. "ambiguous" carries a capped candidate list and is
// a first-class outcome: the orchestrator withholds it from client actions.
const (
	StatusResolved  = "resolved"
	StatusAmbiguous = "ambiguous"
)

// Executor maps a named tool invocation plus arguments to a concrete call
// against the pin service or geocoding proxy and normalizes the result into a
// JSON-ready payload.
type Executor struct {
	pins          *pin.Service
	geocoder      Geocoder
	maxCandidates int
}

func NewExecutor(pins *pin.Service, geocoder Geocoder, maxCandidates int) *Executor {
	return &Executor{pins: pins, geocoder: geocoder, maxCandidates: maxCandidates}
}

// Execute dispatches one tool call. Invalid input and unknown tool names come
// back as VALIDATION errors; the caller decides what a failure means for the
// surrounding conversation.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case NameGeocode:
		return e.geocode(ctx, args)
	case NameReverseGeocode:
		return e.reverseGeocode(ctx, args)
	case NameCreatePin:
		return e.createPin(ctx, args)
	case NameListPins:
		return e.listPins(ctx, args)
	case NameRemovePin:
		return e.removePin(ctx, args)
	case NameRemovePins:
		return e.removePins(ctx, args)
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
		fmt.Sprintf("unknown tool: %s", name), nil)
}

func (e *Executor) geocode(ctx context.Context, args map[string]any) (any, error) {
	query, ok := stringArg(args, "query")
	if !ok || query == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"geocode query is required", nil)
	}

	candidates, err := e.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no geocoding results found", nil)
	}
	if len(candidates) == 1 {
		best := candidates[0]
		return map[string]any{
			"status":       StatusResolved,
			"lat":          best.Lat,
			"lon":          best.Lon,
			"display_name": best.Label,
		}, nil
	}

	if len(candidates) > e.maxCandidates {
		candidates = candidates[:e.maxCandidates]
	}
	return map[string]any{
		"status": StatusAmbiguous,
		"candidates": functional.Map(candidates, func(c GeocodeCandidate) map[string]any {
			return map[string]any{"label": c.Label, "lat": c.Lat, "lon": c.Lon}
		}),
	}, nil
}

func (e *Executor) reverseGeocode(ctx context.Context, args map[string]any) (any, error) {
	lat, latOK := floatArg(args, "lat")
	lon, lonOK := floatArg(args, "lon")
	if !latOK || !lonOK {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"lat and lon are required", nil)
	}

	place, err := e.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"display_name": place.DisplayName,
		"address":      place.Address,
	}, nil
}

func (e *Executor) createPin(ctx context.Context, args map[string]any) (any, error) {
	lat, latOK := floatArg(args, "lat")
	lon, lonOK := floatArg(args, "lon")
	title, titleOK := stringArg(args, "title")
	if !latOK || !lonOK || !titleOK {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"lat, lon and title are required", nil)
	}

	input := pin.CreatePinInput{Title: title, Lat: lat, Lon: lon}
	if notes, ok := stringArg(args, "notes"); ok {
		input.Notes = &notes
	}

	created, err := e.pins.CreatePin(ctx, input)
	if err != nil {
		return nil, err
	}
	return serializePin(created), nil
}

func (e *Executor) listPins(ctx context.Context, args map[string]any) (any, error) {
	var (
		pins []*pin.Pin
		err  error
	)
	if raw, ok := args["bbox"]; ok && raw != nil {
		values, ok := floatSlice(raw)
		if !ok {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"bbox must be a list of numbers", nil)
		}
		box, parseErr := pin.ParseBoundingBox(values)
		if parseErr != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				parseErr.Error(), nil)
		}
		pins, err = e.pins.ListPinsInBounds(ctx, *box)
	} else {
		pins, err = e.pins.ListPins(ctx)
	}
	if err != nil {
		return nil, err
	}
	return functional.Map(pins, serializePin), nil
}

func (e *Executor) removePin(ctx context.Context, args map[string]any) (any, error) {
	id, ok := stringArg(args, "id")
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"pin id is required", nil)
	}
	pinID, err := uuid.Parse(id)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("invalid pin id %q", id), err)
	}

	removed, err := e.pins.DeletePin(ctx, pinID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": id, "removed": removed}, nil
}

func (e *Executor) removePins(ctx context.Context, args map[string]any) (any, error) {
	raw, ok := args["ids"]
	if !ok || raw == nil {
		count, err := e.pins.DeleteAllPins(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"removed_all": true, "count": count}, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"pin ids must be a list", nil)
	}

	// Non-string entries are silently dropped, matching the tool contract.
	ids := make([]uuid.UUID, 0, len(list))
	for _, item := range list {
		str, ok := item.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("invalid pin id %q", str), err)
		}
		ids = append(ids, id)
	}

	removed, err := e.pins.DeletePins(ctx, ids)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"removed_all": false,
		"ids":         functional.Map(removed, func(id uuid.UUID) string { return id.String() }),
		"count":       len(removed),
	}, nil
}

func serializePin(p *pin.Pin) map[string]any {
	var notes any
	if p.Notes != nil {
		notes = *p.Notes
	}
	return map[string]any{
		"id":         p.ID.String(),
		"title":      p.Title,
		"notes":      notes,
		"lat":        p.Lat,
		"lon":        p.Lon,
		"created_at": p.CreatedAt.Format(time.RFC3339),
	}
}

func stringArg(args map[string]any, key string) (string, bool) {
	value, ok := args[key].(string)
	return value, ok
}

func floatArg(args map[string]any, key string) (float64, bool) {
	switch value := args[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	}
	return 0, false
}

func floatSlice(raw any) ([]float64, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	values := make([]float64, 0, len(list))
	for _, item := range list {
		number, ok := item.(float64)
		if !ok {
			return nil, false
		}
		values = append(values, number)
	}
	return values, true
}
