package tool

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"ursa-server/spatial-api/internal/domain/pin"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

type fakeGeocoder struct {
	candidates []GeocodeCandidate
	place      *ReversePlace
	err        error
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) ([]GeocodeCandidate, error) {
	return g.candidates, g.err
}

func (g *fakeGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (*ReversePlace, error) {
	return g.place, g.err
}

type memoryRepository struct {
	pins []*pin.Pin
}

func (r *memoryRepository) Create(_ context.Context, p *pin.Pin) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	r.pins = append([]*pin.Pin{p}, r.pins...)
	return nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]*pin.Pin, error) {
	return append([]*pin.Pin(nil), r.pins...), nil
}

func (r *memoryRepository) FindInBounds(_ context.Context, box pin.BoundingBox) ([]*pin.Pin, error) {
	var out []*pin.Pin
	for _, p := range r.pins {
		if p.Lon >= box.MinLon && p.Lon <= box.MaxLon && p.Lat >= box.MinLat && p.Lat <= box.MaxLat {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, p := range r.pins {
		if p.ID == id {
			r.pins = append(r.pins[:i], r.pins[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) DeleteMany(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var removed []uuid.UUID
	for _, id := range ids {
		if found, _ := r.Delete(context.Background(), id); found {
			removed = append(removed, id)
		}
	}
	return removed, nil
}

func (r *memoryRepository) DeleteAll(_ context.Context) (int64, error) {
	count := int64(len(r.pins))
	r.pins = nil
	return count, nil
}

func newTestExecutor(geocoder Geocoder) (*Executor, *memoryRepository) {
	repo := &memoryRepository{}
	return NewExecutor(pin.NewService(repo), geocoder, 5), repo
}

func TestGeocodeSingleCandidateResolves(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{candidates: []GeocodeCandidate{
		{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522},
	}})

	result, err := executor.Execute(context.Background(), NameGeocode, map[string]any{"query": "Paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := result.(map[string]any)
	if payload["status"] != StatusResolved {
		t.Fatalf("expected resolved, got %v", payload["status"])
	}
	if payload["display_name"] != "Paris, France" {
		t.Fatalf("unexpected display_name: %v", payload["display_name"])
	}
}

func TestGeocodeMultipleCandidatesAmbiguousCapped(t *testing.T) {
	candidates := make([]GeocodeCandidate, 8)
	for i := range candidates {
		candidates[i] = GeocodeCandidate{Label: "Springfield", Lat: float64(i), Lon: float64(i)}
	}
	executor, _ := newTestExecutor(&fakeGeocoder{candidates: candidates})

	result, err := executor.Execute(context.Background(), NameGeocode, map[string]any{"query": "Springfield"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := result.(map[string]any)
	if payload["status"] != StatusAmbiguous {
		t.Fatalf("expected ambiguous, got %v", payload["status"])
	}
	list := payload["candidates"].([]map[string]any)
	if len(list) != 5 {
		t.Fatalf("expected candidate list capped at 5, got %d", len(list))
	}
}

func TestGeocodeNoResultsIsNotFound(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})

	_, err := executor.Execute(context.Background(), NameGeocode, map[string]any{"query": "xyzzy"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGeocodeMissingQuery(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})

	_, err := executor.Execute(context.Background(), NameGeocode, map[string]any{})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePinTool(t *testing.T) {
	executor, repo := newTestExecutor(&fakeGeocoder{})

	result, err := executor.Execute(context.Background(), NameCreatePin, map[string]any{
		"title": "Office",
		"lat":   52.52,
		"lon":   13.405,
		"notes": "door code 4711",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := result.(map[string]any)
	if payload["title"] != "Office" {
		t.Fatalf("unexpected title: %v", payload["title"])
	}
	if payload["notes"] != "door code 4711" {
		t.Fatalf("unexpected notes: %v", payload["notes"])
	}
	if len(repo.pins) != 1 {
		t.Fatalf("expected 1 stored pin, got %d", len(repo.pins))
	}
}

func TestRemovePinRejectsMalformedID(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})

	_, err := executor.Execute(context.Background(), NameRemovePin, map[string]any{"id": "not-a-uuid"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemovePinsWithoutIDsRemovesAll(t *testing.T) {
	executor, repo := newTestExecutor(&fakeGeocoder{})
	for _, title := range []string{"a", "b", "c"} {
		if _, err := executor.Execute(context.Background(), NameCreatePin, map[string]any{
			"title": title, "lat": 1.0, "lon": 2.0,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	result, err := executor.Execute(context.Background(), NameRemovePins, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := result.(map[string]any)
	if payload["removed_all"] != true {
		t.Fatalf("expected removed_all=true, got %v", payload["removed_all"])
	}
	if payload["count"] != int64(3) {
		t.Fatalf("expected count=3, got %v", payload["count"])
	}
	if len(repo.pins) != 0 {
		t.Fatalf("expected empty store, got %d pins", len(repo.pins))
	}
}

func TestRemovePinsDropsNonStringEntries(t *testing.T) {
	executor, repo := newTestExecutor(&fakeGeocoder{})
	created, err := executor.Execute(context.Background(), NameCreatePin, map[string]any{
		"title": "target", "lat": 1.0, "lon": 2.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := created.(map[string]any)["id"].(string)

	result, err := executor.Execute(context.Background(), NameRemovePins, map[string]any{
		"ids": []any{id, 42.0, true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := result.(map[string]any)
	if payload["removed_all"] != false {
		t.Fatalf("expected removed_all=false, got %v", payload["removed_all"])
	}
	if payload["count"] != 1 {
		t.Fatalf("expected count=1, got %v", payload["count"])
	}
	if len(repo.pins) != 0 {
		t.Fatalf("expected pin removed, got %d pins", len(repo.pins))
	}
}

func TestRemovePinsRejectsNonList(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})

	_, err := executor.Execute(context.Background(), NameRemovePins, map[string]any{"ids": "all"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnknownToolIsValidationError(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})

	_, err := executor.Execute(context.Background(), "teleport", map[string]any{})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPinsWithBBox(t *testing.T) {
	executor, _ := newTestExecutor(&fakeGeocoder{})
	if _, err := executor.Execute(context.Background(), NameCreatePin, map[string]any{
		"title": "inside", "lat": 1.0, "lon": 1.0,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := executor.Execute(context.Background(), NameCreatePin, map[string]any{
		"title": "outside", "lat": 50.0, "lon": 50.0,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := executor.Execute(context.Background(), NameListPins, map[string]any{
		"bbox": []any{0.0, 0.0, 10.0, 10.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pins := result.([]map[string]any)
	if len(pins) != 1 {
		t.Fatalf("expected 1 pin in bounds, got %d", len(pins))
	}
	if pins[0]["title"] != "inside" {
		t.Fatalf("unexpected pin: %v", pins[0])
	}
}
