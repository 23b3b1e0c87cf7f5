package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

func newTestClient(serverURL, email string) *Client {
	return NewClient(&config.Config{
		NominatimBaseURL:   serverURL,
		NominatimUserAgent: "spatial-api-test/1.0",
		NominatimEmail:     email,
		NominatimTimeout:   2 * time.Second,
	})
}

func TestSearchPreservesRawPayload(t *testing.T) {
	body := `[{"lat":"48.8566","lon":"2.3522","display_name":"Paris, France","osm_id":71525,"importance":0.92}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("missing format=json, got %q", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("q") != "Paris" {
			t.Errorf("unexpected q %q", r.URL.Query().Get("q"))
		}
		if r.Header.Get("User-Agent") != "spatial-api-test/1.0" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	places, err := newTestClient(server.URL, "").Search(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(places))
	}

	lat, lon, err := places[0].Coordinates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 48.8566 || lon != 2.3522 {
		t.Fatalf("unexpected coordinates %f,%f", lat, lon)
	}

	// Raw must round-trip fields this service does not model.
	var raw map[string]any
	if err := json.Unmarshal(places[0].Raw, &raw); err != nil {
		t.Fatalf("raw payload not valid json: %v", err)
	}
	if raw["osm_id"] != float64(71525) {
		t.Fatalf("expected osm_id preserved, got %v", raw["osm_id"])
	}
}

func TestSearchSendsContactEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") != "ops@example.com" {
			t.Errorf("expected email param, got %q", r.URL.Query().Get("email"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL, "ops@example.com").Search(context.Background(), "anywhere"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchUpstreamFailureIsExternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bogged down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Search(context.Background(), "Paris")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("expected external error, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	body := `{"display_name":"Rue de Rivoli, Paris, France","address":{"road":"Rue de Rivoli","city":"Paris"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "48.8566" {
			t.Errorf("unexpected lat %q", r.URL.Query().Get("lat"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL, "").Reverse(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DisplayName != "Rue de Rivoli, Paris, France" {
		t.Fatalf("unexpected display name %q", result.DisplayName)
	}
	if result.Address["city"] != "Paris" {
		t.Fatalf("unexpected address %v", result.Address)
	}
	if len(result.Raw) == 0 {
		t.Fatal("expected raw payload preserved")
	}
}
