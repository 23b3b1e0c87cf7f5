package geocodehandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/infrastructure/geocoding"
)

func newTestRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	client := geocoding.NewClient(&config.Config{
		NominatimBaseURL:   upstreamURL,
		NominatimUserAgent: "spatial-api-test/1.0",
		NominatimTimeout:   2 * time.Second,
	})
	handler := NewGeocodeHandler(client)

	router := gin.New()
	router.GET("/api/geocode", handler.Geocode)
	router.GET("/api/reverse", handler.Reverse)
	return router
}

func TestGeocodeEndpointPassesThroughRawCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522","display_name":"Paris","osm_type":"relation","boundingbox":["48.8","48.9","2.2","2.4"]}]`))
	}))
	defer upstream.Close()

	router := newTestRouter(upstream.URL)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/geocode?q=Paris", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	// Fields this service never models must survive the proxy untouched.
	assert.Equal(t, "relation", payload[0]["osm_type"])
	assert.NotNil(t, payload[0]["boundingbox"])
}

func TestGeocodeEndpointRequiresQuery(t *testing.T) {
	router := newTestRouter("http://unused.invalid")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/geocode", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGeocodeEndpointUpstreamFailureIs502(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	router := newTestRouter(upstream.URL)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/geocode?q=Paris", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestReverseEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Rue de Rivoli, Paris","address":{"city":"Paris"},"place_id":12345}`))
	}))
	defer upstream.Close()

	router := newTestRouter(upstream.URL)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/reverse?lat=48.8566&lon=2.3522", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, float64(12345), payload["place_id"])
}

func TestReverseEndpointRejectsBadCoordinates(t *testing.T) {
	router := newTestRouter("http://unused.invalid")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/reverse?lat=north&lon=2.35", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
