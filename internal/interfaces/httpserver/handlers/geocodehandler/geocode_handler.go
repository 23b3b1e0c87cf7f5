// Package geocodehandler proxies the geocoding provider without reshaping
// its payloads.
package geocodehandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ursa-server/spatial-api/internal/infrastructure/geocoding"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/infrastructure/metrics"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// GeocodeHandler handles geocoding proxy HTTP requests.
type GeocodeHandler struct {
	client *geocoding.Client
}

// NewGeocodeHandler creates a new geocoding handler.
func NewGeocodeHandler(client *geocoding.Client) *GeocodeHandler {
	return &GeocodeHandler{client: client}
}

// Geocode forward-geocodes a free-text query. The provider's candidate
// objects are returned byte-for-byte, preserving fields this service does
// not model.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		platformerrors.WriteValidationError(c, "query parameter q is required")
		return
	}

	places, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}
	metrics.GeocodeLookupsTotal.WithLabelValues("forward").Inc()

	raw := make([]json.RawMessage, 0, len(places))
	for _, place := range places {
		raw = append(raw, place.Raw)
	}
	c.JSON(http.StatusOK, raw)
}

// Reverse resolves a latitude/longitude pair to the provider's raw address
// descriptor.
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		platformerrors.WriteValidationError(c, "query parameter lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		platformerrors.WriteValidationError(c, "query parameter lon must be a number")
		return
	}

	result, err := h.client.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}
	metrics.GeocodeLookupsTotal.WithLabelValues("reverse").Inc()

	c.Data(http.StatusOK, "application/json", result.Raw)
}
