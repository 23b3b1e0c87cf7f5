// Package pinhandler exposes pin CRUD over HTTP.
package pinhandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ursa-server/spatial-api/internal/domain/pin"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/interfaces/httpserver/requests"
	"ursa-server/spatial-api/internal/interfaces/httpserver/responses"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// PinHandler handles pin-related HTTP requests.
type PinHandler struct {
	pinService *pin.Service
}

// NewPinHandler creates a new pin handler.
func NewPinHandler(pinService *pin.Service) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// ListPins returns stored pins, newest first. An optional bbox query
// parameter (minLon,minLat,maxLon,maxLat) restricts the result to pins
// inside the box.
func (h *PinHandler) ListPins(c *gin.Context) {
	ctx := c.Request.Context()

	rawBox := c.Query("bbox")
	if rawBox == "" {
		pins, err := h.pinService.ListPins(ctx)
		if err != nil {
			platformerrors.WriteError(c, err, logger.GetLogger())
			return
		}
		c.JSON(http.StatusOK, responses.NewPinListResponse(pins))
		return
	}

	box, err := parseBBoxQuery(rawBox)
	if err != nil {
		platformerrors.WriteValidationError(c, "bbox must be minLon,minLat,maxLon,maxLat")
		return
	}

	pins, err := h.pinService.ListPinsInBounds(ctx, *box)
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}
	c.JSON(http.StatusOK, responses.NewPinListResponse(pins))
}

// CreatePin stores a new pin and returns it with its assigned id.
func (h *PinHandler) CreatePin(c *gin.Context) {
	var req requests.CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "title, lat and lon are required")
		return
	}

	created, err := h.pinService.CreatePin(c.Request.Context(), pin.CreatePinInput{
		Title: req.Title,
		Notes: req.Notes,
		Lat:   *req.Lat,
		Lon:   *req.Lon,
	})
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}

	c.JSON(http.StatusCreated, responses.NewPinResponse(created))
}

// DeletePin removes one pin by id.
func (h *PinHandler) DeletePin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		platformerrors.WriteValidationError(c, "pin id must be a valid uuid")
		return
	}

	removed, err := h.pinService.DeletePin(c.Request.Context(), id)
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}
	if !removed {
		platformerrors.WriteNotFound(c, "pin not found")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseBBoxQuery(raw string) (*pin.BoundingBox, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return pin.ParseBoundingBox(values)
}
