package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError writes an error as an HTTP response. PlatformErrors map their
// type to a status code; anything else is treated as an internal error.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		c.JSON(http.StatusInternalServerError, HTTPErrorResponse{
			Error: &HTTPErrorDetail{Message: "unknown error", Type: "internal_error"},
		})
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		LogError(log, platformErr)
		c.JSON(ErrorTypeToHTTPStatus(platformErr.Type), HTTPErrorResponse{
			Error: &HTTPErrorDetail{
				Message:   platformErr.Message,
				Type:      errorTypeToString(platformErr.Type),
				RequestID: platformErr.RequestID,
			},
		})
		return
	}

	log.Error().Err(err).Msg("unclassified error")
	c.JSON(http.StatusInternalServerError, HTTPErrorResponse{
		Error: &HTTPErrorDetail{Message: err.Error(), Type: "internal_error"},
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, HTTPErrorResponse{
		Error: &HTTPErrorDetail{Message: message, Type: "not_found_error"},
	})
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, HTTPErrorResponse{
		Error: &HTTPErrorDetail{Message: message, Type: "validation_error"},
	})
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, HTTPErrorResponse{
		Error: &HTTPErrorDetail{Message: message, Type: "internal_error"},
	})
}

func errorTypeToString(errorType ErrorType) string {
	switch errorType {
	case ErrorTypeNotFound:
		return "not_found_error"
	case ErrorTypeValidation:
		return "validation_error"
	case ErrorTypeConflict:
		return "conflict_error"
	case ErrorTypeExternal:
		return "upstream_error"
	case ErrorTypeDatabaseError:
		return "database_error"
	default:
		return "internal_error"
	}
}
