package routes

import (
	"github.com/gin-gonic/gin"

	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/chathandler"
	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/geocodehandler"
	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/pinhandler"
)

// APIRoute registers the /api surface.
type APIRoute struct {
	pinHandler     *pinhandler.PinHandler
	geocodeHandler *geocodehandler.GeocodeHandler
	chatHandler    *chathandler.ChatHandler
}

func NewAPIRoute(
	pinHandler *pinhandler.PinHandler,
	geocodeHandler *geocodehandler.GeocodeHandler,
	chatHandler *chathandler.ChatHandler,
) *APIRoute {
	return &APIRoute{
		pinHandler,
		geocodeHandler,
		chatHandler,
	}
}

// RegisterRouter mounts the API endpoints on the given router group.
func (r *APIRoute) RegisterRouter(router *gin.RouterGroup) {
	api := router.Group("/api")

	api.GET("/pins", r.pinHandler.ListPins)
	api.POST("/pins", r.pinHandler.CreatePin)
	api.DELETE("/pins/:id", r.pinHandler.DeletePin)

	api.GET("/geocode", r.geocodeHandler.Geocode)
	api.GET("/reverse", r.geocodeHandler.Reverse)

	api.POST("/chat", r.chatHandler.Chat)
}
