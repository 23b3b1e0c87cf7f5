package routes

import (
	"github.com/google/wire"

	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/chathandler"
	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/geocodehandler"
	"ursa-server/spatial-api/internal/interfaces/httpserver/handlers/pinhandler"
)

var RouteProvider = wire.NewSet(
	// Handlers
	pinhandler.NewPinHandler,
	geocodehandler.NewGeocodeHandler,
	chathandler.NewChatHandler,

	// Routes
	NewAPIRoute,
)
