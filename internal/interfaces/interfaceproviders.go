package interfaces

import (
	"github.com/google/wire"

	"ursa-server/spatial-api/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHTTPServer,
)
