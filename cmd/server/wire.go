//go:build wireinject

package main

import (
	"github.com/google/wire"

	"ursa-server/spatial-api/internal/domain"
	"ursa-server/spatial-api/internal/infrastructure"
	"ursa-server/spatial-api/internal/interfaces"
	"ursa-server/spatial-api/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
