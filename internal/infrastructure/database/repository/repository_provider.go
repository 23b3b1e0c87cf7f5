package repository

import (
	"github.com/google/wire"

	"ursa-server/spatial-api/internal/infrastructure/database/repository/pinrepo"
)

var RepositoryProvider = wire.NewSet(
	pinrepo.NewPinGormRepository,
)
