package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/tool"
	"ursa-server/spatial-api/internal/infrastructure/crontab"
	"ursa-server/spatial-api/internal/infrastructure/database"
	"ursa-server/spatial-api/internal/infrastructure/database/repository"
	"ursa-server/spatial-api/internal/infrastructure/geocoding"
	"ursa-server/spatial-api/internal/infrastructure/llmprovider"
	"ursa-server/spatial-api/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.ConnectWithRetry(cfg.DatabaseURL, cfg.DBConnectRetries, cfg.DBConnectBackoff)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideToolGeocoder adapts the Nominatim client to the tool executor.
func ProvideToolGeocoder(client *geocoding.Client) tool.Geocoder {
	return geocoding.NewToolGeocoder(client)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Geocoding
	geocoding.NewClient,
	ProvideToolGeocoder,

	// LLM strategy
	llmprovider.NewStrategy,

	// Logger
	logger.GetLogger,

	// Crontab for conversation sweeping
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
