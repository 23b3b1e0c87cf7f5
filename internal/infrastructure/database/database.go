package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"ursa-server/spatial-api/internal/infrastructure/logger"
)

// Config holds database configuration
type Config struct {
	DatabaseURL string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "spatial_api.",
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	return db, nil
}

// ConnectWithRetry retries Connect so the API can come up while Postgres is
// still booting. The last error is returned once attempts are exhausted.
func ConnectWithRetry(dsn string, attempts int, backoff time.Duration) (*gorm.DB, error) {
	log := logger.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := Connect(Config{
			DatabaseURL: dsn,
			MaxIdle:     10,
			MaxOpen:     25,
			MaxLifetime: 1 * time.Hour,
			LogLevel:    gormlogger.Silent,
		})
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("connected to database")
			return db, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).
			Msg("database not ready, retrying")
		if attempt < attempts {
			time.Sleep(backoff)
		}
	}
	return nil, lastErr
}
