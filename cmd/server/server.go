package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/infrastructure/crontab"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/infrastructure/observability"
	"ursa-server/spatial-api/internal/interfaces/httpserver"
)

type Application struct {
	HTTPServer *httpserver.HTTPServer
	Crontab    *crontab.Crontab
	Config     *config.Config
}

func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := application.runMetricsServer()
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.Crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.HTTPServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func (application *Application) runMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", application.Config.MetricsPort), mux)
}

func main() {
	loadEnvFiles()

	ctx := context.Background()
	log := logger.GetLogger()

	if _, err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	cfg := config.GetGlobal()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fallback := logger.GetLogger()
		fallback.Fatal().Err(err).Msg("configure logger")
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	application.Start()
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
