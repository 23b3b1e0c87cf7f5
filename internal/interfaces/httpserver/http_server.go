package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	middleware "ursa-server/spatial-api/internal/interfaces/httpserver/middlewares"
	"ursa-server/spatial-api/internal/interfaces/httpserver/responses"
	"ursa-server/spatial-api/internal/interfaces/httpserver/routes"
)

type HTTPServer struct {
	engine   *gin.Engine
	apiRoute *routes.APIRoute
	config   *config.Config
}

func NewHTTPServer(
	apiRoute *routes.APIRoute,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		apiRoute,
		cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.HealthResponse{Status: "ok"})
	})

	return &server
}

func (s *HTTPServer) Run() error {
	root := s.engine.Group("/")
	s.apiRoute.RegisterRouter(root)

	if err := s.engine.Run(fmt.Sprintf(":%d", s.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
