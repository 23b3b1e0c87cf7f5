package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ursa-server/spatial-api/internal/utils/platformerrors"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())

	var seenInContext string
	router.GET("/ping", func(c *gin.Context) {
		seenInContext = platformerrors.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(recorder, request)

	header := recorder.Header().Get("X-Request-Id")
	if header == "" {
		t.Fatal("expected generated X-Request-Id header")
	}
	if seenInContext != header {
		t.Fatalf("request context id %q does not match header %q", seenInContext, header)
	}
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	request.Header.Set("X-Request-Id", "req-abc-123")
	router.ServeHTTP(recorder, request)

	if got := recorder.Header().Get("X-Request-Id"); got != "req-abc-123" {
		t.Fatalf("expected incoming id preserved, got %q", got)
	}
}
