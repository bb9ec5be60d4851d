package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := telemetry.NewMetrics()
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/api/warehouses/:id", okHandler)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/warehouses/W1", "/api/warehouses/W2", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	assert.Contains(t, body, `remeals_http_requests_total{method="GET",route="/api/warehouses/:id",status="200"} 2`)
	assert.Contains(t, body, `remeals_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}
