package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"uniFinder/internal/middleware"
	"uniFinder/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRoutes_AuthBoundaries(t *testing.T) {
	e := echo.New()
	api := e.Group("/api/v1")

	authRequired := middleware.AuthMiddleware()
	SetupUniversityRoutes(api, rest.NewUniversityHandler(nil), authRequired, middleware.AdminOnly())
	SetupProfileRoutes(api, rest.NewProfileHandler(nil), authRequired)
	SetupPredictRoutes(api, rest.NewPredictHandler(nil), authRequired)
	SetupMetricsRoutes(e)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/v1/universities", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/universities/x", http.StatusUnauthorized},
		{http.MethodDelete, "/api/v1/universities/x", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/students/x/profile", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/predict", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/predict-batch", http.StatusUnauthorized},
		{http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
