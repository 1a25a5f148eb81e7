package router

import (
	"uniFinder/internal/middleware"
	"uniFinder/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupUniversityRoutes(api *echo.Group, handler *rest.UniversityHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	universities := api.Group("/universities")

	universities.GET("", handler.GetAllUniversities)
	universities.GET("/:id", handler.GetUniversityByID)
	universities.POST("", handler.CreateUniversity, authRequired, adminOnly)
	universities.PUT("/:id", handler.UpdateUniversity, authRequired, adminOnly)
	universities.DELETE("/:id", handler.DeleteUniversity, authRequired, adminOnly)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	students := api.Group("/students", authRequired, middleware.SelfOrAdmin())

	students.GET("/:id/profile", handler.GetProfile)
	students.PUT("/:id/profile", handler.UpsertProfile)
}

func SetupPredictRoutes(api *echo.Group, handler *rest.PredictHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/predict", handler.Predict, authRequired)
	api.POST("/predict-batch", handler.PredictBatch, authRequired)
}

func SetupMatchRoutes(api *echo.Group, handler *rest.MatchHandler) {
	api.POST("/match", handler.Match)
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
