package handler

import (
	_ "address-api/docs"
	"address-api/internal/metrics"
	"address-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires middleware and every route of the service.
func NewRouter(log zerolog.Logger, addresses *AddressHandler, health *HealthHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), metrics.Middleware())

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	a := r.Group("/addresses")
	a.POST("", addresses.Create)
	a.POST("/within_distance", addresses.WithinDistance)
	a.GET("/within_distance", addresses.WithinDistanceQuery)
	a.GET("/:id", addresses.Get)
	a.PUT("/:id", addresses.Update)
	a.DELETE("/:id", addresses.Delete)

	return r
}
