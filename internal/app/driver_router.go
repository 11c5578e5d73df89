package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"uitgo/internal/handler"
	"uitgo/internal/middleware"
)

// DriverRouterDeps contains the dependencies of the driver-service router.
type DriverRouterDeps struct {
	DriverHandler        *handler.DriverHandler
	InternalServiceToken string
	NewRelicApp          *newrelic.Application
}

// NewDriverRouter creates the driver-service Gin router.
func NewDriverRouter(deps DriverRouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", handler.Health("driver-service"))

	// Client-facing routes, reached through the gateway.
	router.POST("/charge", deps.DriverHandler.Charge)
	router.POST("/find-driver", deps.DriverHandler.FindDriver)
	router.PATCH("/complete-trip", deps.DriverHandler.CompleteTrip)

	// Service-to-service routes, guarded by the internal token.
	internal := router.Group("/", middleware.InternalAuth(deps.InternalServiceToken))
	{
		internal.PUT("/api/drivers/:driver_id/status", deps.DriverHandler.UpdateStatus)
	}

	return router
}
