package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"uitgo/internal/handler"
	"uitgo/internal/middleware"
)

// TripRouterDeps contains the dependencies of the trip-service router.
type TripRouterDeps struct {
	TripHandler *handler.TripHandler
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewTripRouter creates the trip-service Gin router.
func NewTripRouter(deps TripRouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(middleware.NewRedisResponseCache(deps.RedisClient)))
	}

	router.GET("/health", handler.Health("trip-service"))

	router.POST("/add_trip_data", deps.TripHandler.AddTrip)
	router.PATCH("/cancel_trip", deps.TripHandler.CancelTrip)
	router.PATCH("/update_driver", deps.TripHandler.UpdateDriver)
	router.PATCH("/assign-driver", deps.TripHandler.AssignDriver)
	router.POST("/getTripData", deps.TripHandler.GetTripData)
	router.GET("/trips/driver", deps.TripHandler.TripStatusForDriver)
	router.PATCH("/update/completeTrip", deps.TripHandler.CompleteTrip)

	return router
}
