package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"uitgo/internal/gateway"
	"uitgo/internal/handler"
)

// GatewayRouterDeps contains the dependencies of the gateway router.
type GatewayRouterDeps struct {
	GatewayHandler *gateway.Handler
	NewRelicApp    *newrelic.Application
}

// NewGatewayRouter creates the API gateway Gin router.
func NewGatewayRouter(deps GatewayRouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", handler.Health("api-gateway"))

	deps.GatewayHandler.Register(router)

	return router
}
