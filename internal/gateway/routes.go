package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uitgo/internal/config"
	"uitgo/internal/middleware"
)

// Handler wires the gateway's forwarding routes.
type Handler struct {
	forwarder *Forwarder
	services  config.ServicesConfig
	jwtSecret string
}

// NewHandler creates a new gateway Handler.
func NewHandler(forwarder *Forwarder, services config.ServicesConfig, jwtSecret string) *Handler {
	return &Handler{
		forwarder: forwarder,
		services:  services,
		jwtSecret: jwtSecret,
	}
}

// Register attaches all gateway routes to the router.
func (h *Handler) Register(router *gin.Engine) {
	requireJWT := middleware.RequireJWT(h.jwtSecret)

	// Authentication passthrough to the user service.
	router.POST("/api/auth/register", h.toUser("/api/auth/register/"))
	router.POST("/api/auth/login", h.toUser("/api/auth/login/"))
	router.POST("/api/auth/refresh-token", h.toUser("/api/auth/refresh-token/"))
	router.GET("/api/auth/me", requireJWT, h.toUser("/api/auth/me/"))
	router.POST("/api/auth/logout", requireJWT, h.toUser("/api/auth/logout/"))
	router.GET("/api/auth/:user_id", func(c *gin.Context) {
		h.forwarder.Forward(c, http.MethodGet, h.services.UserServiceURL, "/api/auth/"+c.Param("user_id")+"/", "UserService")
	})

	// Driver profile passthrough to the user service.
	router.POST("/api/drivers/register", requireJWT, h.toUser("/api/drivers/register/"))
	router.GET("/api/drivers/me/profile", requireJWT, h.toUser("/api/drivers/me/profile/"))
	router.PUT("/api/drivers/me/status", requireJWT, h.toUser("/api/drivers/me/status/"))
	router.GET("/api/drivers/:driver_id/profile", func(c *gin.Context) {
		h.forwarder.Forward(c, http.MethodGet, h.services.UserServiceURL, "/api/drivers/"+c.Param("driver_id")+"/profile/", "UserService")
	})

	// Location ingestion and matching forward to the driver service.
	router.POST("/api/get-data-location", func(c *gin.Context) {
		h.forwarder.Forward(c, http.MethodPost, h.services.DriverServiceURL, "/charge", "DriverService")
	})
	router.POST("/api/get-data-location-customer", func(c *gin.Context) {
		h.forwarder.Forward(c, http.MethodPost, h.services.DriverServiceURL, "/find-driver", "DriverService")
	})
}

func (h *Handler) toUser(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.forwarder.Forward(c, c.Request.Method, h.services.UserServiceURL, path, "UserService")
	}
}
