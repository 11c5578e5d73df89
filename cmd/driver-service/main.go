package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	redislib "github.com/redis/go-redis/v9"

	"uitgo/internal/app"
	"uitgo/internal/client"
	"uitgo/internal/config"
	"uitgo/internal/handler"
	internalRedis "uitgo/internal/redis"
	"uitgo/internal/service"
)

func main() {
	cfg := config.Load("driver-service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(redisClient, nrApp, cfg)

	go func() {
		log.Printf("Driver service is running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(redisClient *redislib.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	locationStore := internalRedis.NewLocationStore(redisClient)

	userClient := client.NewUserClient(cfg.Services.UserServiceURL, cfg.Auth.InternalServiceToken)
	tripClient := client.NewTripClient(cfg.Services.TripServiceURL)

	driverService := service.NewDriverService(locationStore)
	matchingService := service.NewMatchingService(locationStore, userClient, tripClient)

	driverHandler := handler.NewDriverHandler(driverService, matchingService)

	router := app.NewDriverRouter(app.DriverRouterDeps{
		DriverHandler:        driverHandler,
		InternalServiceToken: cfg.Auth.InternalServiceToken,
		NewRelicApp:          nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
