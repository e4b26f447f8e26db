package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	apiversion "github.com/scndcloud/api-version"
	"github.com/scndcloud/api-version/gateway/api"
	"github.com/scndcloud/api-version/gateway/middleware"
	"github.com/scndcloud/api-version/gateway/utils/config"
)

func main() {
	log.Println("Starting API version gateway...")

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on log level
	if config.IsDebugMode() {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("Running in RELEASE mode")
	}

	// Create Gin engine with logging middleware
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())

	if config.IsDebugMode() {
		engine.Use(gin.Logger())
	}

	// Register routes
	api.RegisterRoutes(engine)

	// Create the version interceptor in front of the engine
	interceptor, err := apiversion.New(cfg.VersionList(), exemptFilter(cfg.Versions.ExemptPrefixes))
	if err != nil {
		log.Fatalf("Failed to create version interceptor: %v", err)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:           addr,
		Handler:        interceptor.Wrap(engine),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in background
	go func() {
		log.Printf("Gateway listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gateway...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Gateway stopped gracefully")
}

// exemptFilter builds a Filter that skips version rewriting for the
// configured path prefixes. With no prefixes configured every request is
// rewritten.
func exemptFilter(prefixes []string) apiversion.Filter {
	if len(prefixes) == 0 {
		return apiversion.All
	}

	return apiversion.FilterFunc(func(u *url.URL) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(u.Path, prefix) {
				return false
			}
		}
		return true
	})
}
