// Package api registers the gateway's versioned HTTP routes.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scndcloud/api-version/gateway/middleware"
)

// RegisterRoutes sets up the root health probe and the per-version API
// groups. Callers never address the groups directly: the version interceptor
// in front of the engine rewrites "/status" to "/v1/status" and so on.
func RegisterRoutes(engine *gin.Engine) {
	// Health check endpoint (public, bypasses version negotiation)
	engine.GET("/", handleHealth)

	// Version 0 API
	v0 := engine.Group("/v0")
	{
		v0.GET("/status", handleStatusV0)
		v0.GET("/echo", handleEcho)
	}

	// Version 1 API: status gains server time and the request ID
	v1 := engine.Group("/v1")
	{
		v1.GET("/status", handleStatusV1)
		v1.GET("/echo", handleEcho)
	}
}

// handleHealth handles health check requests.
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "gateway",
		"timestamp": time.Now().UTC(),
	})
}

func handleStatusV0(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": "v0",
	})
}

func handleStatusV1(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"version":    "v1",
		"time":       time.Now().UTC(),
		"request_id": middleware.GetRequestID(c),
	})
}

// handleEcho echoes back the query parameters, identical in both versions.
func handleEcho(c *gin.Context) {
	c.JSON(http.StatusOK, c.Request.URL.Query())
}
