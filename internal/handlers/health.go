package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health always answers 200. Store connectivity is reported in the body; this
// is the only place a storage failure is downgraded to a status field.
func Health(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		if err := pinger.Ping(checkCtx); err != nil {
			dbStatus = "Disconnected"
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
		})
	}
}
