package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, route, message string, detail string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

func respondValidationErrors(c *gin.Context, route string, errs []string) {
	log.Printf("[%s] returning error %d: validation failed (%d issues)", route, http.StatusBadRequest, len(errs))
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// NotFoundRoute handles unmatched paths with the generic envelope.
func NotFoundRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Envelope{
			Success: false,
			Message: "Route not found",
		})
	}
}

// RecoverJSON converts panics into the generic 500 envelope instead of a bare
// connection reset, without leaking internals to the client.
func RecoverJSON() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[PANIC] recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Internal server error",
		})
	})
}
