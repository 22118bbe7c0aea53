package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// HealthCheck reports whether the server and its database are reachable.
func (h *Handler) HealthCheck(c *gin.Context) {
	status, code := "ok", http.StatusOK

	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := h.Ping(ctx); err != nil {
			h.Log.Error(ctx, "database ping failed", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"message":   "Timelines is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
