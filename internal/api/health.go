package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check returns the health status of the API and its database.
func (h *HealthHandler) Check(c *gin.Context) {
	database := "ok"
	status := http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			_ = c.Error(err)
			database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"database": database,
		"message":  "Recipe Finder API is running",
		"version":  "v1.0.0",
	})
}
