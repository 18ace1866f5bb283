package controllers

import (
	"context"
	"net/http"
	"time"

	"backoffice/database"
	"backoffice/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type HealthController struct {
	redisClient *redis.Client
	startedAt   time.Time
	version     string
}

func NewHealthController(redisClient *redis.Client, version string) *HealthController {
	return &HealthController{
		redisClient: redisClient,
		startedAt:   time.Now(),
		version:     version,
	}
}

// Health reports liveness of the service and its backing stores.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	services := map[string]string{}
	status := "healthy"

	if database.IsConnected() {
		services["mongodb"] = "up"
	} else {
		services["mongodb"] = "down"
		status = "degraded"
	}

	if hc.redisClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hc.redisClient.Ping(ctx).Err(); err != nil {
			services["redis"] = "down"
			status = "degraded"
		} else {
			services["redis"] = "up"
		}
	} else {
		services["redis"] = "disabled"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, models.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   hc.version,
		Uptime:    time.Since(hc.startedAt).Round(time.Second).String(),
	})
}
