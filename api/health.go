package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report liveness of a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type serviceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type healthResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]serviceStatus `json:"services"`
}

// HealthCheckHandler handles GET /healthCheck, probing each backing service.
func HealthCheckHandler(deps map[string]Pinger, upSince time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]serviceStatus, len(deps))
		overall := "ok"

		for name, dep := range deps {
			status, details := "ok", name+" connected"
			if err := dep.Ping(c.Request.Context()); err != nil {
				status, details = "down", err.Error()
				overall = "down"
			}
			services[name] = serviceStatus{Status: status, Details: details}
		}

		c.JSON(http.StatusOK, healthResponse{
			Status:   overall,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Services: services,
		})
	}
}
