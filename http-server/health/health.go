package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

const serviceName = "Production Schedule API"
const serviceVersion = "1.0.0"

type Pinger interface {
	Ping(ctx context.Context) error
}

type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      int64  `json:"uptime"`
}

type DatabaseInfo struct {
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
}

type Response struct {
	Success      bool         `json:"success"`
	Status       string       `json:"status"`
	Timestamp    string       `json:"timestamp"`
	Service      ServiceInfo  `json:"service"`
	Database     DatabaseInfo `json:"database"`
	ResponseTime string       `json:"responseTime"`
}

// Check reports service and database liveness, including the DB round-trip
// time. A failed ping answers 503.
func Check(log *slog.Logger, db Pinger, env string) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.health.Check"

		requestStart := time.Now()

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		service := ServiceInfo{
			Name:        serviceName,
			Version:     serviceVersion,
			Environment: env,
			Uptime:      int64(time.Since(started).Seconds()),
		}

		dbStart := time.Now()
		if err := db.Ping(ctx); err != nil {
			log.Error("health check failed", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, Response{
				Success:   false,
				Status:    "unhealthy",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Service:   service,
				Database: DatabaseInfo{
					Status: "disconnected",
					Error:  err.Error(),
				},
				ResponseTime: time.Since(requestStart).String(),
			})
			return
		}
		dbResponseTime := time.Since(dbStart)

		render.JSON(w, r, Response{
			Success:   true,
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   service,
			Database: DatabaseInfo{
				Status:       "connected",
				ResponseTime: dbResponseTime.String(),
			},
			ResponseTime: time.Since(requestStart).String(),
		})
	}
}
