package handler

import (
	"net/http"

	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/repository/postgres"
	"github.com/fundboard/fundboard/internal/repository/redis"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including database and Redis connectivity
func ReadyCheck(db *postgres.DB, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}

		if err := cache.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "cache not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
