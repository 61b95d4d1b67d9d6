package handler

import (
	"net/http"

	"github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/repository/redis"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles workspace analytics endpoints
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	analyticsCache   *redis.AnalyticsCache
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, analyticsCache *redis.AnalyticsCache) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, analyticsCache: analyticsCache}
}

// Get handles the workspace analytics snapshot
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.BadRequest(w, "missing workspace ID")
		return
	}

	if h.analyticsCache != nil {
		if cached, err := h.analyticsCache.Get(r.Context(), workspaceID); err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to read analytics cache")
		} else if cached != nil {
			// Cached snapshots skip the membership check, so verify access first.
			if _, err := h.analyticsService.CheckAccess(r.Context(), userID, workspaceID); err != nil {
				response.FromError(w, err)
				return
			}
			response.OK(w, cached)
			return
		}
	}

	snapshot, err := h.analyticsService.Get(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if h.analyticsCache != nil {
		if err := h.analyticsCache.Set(r.Context(), workspaceID, snapshot); err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to write analytics cache")
		}
	}

	response.OK(w, snapshot)
}
