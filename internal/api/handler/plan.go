package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/repository/redis"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PlanHandler handles budget plan endpoints
type PlanHandler struct {
	planService    *service.PlanService
	analyticsCache *redis.AnalyticsCache
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *service.PlanService, analyticsCache *redis.AnalyticsCache) *PlanHandler {
	return &PlanHandler{planService: planService, analyticsCache: analyticsCache}
}

// invalidateAnalytics drops the cached snapshot after a mutation. A failed
// invalidation only shortens freshness to the cache TTL, so it is logged
// and not surfaced.
func invalidateAnalytics(ctx context.Context, cache *redis.AnalyticsCache, workspaceID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, workspaceID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("failed to invalidate analytics cache")
	}
}

// Create handles plan creation
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var input domain.PlanCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	plan, err := h.planService.Create(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.Created(w, plan)
}

// Get handles getting a plan by ID
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		response.BadRequest(w, "invalid plan ID")
		return
	}

	plan, err := h.planService.GetByID(r.Context(), userID, workspaceID, planID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, plan)
}

// Update handles updating a plan
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		response.BadRequest(w, "invalid plan ID")
		return
	}

	var input domain.PlanUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	plan, err := h.planService.Update(r.Context(), userID, workspaceID, planID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.OK(w, plan)
}

// Delete handles deleting a plan
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		response.BadRequest(w, "invalid plan ID")
		return
	}

	if err := h.planService.Delete(r.Context(), userID, workspaceID, planID); err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.NoContent(w)
}

// List handles listing workspace plans with aggregate figures
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.planService.ListByWorkspace(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, list)
}

// ListTypes handles listing distinct plan types
func (h *PlanHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
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

	types, err := h.planService.ListPlanTypes(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{"types": types})
}
