package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/repository/redis"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense ledger endpoints
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	analyticsCache *redis.AnalyticsCache
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService, analyticsCache *redis.AnalyticsCache) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, analyticsCache: analyticsCache}
}

// Create handles expense creation
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var input domain.ExpenseCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	expense, err := h.expenseService.Create(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.Created(w, expense)
}

// Get handles getting an expense by ID
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		response.BadRequest(w, "invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetByID(r.Context(), userID, workspaceID, expenseID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		response.BadRequest(w, "invalid expense ID")
		return
	}

	var input domain.ExpenseUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	expense, err := h.expenseService.Update(r.Context(), userID, workspaceID, expenseID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.OK(w, expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		response.BadRequest(w, "invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(r.Context(), userID, workspaceID, expenseID); err != nil {
		response.FromError(w, err)
		return
	}

	invalidateAnalytics(r.Context(), h.analyticsCache, workspaceID)
	response.NoContent(w)
}

// List handles filtered, paginated expense listing
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
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

	filter, err := parseExpenseFilter(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.expenseService.List(r.Context(), userID, workspaceID, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, page)
}

// Summary handles the ledger aggregate view
func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.expenseService.Summary(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summary)
}

func parseExpenseFilter(r *http.Request) (domain.ExpenseFilter, error) {
	var filter domain.ExpenseFilter
	q := r.URL.Query()

	if planType := q.Get("plan_type"); planType != "" {
		filter.PlanType = &planType
	}

	if raw := q.Get("start_date"); raw != "" {
		t, _, err := parseDateParam(raw)
		if err != nil {
			return filter, domain.ErrFieldValidation("invalid filter", map[string][]string{
				"start_date": {"must be an RFC 3339 timestamp or YYYY-MM-DD date"},
			})
		}
		filter.StartDate = &t
	}

	if raw := q.Get("end_date"); raw != "" {
		t, dateOnly, err := parseDateParam(raw)
		if err != nil {
			return filter, domain.ErrFieldValidation("invalid filter", map[string][]string{
				"end_date": {"must be an RFC 3339 timestamp or YYYY-MM-DD date"},
			})
		}
		// A bare date bounds the whole day, not its first instant.
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		filter.EndDate = &t
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.ErrFieldValidation("invalid filter", map[string][]string{
				"limit": {"must be an integer"},
			})
		}
		filter.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.ErrFieldValidation("invalid filter", map[string][]string{
				"offset": {"must be an integer"},
			})
		}
		filter.Offset = offset
	}

	return filter, nil
}

func parseDateParam(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err = time.Parse("2006-01-02", raw)
	return t, err == nil, err
}
