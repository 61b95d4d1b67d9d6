package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MemberHandler handles workspace membership endpoints
type MemberHandler struct {
	workspaceService *service.WorkspaceService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(workspaceService *service.WorkspaceService) *MemberHandler {
	return &MemberHandler{workspaceService: workspaceService}
}

// List handles listing workspace members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.workspaceService.ListMembers(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, members)
}

// Invite handles inviting a user by email
func (h *MemberHandler) Invite(w http.ResponseWriter, r *http.Request) {
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

	var input domain.InviteMember
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	member, err := h.workspaceService.Invite(r.Context(), userID, workspaceID, input.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, member)
}

// Remove handles removing a member
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), userID, workspaceID, targetID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
