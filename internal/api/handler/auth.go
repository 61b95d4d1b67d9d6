package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fundboard/fundboard/internal/api/middleware"
	"github.com/fundboard/fundboard/internal/api/response"
	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkInput validates an input struct and returns a field-tagged
// validation failure on error.
func checkInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrValidation(err.Error())
	}

	fields := make(map[string][]string)
	for _, e := range validationErrors {
		field := e.Field()
		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "email":
			msg = "invalid email format"
		case "min":
			msg = "must be at least " + e.Param() + " characters"
		case "max":
			msg = "must be at most " + e.Param() + " characters"
		default:
			msg = "validation failed on " + e.Tag()
		}
		fields[field] = append(fields[field], msg)
	}

	return domain.ErrFieldValidation("invalid input", fields)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	tokens, err := h.authService.Login(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tokens)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := checkInput(input); err != nil {
		response.FromError(w, err)
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tokens)
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, workspaceCount, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, "user not found")
		return
	}

	response.OK(w, map[string]any{
		"id":              user.ID,
		"email":           user.Email,
		"created_at":      user.CreatedAt,
		"workspace_count": workspaceCount,
	})
}
