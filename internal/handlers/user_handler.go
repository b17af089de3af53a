package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

// UserHandler serves account and profile endpoints
type UserHandler struct {
	BaseHandler
	auth    services.AuthService
	profile services.ProfileService
}

func NewUserHandler(auth services.AuthService, profile services.ProfileService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
		profile:     profile,
	}
}

// ===== ACCOUNT ENDPOINTS =====

// Register creates the account and the profile row
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.RegisterRequest true "Registration form"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Registering user", "role", req.Role)

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, user)
}

// SignIn exchanges credentials for a bearer token
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.SignInRequest true "Credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *UserHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if !h.bindJSON(c, &req) {
		return
	}

	res, err := h.auth.SignIn(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, res)
}

func (h *UserHandler) SignOut(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.auth.SignOut(c.Request.Context(), session); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, SuccessResponse{Message: "Signed out"})
}

func (h *UserHandler) Me(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	user, err := h.auth.Me(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Changing password")

	if err := h.auth.ChangePassword(c.Request.Context(), session, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, SuccessResponse{Message: "Password changed"})
}

// ===== PROFILE ENDPOINTS =====

// GetMyProfile returns the caller's user row and, for students, every sub-record
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Success 200 {object} models.StudentProfile
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /profiles/me [get]
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	profile, err := h.profile.GetMyProfile(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, profile)
}

func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req services.ProfileUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Updating profile")

	user, err := h.profile.UpdateProfile(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, user)
}

// GetProfile is the public student page linked from the applicant export
// @Summary Get public profile
// @Tags profiles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.StudentProfile
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /profiles/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting public profile", "profile_id", id)

	profile, err := h.profile.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, profile)
}
