package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the logger shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.FromContext(c, h.logger)
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "path", c.FullPath())
	if session, ok := GetSession(c); ok {
		args = append(args, "user_id", session.UserID)
	}
	h.log(c).Debug(msg, args...)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "path", c.FullPath())
	h.log(c).Error(msg, args...)
}

// respond drops the result when the client has already gone away
func (h BaseHandler) respond(c *gin.Context, status int, body interface{}) {
	if err := c.Request.Context().Err(); err != nil {
		h.log(c).Debug("Client gone, dropping response", "status", status, "error", err)
		c.Abort()
		return
	}
	c.JSON(status, body)
}

func (h BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// ===== ERROR HANDLING =====

func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}

	switch {
	case errors.Is(err, services.ErrValidationFailed):
		var details validator.ValidationErrors
		if errors.As(err, &details) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: details})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Resource not found", Details: err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Email already registered"})
	case errors.Is(err, services.ErrTransientStore):
		h.LogError(c, err, "Store unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "Service temporarily unavailable"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
