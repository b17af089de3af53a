package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
)

const sessionKey = "session"

// CasdoorAuthMiddleware resolves the bearer token through the auth service,
// which validates it against Casdoor and the sign-out denylist
type CasdoorAuthMiddleware struct {
	auth   services.AuthService
	logger utils.Logger
}

func NewCasdoorAuthMiddleware(auth services.AuthService, logger utils.Logger) *CasdoorAuthMiddleware {
	return &CasdoorAuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// AuthMiddleware puts a *models.Session on the context or aborts with 401
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "authorization header missing or malformed",
			})
			return
		}

		session, err := cam.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
				return
			}
			utils.FromContext(c, cam.logger).Error("Token check failed", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Message: "Service temporarily unavailable"})
			return
		}

		c.Set(sessionKey, session)
		c.Set("user_id", session.UserID)
		c.Next()
	}
}

// RequireRoleMiddleware lets through only the listed roles
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
			return
		}
		if !session.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "insufficient permissions",
				Details: roles,
			})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetSession returns the session set by AuthMiddleware
func GetSession(c *gin.Context) (*models.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok && session != nil
}

func mustSession(c *gin.Context) (*models.Session, bool) {
	session, ok := GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
	}
	return session, ok
}
