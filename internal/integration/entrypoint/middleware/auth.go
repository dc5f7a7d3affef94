// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/adapter"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
)

const (
	// SubjectIDKey is the context key for the authenticated subject identifier.
	SubjectIDKey = "subject_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey = "user_email"
	// DisplayNameKey is the context key for the authenticated user's display name.
	DisplayNameKey = "display_name"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		// The subject id, the user id rendered as a string, scopes all
		// per-user data downstream.
		c.Set(SubjectIDKey, claims.UserID.String())
		c.Set(UserEmailKey, claims.Email)
		c.Set(DisplayNameKey, claims.DisplayName)

		c.Next()
	}
}

// GetSubjectIDFromContext extracts the subject identifier from the Gin context.
func GetSubjectIDFromContext(c *gin.Context) (string, bool) {
	subjectID, exists := c.Get(SubjectIDKey)
	if !exists {
		return "", false
	}
	id, ok := subjectID.(string)
	return id, ok && id != ""
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetDisplayNameFromContext extracts the display name from the Gin context.
func GetDisplayNameFromContext(c *gin.Context) (string, bool) {
	name, exists := c.Get(DisplayNameKey)
	if !exists {
		return "", false
	}
	nameStr, ok := name.(string)
	return nameStr, ok
}
