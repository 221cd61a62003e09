package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/shared/response"
	"diary-backend/pkg/jwt"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's id.
	ContextUserID = "userID"
	// ContextUsername is the gin context key holding the authenticated username.
	ContextUsername = "username"
)

// AuthMiddleware authenticates requests with a Bearer access token and puts
// the user id into the context. Write endpoints sit behind this.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtManager)
		if !ok {
			response.Unauthorized(c, "authentication required, sign in at /api/v1/auth/login")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user id in token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth extracts the user from a Bearer token when one is present but
// lets anonymous requests through. Flag and vote endpoints use this: the
// records keep a nullable user reference.
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtManager); ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtManager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtManager.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated user id from the context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID returns a pointer to the user id, nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}

// MustUserID returns the authenticated user id. Only call it behind
// AuthMiddleware; it aborts with 401 as a backstop when the id is missing.
func MustUserID(c *gin.Context) uuid.UUID {
	id, ok := UserID(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		c.Abort()
	}
	return id
}
