package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/security"
	"github.com/mroshb/shooty_game/internal/services"
	"github.com/mroshb/shooty_game/pkg/errors"
)

const actorKey = "actor"

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func actorFromToken(token, secret string) (*services.Actor, error) {
	claims, err := security.ValidateJWT(token, secret)
	if err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnauthorized, "unknown role in token")
	}
	return &services.Actor{UserID: claims.UserID, Role: role}, nil
}

// Auth requires a valid bearer token and stores the caller as the request actor.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "missing bearer token")
			return
		}

		actor, err := actorFromToken(token, secret)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "invalid token")
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth sets the actor when a valid token is present and lets anonymous
// requests through. A malformed or expired token is still rejected.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		actor, err := actorFromToken(token, secret)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "invalid token")
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			abortWithError(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "authentication required")
			return
		}
		if actor.Role != role && !actor.IsAdmin() {
			abortWithError(c, http.StatusForbidden, errors.ErrCodeForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated caller, or nil for anonymous requests.
func ActorFrom(c *gin.Context) *services.Actor {
	value, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := value.(*services.Actor)
	return actor
}
