package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/utils"
	"github.com/stayvelle/hotel-backend/pkg/jwt"
)

// PrincipalContextKey is the key used to store the caller in Gin context
const PrincipalContextKey = "principal"

// AnonymousActor is recorded as the actor of requests made without a token
// while authentication is disabled
const AnonymousActor = "anonymous"

// Principal is the verified identity of the caller
type Principal struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Anonymous bool      `json:"anonymous"`
}

// Actor is the name written to audit columns and the audit log
func (p Principal) Actor() string {
	if p.Anonymous || p.Username == "" {
		return AnonymousActor
	}
	return p.Username
}

// HasRole reports whether the principal carries any of roles
func (p Principal) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AuthMiddleware verifies the bearer token and stores the caller as a Principal.
// When required is false a request without an Authorization header continues
// as the anonymous principal; a header that is present must still be valid.
func AuthMiddleware(jwtService *jwt.Service, required bool, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if !required {
				c.Set(PrincipalContextKey, Principal{Anonymous: true})
				c.Next()
				return
			}
			rejectAuth(c, logger, "Authorization header is required", "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			rejectAuth(c, logger, "Invalid authorization header format. Expected: Bearer <token>", "invalid authorization format")
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if jwtService.IsTokenExpired(tokenString) {
				rejectAuth(c, logger, "Access token has expired", err.Error())
			} else {
				rejectAuth(c, logger, "Invalid access token", err.Error())
			}
			return
		}

		c.Set(PrincipalContextKey, Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Roles:    claims.Roles,
		})
		c.Next()
	}
}

// RequireRole rejects authenticated callers that carry none of roles.
// The anonymous principal only exists with authentication disabled and passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Caller identity not found",
				"data":    nil,
				"code":    apperr.KindUnauthorized,
			})
			return
		}
		if principal.Anonymous || principal.HasRole(roles...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You don't have permission to access this resource",
			"data":    nil,
			"code":    "FORBIDDEN",
		})
	}
}

// GetPrincipal retrieves the caller from Gin context
func GetPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

// ActorFrom returns the actor name of the caller, or anonymous when the
// request carries no principal
func ActorFrom(c *gin.Context) string {
	principal, ok := GetPrincipal(c)
	if !ok {
		return AnonymousActor
	}
	return principal.Actor()
}

func rejectAuth(c *gin.Context, logger *logrus.Logger, message, reason string) {
	logger.WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"ip":     utils.GetRealIP(c),
		"reason": reason,
	}).Warn("Authentication failed")

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
		"data":    nil,
		"code":    apperr.KindUnauthorized,
	})
}
