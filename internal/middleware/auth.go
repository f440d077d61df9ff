package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/session"
	"github.com/hotelandino/booking-bff/pkg/jwt"
)

// SessionContextKey is the key under which the session context is stored in
// the Gin context.
const SessionContextKey = "session"

// Auth validates the Bearer session token and stores the resulting session
// context for downstream handlers.
func Auth(jwtService *jwt.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Warn("Session token rejected")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid session token",
			})
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session.Context{
			UserID:        claims.UserID,
			Email:         claims.Email,
			FirstName:     claims.FirstName,
			LastName:      claims.LastName,
			Role:          claims.Role,
			DocumentType:  claims.DocumentType,
			Document:      claims.Document,
			UpstreamToken: claims.UpstreamToken,
		})
		// Downstream gateway calls made on behalf of this request carry the
		// upstream bearer token through the request context.
		if claims.UpstreamToken != "" {
			c.Request = c.Request.WithContext(gateway.WithBearer(c.Request.Context(), claims.UpstreamToken))
		}
		c.Next()
	}
}

// AdminOnly rejects sessions without the admin role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok || !sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession retrieves the session context stored by Auth.
func GetSession(c *gin.Context) (session.Context, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return session.Context{}, false
	}
	sess, ok := value.(session.Context)
	return sess, ok
}
