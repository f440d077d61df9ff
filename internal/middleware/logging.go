package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	ua "github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
)

// deviceType classifies the client from its User-Agent header.
func deviceType(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	parser := ua.New(userAgent)
	switch {
	case parser.Bot():
		return "bot"
	case parser.Mobile():
		return "mobile"
	default:
		return "desktop"
	}
}

// RequestLogger logs every request with latency, status and client device
// classification.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"device":     deviceType(c.Request.UserAgent()),
		}
		if sess, ok := GetSession(c); ok {
			fields["user_id"] = sess.UserID
		}

		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request completed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}
