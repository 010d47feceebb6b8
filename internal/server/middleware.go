package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/Zachkp/folio/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-ID"
	loggerCtxKey    = "logger"
)

// untrackedPrefixes are served without visitor details in the request log.
var untrackedPrefixes = []string{"/static/", "/images/", "/favicon", "/healthz"}

func generateSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// visitorTracker logs requests with a salted hash of the client IP instead of the IP itself.
type visitorTracker struct {
	salt   string
	logger *zap.Logger
}

// hashIP is stable per IP for the lifetime of the salt.
func (v *visitorTracker) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// middleware attaches a request id and a request-scoped logger, then logs
// the finished request. Visitor details are dropped for untracked paths and
// for clients sending DNT: 1.
func (v *visitorTracker) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)

		logger := v.logger.With(zap.String("request_id", reqID))
		c.Set(loggerCtxKey, logger)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if tracked(path) && c.GetHeader("DNT") != "1" {
			fields = append(fields,
				zap.String("visitor", v.hashIP(c.ClientIP())),
				zap.String("user_agent", c.GetHeader("User-Agent")),
			)
		}
		logger.Info("request", fields...)
	}
}

// loggerFrom returns the request-scoped logger set by the middleware.
func loggerFrom(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get(loggerCtxKey); ok {
		if logger, ok := v.(*zap.Logger); ok {
			return logger
		}
	}
	return fallback
}
