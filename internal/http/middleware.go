package httpapi

import (
	"strings"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/store"
	"argynix-connect/internal/thingsboard"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionHeader = "X-Session-Id"

	sessionKey = "argynix.session"
	clientKey  = "argynix.client"
)

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/health" {
			return
		}
		logger.Info("HTTP request",
			zap.String("request_id", requestid.Get(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// requireSession resolves the session header and binds a platform client to
// the request.
func (r *Router) requireSession(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(SessionHeader))
	if id == "" {
		writeError(c, r.logger, store.ErrSessionNotFound)
		c.Abort()
		return
	}
	sess, err := r.svc.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, r.logger, err)
		c.Abort()
		return
	}
	c.Set(sessionKey, sess)
	c.Set(clientKey, r.svc.Clients.ForSession(sess))
	c.Next()
}

func sessionFrom(c *gin.Context) *domain.Session {
	return c.MustGet(sessionKey).(*domain.Session)
}

func clientFrom(c *gin.Context) *thingsboard.Client {
	return c.MustGet(clientKey).(*thingsboard.Client)
}
