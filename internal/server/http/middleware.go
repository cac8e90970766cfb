package httpserver

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avelichko/taskkeeper/internal/service"
)

// RequireAuth resolves the x-auth header to an account and attaches it to the
// request context. Every failure is a uniform empty 401: responses never hint
// whether the token was missing, malformed, forged or revoked.
func RequireAuth(accounts service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetHeader(AuthHeader)
		if tok == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		a, err := accounts.FindByToken(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		SetAuth(c, a, tok)
		c.Next()
	}
}

// Logging returns a middleware for structured request logging.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// no payloads, metadata only
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// Recovery returns a middleware that recovers from handler panics.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
