package restapi

import (
	"errors"
	"net/http"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/infrastructure/ratelimit"
	"wallet_inspector/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLoggerMiddleware logs every request after it is served.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("Request served", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request served", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}

// FaultResponder renders errors attached with c.Error by handlers that did not
// write a response themselves.
func FaultResponder(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := classifyError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Int("status", status), zap.Error(err))
		}
		c.AbortWithStatusJSON(status, errorResponse(message))
	}
}

// classifyError maps an error to the response status and client message.
func classifyError(err error) (int, string) {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	var upstreamErr *entity.UpstreamError
	if errors.As(err, &upstreamErr) {
		return http.StatusBadGateway, upstreamErr.Error()
	}

	return http.StatusInternalServerError, MsgInternalError
}

// RecoveryHandler turns a panic into the 500 envelope.
func RecoveryHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(MsgInternalError))
	})
}

// RateLimitMiddleware rejects clients that exceeded their per-IP budget.
func RateLimitMiddleware(limiter *ratelimit.IPRateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.Allow(ip) {
			c.Next()
			return
		}

		metrics.RateLimitedRequests.Inc()
		logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse(MsgTooManyRequests))
	}
}

// NotFoundHandler renders the 404 envelope for unknown routes.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse(MsgRouteNotFound))
}
