package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/types"
)

// RequestLogger tags every request with an ID and logs it once it completes.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(types.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Header(types.RequestIDHeader, requestID)

		ctx.Next()

		args := []any{
			"request_id", requestID,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"latency", time.Since(start),
		}

		if len(ctx.Errors) > 0 {
			args = append(args, "errors", ctx.Errors.String())
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			log.Error(ctx.Request.Context(), "request failed", args...)
		case status >= 400:
			log.Warn(ctx.Request.Context(), "request rejected", args...)
		default:
			log.Info(ctx.Request.Context(), "request", args...)
		}
	}
}
