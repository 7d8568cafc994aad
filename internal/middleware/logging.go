package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// AccessLog logs one line per request.
func AccessLog(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			fields := []zap.Field{
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("duration", time.Since(start)),
			}
			if reqID := ctx.Response.Header.Peek("X-Request-ID"); len(reqID) > 0 {
				fields = append(fields, zap.ByteString("request_id", reqID))
			}
			if ctx.Response.StatusCode() >= fasthttp.StatusInternalServerError {
				logger.Error("request", fields...)
				return
			}
			logger.Debug("request", fields...)
		}
	}
}
