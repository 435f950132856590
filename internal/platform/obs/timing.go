package obs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/platform/logging"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// WithRequestID stores id in ctx under RequestIDKey.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time starts timing op and returns a func to defer with the named error result.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Int64("dur_ms", dur.Milliseconds()),
		}

		if errp != nil && *errp != nil {
			opDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			logging.L().Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		opDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		logging.L().Debug("op done", fields...)
	}
}
