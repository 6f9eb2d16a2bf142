package middleware

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/hedeqiang/courier/transport"
)

// Logger logs each request that passes through the chain, with its outcome
// and duration.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a logging middleware. A nil logger disables output.
func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{logger: l}
}

// Wrap decorates the handler with request logging.
func (l *Logger) Wrap(next Handler) Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		start := time.Now()
		result, err := next(ctx, req)
		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			l.logger.Warn("rpc call failed", append(fields, zap.Error(err))...)
			return result, err
		}
		l.logger.Debug("rpc call", fields...)
		return result, nil
	}
}
