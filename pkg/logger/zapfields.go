package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapArgs flattens zap.Fields into slog-style alternating key/value
// pairs, so callers that build structured fields with zap (as batch
// metadata logging does) can still funnel through the slog-based Log.
func ZapArgs(fields ...zap.Field) []any {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	args := make([]any, 0, len(enc.Fields)*2)
	for k, v := range enc.Fields {
		args = append(args, k, v)
	}
	return args
}
