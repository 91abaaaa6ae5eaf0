package runner

import (
	"chainindexer/pkg/logger"

	"go.uber.org/zap"
)

// logBatch logs a per-batch event using zap fields built from the runner's
// static metadata plus the given size, flattened into slog args via
// logger.ZapArgs. Building fields with zap and flattening keeps the
// metadata-construction style consistent with the rest of this module's
// ancestry even though the sink is slog-based.
func (r *Runner[T]) logBatch(event string, size int) {
	fields := make([]zap.Field, 0, len(r.cfg.Metadata)+2)
	fields = append(fields, zap.String("runner", r.name), zap.Int("batch_size", size))
	for k, v := range r.cfg.Metadata {
		fields = append(fields, zap.String("meta_"+k, v))
	}
	r.log.Debug(event, logger.ZapArgs(fields...)...)
}
