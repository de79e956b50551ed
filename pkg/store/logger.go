package store

import (
	"context"

	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"

	"pixelfrag/pkg/convert"
)

// Log returns a sink that only reports what would have been written.
func Log(logger *zap.Logger) convert.Sink {
	return &Logger{logger}
}

type Logger struct {
	l *zap.Logger
}

func (m *Logger) Publish(_ context.Context, r *convert.Result) error {
	for _, a := range r.Artifacts() {
		m.l.With(
			zap.Stringer("id", r.ID),
			zap.String("name", a.Name),
			zap.String("mime", a.MIME),
			zap.String("size", bytesize.New(float64(len(a.Data))).String()),
		).Info("publish")
	}
	return nil
}
