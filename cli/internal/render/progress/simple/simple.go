package simple

import (
	"log/slog"

	"ocm.software/open-component-model/webassets/cli/internal/render/progress"
)

type visualizer[T any] struct {
	logger *slog.Logger
}

// New creates a visualizer that logs every event.
func New[T any](logger *slog.Logger) progress.Visualizer[T] {
	return &visualizer[T]{logger: logger}
}

func (v *visualizer[T]) HandleEvent(event progress.Event[T]) {
	switch event.State {
	case progress.Running:
		v.logger.Debug("started", slog.String("id", event.ID))
	case progress.Completed:
		v.logger.Info("completed", slog.String("id", event.ID))
	case progress.Failed:
		v.logger.Error("failed", slog.String("id", event.ID), slog.Any("error", event.Err))
	case progress.Cancelled:
		v.logger.Warn("cancelled", slog.String("id", event.ID))
	}
}

func (v *visualizer[T]) Summary(err error) {
	if err != nil {
		v.logger.Error("execution failed", slog.Any("error", err))
	}
}
