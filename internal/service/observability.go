package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// OperationEvent is one observed workflow mutation: which operation ran,
// against which item, by whom, and how it ended.
type OperationEvent struct {
	Op        string
	ItemID    int64
	Actor     string
	Duration  time.Duration
	Err       error
	StartedAt time.Time
}

func (e OperationEvent) Success() bool { return e.Err == nil }

// OperationObserver receives an event after every workflow mutation.
// Implementations must be safe for concurrent use.
type OperationObserver interface {
	ObserveOperation(ctx context.Context, event OperationEvent)
}

// NoopOperationObserver discards every event.
type NoopOperationObserver struct{}

func (NoopOperationObserver) ObserveOperation(context.Context, OperationEvent) {}

type logOperationObserver struct {
	logger *slog.Logger
}

// NewLogOperationObserver writes one structured line per workflow
// operation to w. Enabled in the CLI through the PMT_TRACE environment
// variable.
func NewLogOperationObserver(w io.Writer) OperationObserver {
	if w == nil {
		return NoopOperationObserver{}
	}
	return &logOperationObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logOperationObserver) ObserveOperation(ctx context.Context, event OperationEvent) {
	attrs := []any{
		"op", event.Op,
		"item", event.ItemID,
		"actor", event.Actor,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "workflow_operation", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "workflow_operation", attrs...)
}

func operationObserverOrNoop(observers []OperationObserver) OperationObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOperationObserver{}
}
