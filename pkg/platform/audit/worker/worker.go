package worker

import (
	"context"
	"log/slog"

	audit "ballotbox/pkg/platform/audit"
)

// Worker drains queued audit events into the store and forwards each
// persisted event to the configured sinks. Failures are logged and the worker
// moves on; the audit trail is best-effort.
type Worker struct {
	store  audit.Store
	sinks  []audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger, sinks ...audit.Sink) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger, sinks: sinks}
}

// Run processes events until the inbox is closed.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		w.Process(ctx, event)
	}
}

// Process persists one event and fans it out.
func (w *Worker) Process(ctx context.Context, event audit.Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
		return
	}
	for _, sink := range w.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			w.logger.WarnContext(ctx, "failed to forward audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
