// Package publisher emits audit events synchronously or through a bounded
// asynchronous buffer.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/audit/worker"
)

// ErrBufferFull is returned when the async buffer cannot take another event.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher is the single entry point services use to record audit events.
type Publisher struct {
	store  audit.Store
	sinks  []audit.Sink
	logger *slog.Logger

	bufferSize int
	queue      chan audit.Event
	done       chan struct{}

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a buffer of n events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSink forwards every persisted event to sink.
func WithSink(sink audit.Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.queue = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.queue, p.logger, p.sinks...)
		go func() {
			defer close(p.done)
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit records event. In async mode it never blocks: a full buffer drops the
// event and returns ErrBufferFull.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event.Normalize()

	if p.queue == nil {
		if err := p.store.Append(ctx, event); err != nil {
			return err
		}
		for _, sink := range p.sinks {
			if err := sink.Publish(ctx, event); err != nil {
				p.logger.WarnContext(ctx, "failed to forward audit event",
					"action", event.Action,
					"error", err,
				)
			}
		}
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrBufferFull
	}
	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"subject", event.Subject,
		)
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	return p.store.List(ctx, filter)
}

func (p *Publisher) Counts(ctx context.Context) (map[audit.Category]int, error) {
	return p.store.Counts(ctx)
}

// Close stops accepting events and waits until queued events are persisted.
func (p *Publisher) Close() error {
	if p.queue == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return nil
}
