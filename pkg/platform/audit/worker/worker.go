package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sotcredit/pkg/platform/audit/store/postgres"
)

// Outbox is the pending side of the audit outbox table.
type Outbox interface {
	Pending(ctx context.Context, limit int) ([]postgres.Entry, error)
	MarkPublished(ctx context.Context, ids ...uuid.UUID) error
}

// Producer delivers one encoded audit event downstream.
type Producer interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Worker relays outbox entries to the producer. Delivery is at-least-once:
// an entry is marked only after the producer acknowledged it.
type Worker struct {
	outbox    Outbox
	producer  Producer
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func NewWorker(outbox Outbox, producer Producer, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		producer:  producer,
		interval:  time.Second,
		batchSize: 100,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.WarnContext(ctx, "audit outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were marked.
// It stops at the first producer failure so ordering per subject is kept.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	entries, err := w.outbox.Pending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		if err := w.producer.Publish(ctx, e.AggregateID, e.Payload); err != nil {
			publishErr = err
			break
		}
		published = append(published, e.ID)
	}

	if err := w.outbox.MarkPublished(ctx, published...); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
