package ledger

import (
	"context"
	"log"
	"time"

	"aimrange/internal/events"
	"aimrange/internal/stats"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 500 * time.Millisecond
	shutdownFlushTimeout = 5 * time.Second
)

// Writer drains finished rounds off the bus and records them in batches, so
// a slow store never stalls a session's tick.
type Writer struct {
	store Store
	in    <-chan events.RoundEndedEvent

	BatchSize     int
	FlushInterval time.Duration
	// OnRecorded runs for every round once its batch is committed.
	OnRecorded func(ctx context.Context, sum stats.Summary)
}

func NewWriter(store Store, in <-chan events.RoundEndedEvent) *Writer {
	return &Writer{
		store:         store,
		in:            in,
		BatchSize:     defaultBatchSize,
		FlushInterval: defaultFlushInterval,
	}
}

// Run blocks until ctx is cancelled or the input channel closes. Whatever is
// still buffered at that point is flushed before returning.
func (w *Writer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.FlushInterval)
	defer ticker.Stop()

	batch := make([]stats.Summary, 0, w.BatchSize)

	for {
		select {
		case <-ctx.Done():
			w.drain(batch)
			return nil
		case ev, ok := <-w.in:
			if !ok {
				w.drain(batch)
				return nil
			}
			batch = append(batch, ev.Summary)
			if len(batch) >= w.BatchSize {
				w.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (w *Writer) drain(batch []stats.Summary) {
	for done := false; !done; {
		select {
		case ev, ok := <-w.in:
			if !ok {
				done = true
				continue
			}
			batch = append(batch, ev.Summary)
		default:
			done = true
		}
	}
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	defer cancel()
	w.flush(ctx, batch)
}

func (w *Writer) flush(ctx context.Context, batch []stats.Summary) {
	if err := w.store.RecordBatch(ctx, batch); err != nil {
		log.Printf("[Ledger] RecordBatch error: %v (dropping %d rounds)\n", err, len(batch))
		return
	}
	if w.OnRecorded == nil {
		return
	}
	for _, sum := range batch {
		w.OnRecorded(ctx, sum)
	}
}
