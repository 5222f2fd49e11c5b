package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditWriter persists audit entries off the request path. Entries are
// sharded by actor id so one actor's trail stays ordered; a full shard
// drops the entry rather than blocking a handler.
type AuditWriter struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditWriter creates an AuditWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *AuditWriter) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for asynchronous persistence. Never blocks.
func (w *AuditWriter) Record(e domain.AuditEntry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	ch := w.workers[w.shardIndex(e.ActorID)]
	select {
	case ch <- e:
	default:
		w.log.Warn().Str("action", e.Action).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (w *AuditWriter) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(w.workers)
}

func (w *AuditWriter) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			if err := w.repo.Insert(insertCtx, &entry); err != nil {
				w.log.Error().Err(err).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
			cancel()
		}
	}
}
