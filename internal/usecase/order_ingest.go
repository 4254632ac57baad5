package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	domrepo "github.com/alokrrr/Ecom-Analytics/internal/domain/repository"
)

// OrderIngestor consumes order events off Kafka and lands them in
// ClickHouse in batches. It replaces the old CSV batch loads: the shop
// publishes orders continuously and the dashboard sees them within a
// flush interval.
type OrderIngestor struct {
	topic     string
	store     domrepo.OrderStore
	metrics   domrepo.Metrics
	batchSize int
	flushEvry time.Duration

	mu      sync.Mutex
	pending []*models.OrderEvent

	ingested atomic.Int64
	lastAt   atomic.Int64 // unix seconds of last landed order

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewOrderIngestor(topic string, store domrepo.OrderStore, metrics domrepo.Metrics, batchSize int, flushEvery time.Duration) *OrderIngestor {
	if batchSize <= 0 {
		batchSize = 200
	}
	if flushEvery <= 0 {
		flushEvery = 2 * time.Second
	}
	return &OrderIngestor{
		topic:     topic,
		store:     store,
		metrics:   metrics,
		batchSize: batchSize,
		flushEvry: flushEvery,
		stop:      make(chan struct{}),
	}
}

// Topic implements kafka.MessageHandler.
func (u *OrderIngestor) Topic() string { return u.topic }

// Handle implements kafka.MessageHandler: decode, buffer, flush when
// the batch is full. Malformed events are an error so the consumer can
// park them on the DLQ.
func (u *OrderIngestor) Handle(ctx context.Context, key, value []byte) error {
	var ev models.OrderEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		u.metrics.RecordError("decode")
		return fmt.Errorf("decode order event: %w", err)
	}
	if ev.OrderID == 0 {
		u.metrics.RecordError("invalid_event")
		return fmt.Errorf("order event without order_id")
	}

	u.mu.Lock()
	u.pending = append(u.pending, &ev)
	full := len(u.pending) >= u.batchSize
	u.mu.Unlock()

	if full {
		return u.Flush(ctx)
	}
	return nil
}

// Start launches the periodic flusher.
func (u *OrderIngestor) Start() {
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		ticker := time.NewTicker(u.flushEvry)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_ = u.Flush(ctx)
				cancel()
			case <-u.stop:
				return
			}
		}
	}()
}

// Flush writes the pending batch to the store.
func (u *OrderIngestor) Flush(ctx context.Context) error {
	u.mu.Lock()
	batch := u.pending
	u.pending = nil
	u.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	if err := u.store.StoreBatch(ctx, batch); err != nil {
		u.metrics.RecordError("store_batch")
		// put the batch back so the next flush retries it
		u.mu.Lock()
		u.pending = append(batch, u.pending...)
		u.mu.Unlock()
		return fmt.Errorf("store batch: %w", err)
	}
	u.metrics.RecordLatency("store_batch", time.Since(start).Seconds())

	for _, o := range batch {
		u.metrics.RecordOrderIngested(o.Status)
	}
	u.ingested.Add(int64(len(batch)))
	u.lastAt.Store(time.Now().Unix())
	return nil
}

// Shutdown stops the flusher and drains the remaining batch.
func (u *OrderIngestor) Shutdown(ctx context.Context) error {
	close(u.stop)
	u.wg.Wait()
	return u.Flush(ctx)
}

// Ingested returns the number of orders landed since startup.
func (u *OrderIngestor) Ingested() int64 { return u.ingested.Load() }

// LastOrderAt returns the time of the last landed batch, zero if none.
func (u *OrderIngestor) LastOrderAt() time.Time {
	ts := u.lastAt.Load()
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
