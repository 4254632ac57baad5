package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

type fakeOrderStore struct {
	mu      sync.Mutex
	batches [][]*models.OrderEvent
	fail    bool
}

func (f *fakeOrderStore) Init(context.Context) error { return nil }

func (f *fakeOrderStore) StoreBatch(_ context.Context, orders []*models.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("clickhouse down")
	}
	f.batches = append(f.batches, orders)
	return nil
}

func (f *fakeOrderStore) Health(context.Context) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordOrderIngested(string)    {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

func orderJSON(t *testing.T, id int64) []byte {
	t.Helper()
	b, err := json.Marshal(models.OrderEvent{OrderID: id, UserID: 1, Status: "completed", TotalAmount: 10})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestIngestFlushesFullBatch(t *testing.T) {
	store := &fakeOrderStore{}
	ing := NewOrderIngestor("orders", store, nopMetrics{}, 3, time.Hour)

	for i := int64(1); i <= 3; i++ {
		if err := ing.Handle(context.Background(), nil, orderJSON(t, i)); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.batches) != 1 || len(store.batches[0]) != 3 {
		t.Fatalf("expected one batch of 3, got %v", store.batches)
	}
	if ing.Ingested() != 3 {
		t.Fatalf("expected 3 ingested, got %d", ing.Ingested())
	}
}

func TestIngestRejectsMalformedEvent(t *testing.T) {
	ing := NewOrderIngestor("orders", &fakeOrderStore{}, nopMetrics{}, 10, time.Hour)
	if err := ing.Handle(context.Background(), nil, []byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
	if err := ing.Handle(context.Background(), nil, []byte(`{"status":"completed"}`)); err == nil {
		t.Fatal("expected missing order_id error")
	}
}

func TestIngestRequeuesFailedBatch(t *testing.T) {
	store := &fakeOrderStore{fail: true}
	ing := NewOrderIngestor("orders", store, nopMetrics{}, 2, time.Hour)

	_ = ing.Handle(context.Background(), nil, orderJSON(t, 1))
	if err := ing.Handle(context.Background(), nil, orderJSON(t, 2)); err == nil {
		t.Fatal("expected flush error")
	}

	// Store recovers; a drain delivers the retained batch.
	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()
	if err := ing.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.batches) != 1 || len(store.batches[0]) != 2 {
		t.Fatalf("expected retained batch of 2, got %v", store.batches)
	}
}
