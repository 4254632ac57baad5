package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type countingHandler struct {
	attempts int
	err      error
}

func (h *countingHandler) Topic() string { return "orders" }

func (h *countingHandler) Handle(context.Context, []byte, []byte) error {
	h.attempts++
	return h.err
}

func TestNewConsumerRequiresBrokersAndGroup(t *testing.T) {
	if _, err := NewConsumer(WithConsumerGroupID("g")); err == nil {
		t.Fatal("expected error without brokers")
	}
	if _, err := NewConsumer(WithConsumerBrokers([]string{"localhost:9092"})); err == nil {
		t.Fatal("expected error without group id")
	}
	if _, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerGroupID("g"),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleWithRetryExhaustsAndReturnsCause(t *testing.T) {
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerGroupID("g"),
		WithConsumerRetry(2, time.Millisecond, 4*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}

	cause := errors.New("decode order event")
	h := &countingHandler{err: cause}
	c.RegisterHandler(h)

	got := c.handleWithRetry(context.Background(), kafka.Message{Value: []byte("x")})
	if !errors.Is(got, cause) {
		t.Fatalf("expected cause to surface for parking, got %v", got)
	}
	if h.attempts != 3 {
		t.Fatalf("expected initial attempt plus 2 retries, got %d", h.attempts)
	}
}

func TestHandleWithRetryStopsOnSuccess(t *testing.T) {
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerGroupID("g"),
		WithConsumerRetry(3, time.Millisecond, 4*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}

	h := &countingHandler{}
	c.RegisterHandler(h)

	if err := c.handleWithRetry(context.Background(), kafka.Message{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.attempts != 1 {
		t.Fatalf("expected a single attempt on success, got %d", h.attempts)
	}
}
