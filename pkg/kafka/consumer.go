package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler processes messages from a topic.
type MessageHandler interface {
	Topic() string
	Handle(ctx context.Context, key, value []byte) error
}

// Consumer reads a topic inside a consumer group and hands messages to
// a registered handler. Failed messages are retried with backoff and
// finally parked on the DLQ topic if one is configured.
type Consumer struct {
	cfg     *ConsumerConfig
	handler MessageHandler
	dlq     *Producer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer creates a Kafka consumer.
func NewConsumer(opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		MinBytes:   1,
		MaxBytes:   10 << 20,
		RetryMax:   3,
		BackoffMin: 100 * time.Millisecond,
		BackoffMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("group id is required")
	}
	return &Consumer{cfg: cfg}, nil
}

// RegisterHandler sets the message handler. Must be called before Start.
func (c *Consumer) RegisterHandler(h MessageHandler) { c.handler = h }

// Start begins consuming. It blocks until Stop is called or the reader fails.
func (c *Consumer) Start() error {
	if c.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	topic := c.cfg.Topic
	if topic == "" {
		topic = c.handler.Topic()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.cfg.Brokers,
		GroupID:  c.cfg.GroupID,
		Topic:    topic,
		MinBytes: c.cfg.MinBytes,
		MaxBytes: c.cfg.MaxBytes,
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	defer c.wg.Done()
	defer reader.Close()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.handleWithRetry(ctx, msg); err != nil {
			c.park(ctx, msg, err)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("commit: %w", err)
		}
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, msg kafka.Message) error {
	backoff := c.cfg.BackoffMin
	var err error
	for attempt := 0; attempt <= c.cfg.RetryMax; attempt++ {
		if err = c.handler.Handle(ctx, msg.Key, msg.Value); err == nil {
			return nil
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
		if backoff > c.cfg.BackoffMax {
			backoff = c.cfg.BackoffMax
		}
	}
	return err
}

// park sends a poison message to the DLQ topic, if configured. The
// failure reason rides along as a header so DLQ consumers can see why
// the message was parked.
func (c *Consumer) park(ctx context.Context, msg kafka.Message, cause error) {
	if c.cfg.DLQTopic == "" {
		return
	}
	if c.dlq == nil {
		p, err := NewProducer(WithBrokers(c.cfg.Brokers))
		if err != nil {
			return
		}
		c.dlq = p
	}
	_ = c.dlq.PublishWithHeaders(ctx, c.cfg.DLQTopic, msg.Key, msg.Value, map[string]string{
		"error": cause.Error(),
	})
}

// Stop cancels the consume loop and waits for it to drain.
func (c *Consumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.dlq != nil {
		return c.dlq.Close()
	}
	return nil
}
