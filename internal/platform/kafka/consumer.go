package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"yojana/internal/platform/config"
)

// Message is one consumed record, decoupled from the kafka client so handlers
// stay testable.
type Message struct {
	Key   []byte
	Value []byte
}

// Handler processes one consumed message. Returning an error stops the
// consumer; transient per-message failures should be handled (logged,
// retried) inside the handler.
type Handler func(ctx context.Context, msg *Message) error

// Consumer reads records from the recalculation topic within a consumer group.
type Consumer struct {
	client *kgo.Client
}

// NewConsumer connects a group consumer to the configured brokers.
// Returns nil if no brokers are configured.
func NewConsumer(cfg config.Kafka) (*Consumer, error) {
	if cfg.Brokers == "" {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(splitBrokers(cfg.Brokers)...),
		kgo.ConsumerGroup(cfg.GroupID),
		kgo.ConsumeTopics(cfg.RecalcTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	return &Consumer{client: client}, nil
}

// Run polls until ctx is cancelled, invoking handle for each record.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			return fmt.Errorf("poll fetches: %w", errs[0].Err)
		}

		var handleErr error
		fetches.EachRecord(func(record *kgo.Record) {
			if handleErr != nil {
				return
			}
			handleErr = handle(ctx, &Message{Key: record.Key, Value: record.Value})
		})
		if handleErr != nil {
			return handleErr
		}
	}
}

// Close closes the underlying client, committing outstanding offsets.
func (c *Consumer) Close() {
	c.client.Close()
}
