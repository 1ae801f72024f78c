// Package kafka wraps franz-go producers and consumers for the recalculation
// event pipeline. The rest of the service only sees Publish and Message.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"yojana/internal/platform/config"
)

// Producer publishes records to a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the configured brokers and ensures the topic
// exists. Returns nil if no brokers are configured (event pipeline disabled).
func NewProducer(ctx context.Context, cfg config.Kafka) (*Producer, error) {
	if cfg.Brokers == "" {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(splitBrokers(cfg.Brokers)...),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	if err := ensureTopic(ctx, client, cfg.RecalcTopic); err != nil {
		client.Close()
		return nil, err
	}

	return &Producer{client: client, topic: cfg.RecalcTopic}, nil
}

// Publish produces one record synchronously. Key determines partition
// placement so events for one subject stay ordered.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{Topic: p.topic, Key: key, Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() {
	p.client.Close()
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	responses, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, response := range responses.Sorted() {
		if response.Err != nil && !errors.Is(response.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", response.Topic, response.Err)
		}
	}
	return nil
}

func splitBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	seeds := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			seeds = append(seeds, trimmed)
		}
	}
	return seeds
}
