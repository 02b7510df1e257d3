// Package kafka publishes audit events to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "sotcredit/pkg/platform/audit"
)

// NewClient builds a producer client with all-ISR acks and idempotent writes.
func NewClient(brokers []string, opts ...kgo.Opt) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression(), kgo.NoCompression()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates topic when it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replication int16) error {
	admin := kadm.NewClient(client)
	_, err := admin.CreateTopic(ctx, partitions, replication, nil, topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

// Sink writes audit events to one topic, keyed by subject so a customer's
// events stay ordered within a partition.
type Sink struct {
	client *kgo.Client
	topic  string
}

func NewSink(client *kgo.Client, topic string) *Sink {
	return &Sink{client: client, topic: topic}
}

// Append implements audit.Store.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := audit.Marshal(uuid.NewString(), event)
	if err != nil {
		return err
	}
	return s.Publish(ctx, event.Subject, payload)
}

// Publish produces one pre-encoded payload and waits for the broker ack.
func (s *Sink) Publish(ctx context.Context, key string, payload []byte) error {
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}
