// Package kafka publishes record events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Shopify/sarama"

	"kakei/internal/events"
	applog "kakei/internal/log"
)

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

var _ events.Publisher = (*Producer)(nil)

// NewProducer connects a synchronous producer that waits for all replicas.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewWithProducer(producer, topic), nil
}

func NewWithProducer(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

// Publish keys messages by record id so events for one record stay ordered.
func (p *Producer) Publish(ctx context.Context, e events.Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.ID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(e.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}
	applog.ForComponent(ctx, applog.ComponentEvents).DebugContext(ctx, "Produced record event",
		"kind", e.Kind,
		"id", e.ID,
		"partition", partition,
		"offset", offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
