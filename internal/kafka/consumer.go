package kafka

import (
	"context"
	"log"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"

	"diary-service/configs"
)

// Handler processes one consumed message. A returned error is logged and
// the offset is committed anyway; the post topic is a change feed, not a
// work queue.
type Handler func(ctx context.Context, topic string, key, value []byte) error

const fetchRetryDelay = time.Second

type Consumer struct {
	reader *kgo.Reader
	handle Handler
}

// NewConsumer subscribes the configured group to the post event topic.
func NewConsumer(cfg *configs.Config, h Handler) *Consumer {
	brokers := strings.TrimSpace(cfg.KafkaBrokers)
	if brokers == "" {
		brokers = "localhost:9092"
	}
	return &Consumer{
		reader: kgo.NewReader(kgo.ReaderConfig{
			Brokers:        strings.Split(brokers, ","),
			GroupID:        cfg.KafkaGroup,
			Topic:          cfg.KafkaTopic,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
		handle: h,
	}
}

// Run consumes until ctx is cancelled. Fetch errors back off and retry;
// handler errors do not block the partition.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() { _ = c.reader.Close() }()

	rc := c.reader.Config()
	log.Printf("[Kafka] consuming group=%s topic=%s brokers=%v", rc.GroupID, rc.Topic, rc.Brokers)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Print("[Kafka] consumer stopped")
				return nil
			}
			log.Printf("[Kafka] fetch: %v", err)
			time.Sleep(fetchRetryDelay)
			continue
		}
		if err := c.handle(ctx, m.Topic, m.Key, m.Value); err != nil {
			log.Printf("[Kafka] handle message on %s: %v", m.Topic, err)
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			log.Printf("[Kafka] commit: %v", err)
		}
	}
}
