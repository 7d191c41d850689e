package utils

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
)

var kafkaWriter *kafka.Writer

const defaultTopic = "mandapam-events"

// InitializeKafka sets up the producer used for membership events.
// Missing broker config disables publishing rather than failing startup.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, event publishing disabled")
		return
	}

	topic := cfg.KafkaTopic
	if topic == "" {
		topic = defaultTopic
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("✅ Kafka producer ready (topic: %s)", topic)
}

// PublishEvent emits a domain event, best effort. A broker outage must not
// fail the originating request; consumers catch up when Kafka returns.
func PublishEvent(ctx context.Context, key string, payload []byte) {
	if kafkaWriter == nil {
		return
	}

	err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		log.Printf("⚠️ Kafka publish failed for %s: %v", key, err)
	}
}

// NewKafkaReader builds the consumer used by the notification service.
func NewKafkaReader(cfg *config.Config, groupID string) *kafka.Reader {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	topic := cfg.KafkaTopic
	if topic == "" {
		topic = defaultTopic
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
