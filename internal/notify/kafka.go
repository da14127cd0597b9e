package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// KafkaNotifier publishes enrollment events to the topic the notification
// service consumes.
type KafkaNotifier struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaNotifier(bootstrapServers, topic string) (*KafkaNotifier, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	return &KafkaNotifier{producer: producer, topic: topic}, nil
}

func (n *KafkaNotifier) EnrollmentCreated(ctx context.Context, event EnrollmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding enrollment event: %w", err)
	}

	delivery := make(chan kafka.Event, 1)

	err = n.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &n.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UserID.String()),
		Value:          payload,
	}, delivery)
	if err != nil {
		return fmt.Errorf("producing enrollment event: %w", err)
	}

	select {
	case ev := <-delivery:
		if msg, ok := ev.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
			return fmt.Errorf("delivering enrollment event: %w", msg.TopicPartition.Error)
		}

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *KafkaNotifier) Close() {
	n.producer.Flush(5000)
	n.producer.Close()
}
