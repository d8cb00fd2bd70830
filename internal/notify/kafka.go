package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSender publishes notifications keyed by provider so each provider's
// events stay ordered.
type KafkaSender struct {
	writer *kafka.Writer
}

func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
			BatchTimeout: 50 * time.Millisecond,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		},
	}
}

func (s *KafkaSender) Send(ctx context.Context, n Notification) error {
	msg, err := toMessage(n)
	if err != nil {
		return err
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.EventID, err)
	}
	return nil
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

func toMessage(n Notification) (kafka.Message, error) {
	value, err := json.Marshal(n)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode notification: %w", err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(n.ProviderID), 10)),
		Value: value,
		Time:  n.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(n.EventID)},
			{Key: "event_type", Value: []byte(n.Type)},
			{Key: "channel", Value: []byte(n.Channel)},
		},
	}, nil
}
