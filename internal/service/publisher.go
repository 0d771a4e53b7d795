package service

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"product-console/internal/entity"
	"time"
)

// Publisher announces committed product mutations.
type Publisher interface {
	Publish(ctx context.Context, event *entity.ProductEvent) error
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish writes the event keyed "product.<type>.<id>". Missing EventID and
// OccurredAt are filled in.
func (p *KafkaPublisher) Publish(ctx context.Context, event *entity.ProductEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(EventKey(event.Type, event.ProductID)),
		Value: value,
	})
}

func EventKey(eventType string, productID int) string {
	return fmt.Sprintf("product.%s.%d", eventType, productID)
}
