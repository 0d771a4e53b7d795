package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"product-console/internal/entity"
	"strconv"
	"strings"
	"time"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// PriceUpdater applies a new price to a product.
type PriceUpdater interface {
	UpdateProductPrice(ctx context.Context, productID int, price int) (int64, error)
}

type Consumer struct {
	reader  MessageReader
	pricing PriceUpdater
}

func NewConsumer(reader MessageReader, pricing PriceUpdater) *Consumer {
	return &Consumer{reader: reader, pricing: pricing}
}

// Start reads pricing events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Error().Msgf("Error reading message: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		// Process message
		c.processMessage(ctx, msg)
	}
}

// processMessage processes the message received from the pricing topic
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	// key -> "price.updated.<productID>"
	listKey := strings.Split(string(msg.Key), ".")
	if len(listKey) != 3 || listKey[0] != "price" {
		log.Error().Msgf("Unexpected message key: %q", msg.Key)
		return
	}

	switch eventType := listKey[1]; eventType {
	case "updated":
		var update entity.PriceUpdate
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			log.Error().Msgf("Error unmarshalling message: %v", err)
			return
		}
		if update.ProductID == nil {
			id, err := strconv.Atoi(listKey[2])
			if err != nil {
				log.Error().Msgf("Skipping price update without product id: key %q", msg.Key)
				return
			}
			update.ProductID = &id
		}
		if update.Price == nil {
			log.Error().Msgf("Skipping price update without price for product %d", *update.ProductID)
			return
		}

		if _, err := c.pricing.UpdateProductPrice(ctx, *update.ProductID, *update.Price); err != nil {
			log.Error().Msgf("Error updating price for product %d: %v", *update.ProductID, err)
		}
	default:
		log.Error().Msgf("Unknown pricing event: %s", eventType)
	}
}
