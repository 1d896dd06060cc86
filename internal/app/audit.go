package app

import (
	"encoding/json"
	"fmt"

	"productapi/internal/models"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// AuditProductEvents returns a consumer callback that logs every product
// event received from the broker. Undecodable messages are rejected.
func AuditProductEvents(log zerolog.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event models.ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode product event: %w", err)
		}
		log.Info().
			Str("event", event.Type).
			Str("productId", event.ProductID).
			Time("occurredAt", event.OccurredAt).
			Uint64("delivery_tag", msg.DeliveryTag).
			Msg("product event")
		return nil
	}
}
