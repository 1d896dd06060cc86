package app_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"productapi/internal/app"
	"productapi/internal/models"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditProductEvents(t *testing.T) {
	var buf bytes.Buffer
	handle := app.AuditProductEvents(zerolog.New(&buf))

	body, err := json.Marshal(models.ProductEvent{
		Type:       models.ProductDeleted,
		ProductID:  "product_abcdefghij",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, handle(amqp.Delivery{Body: body, DeliveryTag: 7}))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "product.deleted", line["event"])
	assert.Equal(t, "product_abcdefghij", line["productId"])
	assert.Equal(t, float64(7), line["delivery_tag"])
}

func TestAuditProductEvents_Undecodable(t *testing.T) {
	handle := app.AuditProductEvents(zerolog.Nop())

	err := handle(amqp.Delivery{Body: []byte("not json")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode product event")
}
