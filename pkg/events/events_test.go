package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoBrokersIsNop(t *testing.T) {
	p := New(nil)
	_, ok := p.(Nop)
	require.True(t, ok)
	assert.NoError(t, p.Publish(context.Background(), TopicOrders, "k", struct{}{}))
	assert.NoError(t, p.Close())
}

func TestNew_WithBrokersIsKafka(t *testing.T) {
	p := New([]string{"kafka:9092"})
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "kafka:9092", kp.writer.Addr.String())
}

func TestEncode(t *testing.T) {
	orderID := uuid.New()
	msg, err := encode(TopicOrders, orderID.String(), OrderCreated{
		Type:        TypeOrderCreated,
		OrderID:     orderID,
		TotalAmount: "350.00",
		Items:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, TopicOrders, msg.Topic)
	assert.Equal(t, orderID.String(), string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order_created", got["type"])
	assert.Equal(t, orderID.String(), got["order_id"])
	assert.Equal(t, "350.00", got["total_amount"])
	assert.EqualValues(t, 2, got["items"])
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode(TopicOrders, "k", make(chan int))
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Publish(context.Background(), TopicPayments, "p1", PaymentChanged{Type: TypePaymentCaptured}))
	require.NoError(t, r.Publish(context.Background(), TopicPayments, "p2", PaymentChanged{Type: TypePaymentFailed}))

	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "p1", msgs[0].Key)
	assert.Equal(t, TypePaymentFailed, msgs[1].Event.(PaymentChanged).Type)
}
