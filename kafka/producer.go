// Package kafka publishes order lifecycle events. Publishing is best-effort:
// checkout and admin flows log failures but never fail on them.
package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/models"
)

type OrderEventProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewOrderEventProducer builds a producer for the given brokers (comma
// separated) and topic.
func NewOrderEventProducer(brokers, topic string) *OrderEventProducer {
	addrs := strings.Split(brokers, ",")
	w := &kafka.Writer{
		Addr:     kafka.TCP(addrs...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Log.Info("Kafka order event producer initialized",
		zap.String("topic", topic), zap.Strings("brokers", addrs))
	return &OrderEventProducer{writer: w, topic: topic}
}

// Publish sends one order event keyed by order id.
func (p *OrderEventProducer) Publish(ctx context.Context, event models.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Warn("Failed to publish order event",
			zap.String("type", event.Type), zap.Error(err))
		return err
	}
	return nil
}

func (p *OrderEventProducer) Close() {
	_ = p.writer.Close()
}
