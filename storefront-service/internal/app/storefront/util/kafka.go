package util

import (
	"context"
	"fmt"
	"time"

	"velora/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer обертка над Kafka writer для отправки событий каталога
// в топик product_events
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров в формате ["host:port"]
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Second,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет сообщение в Kafka
// key - ID товара: сохраняет порядок событий одного товара внутри партиции
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
