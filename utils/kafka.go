package utils

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds the writer for the audit topic
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
