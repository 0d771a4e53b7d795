package config

import "github.com/segmentio/kafka-go"

func (c *Config) NewKafkaWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Kafka.Brokers...),
		Topic:                  c.Kafka.ProductTopic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}

func (c *Config) NewKafkaReader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.Kafka.Brokers,
		GroupID:  c.Kafka.GroupID,
		Topic:    c.Kafka.PricingTopic,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
}
