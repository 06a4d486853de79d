package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"newsdesk/types"

	"github.com/IBM/sarama"
)

// Publisher emits one Kafka event per stored article so downstream services
// (notifications, search indexing) can react without polling the CMS.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a sync producer to the given brokers. Returns nil
// when no brokers are configured.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Publisher{producer: producer, topic: topic}, nil
}

func (p *Publisher) Name() string { return "kafka:" + p.topic }

// Store publishes the article keyed by its source identifier.
func (p *Publisher) Store(_ context.Context, article *types.Article) error {
	if article == nil {
		return nil
	}

	payload, err := json.Marshal(article)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(article.SourceID),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

// Close shuts down the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
