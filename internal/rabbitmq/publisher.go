package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

// ExchangeName — exchange для событий конвейера печати карт.
const ExchangeName = "card_batches"

// QueueConfig описывает очередь и ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetPrintQueues возвращает очереди конвейера печати.
func GetPrintQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "card_batches.issued", RoutingKey: "issued"},
	}
}

// Publisher публикует события о выпущенных партиях карт.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishBatchIssued публикует событие о выпущенной партии карт.
func (p *Publisher) PublishBatchIssued(event models.CardBatchEvent) error {
	const op = "rabbitmq.PublishBatchIssued"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		ExchangeName,
		"issued",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
