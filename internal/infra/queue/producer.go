package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCreatedPayload é publicado sempre que um lead novo entra pelo webhook ou pelo formulário.
type LeadCreatedPayload struct {
	EventID    string    `json:"event_id"`
	LeadID     string    `json:"lead_id"`
	Source     string    `json:"source"` // WEBHOOK, FORM
	Name       string    `json:"nome"`
	Phone      string    `json:"telefone"`
	Message    string    `json:"mensagem,omitempty"`
	PostalCode string    `json:"cep,omitempty"`
	Plan       string    `json:"plano,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher é o subconjunto de *amqp.Channel usado pelo producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadCreated(ctx context.Context, payload LeadCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.EventID,
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
