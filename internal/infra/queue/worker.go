package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier avisa a equipe comercial sobre um lead novo (email, etc).
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, payload LeadCreatedPayload) error
}

// Consumer é o subconjunto de *amqp.Channel usado pelo worker.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  Consumer
	Notifier LeadNotifier
}

func NewWorker(ch Consumer, notifier LeadNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] Encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ [WORKER] Canal de entregas fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadCreatedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("❌ [WORKER] JSON Inválido: %s", err)
		// Mensagem malformada vai direto para a DLQ
		d.Nack(false, false)
		return
	}

	log.Printf("📥 [WORKER] Lead %s recebido (origem: %s)", payload.LeadID, payload.Source)

	if err := w.Notifier.NotifyNewLead(ctx, payload); err != nil {
		log.Printf("❌ [WORKER] Falha ao notificar lead %s: %s", payload.LeadID, err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
