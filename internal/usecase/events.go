package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/infra/queue"
)

const (
	SourceWebhook = "WEBHOOK"
	SourceForm    = "FORM"
)

// publishLeadCreated nunca derruba a requisição: o lead já está salvo.
func publishLeadCreated(ctx context.Context, events LeadEventPublisher, lead *entity.Lead, source string) {
	if events == nil {
		return
	}

	payload := queue.LeadCreatedPayload{
		EventID:    uuid.New().String(),
		LeadID:     lead.ID,
		Source:     source,
		Name:       lead.Name,
		Phone:      lead.Phone,
		Message:    lead.Message,
		PostalCode: lead.PostalCode,
		Plan:       lead.Plan,
		CreatedAt:  lead.CreatedAt,
	}

	if err := events.PublishLeadCreated(ctx, payload); err != nil {
		log.Printf("⚠️ Lead %s salvo, mas falha ao publicar evento: %v", lead.ID, err)
	}
}
