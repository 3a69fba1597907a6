package usecase

import (
	"context"

	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
	"github.com/xavierca1/hajabot/internal/infra/queue"
)

// LeadRepository é a metade "leads" do gateway de persistência.
// Create preenche ID, CreatedAt e Status com o que o store devolver.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// FindByPhone devolve os leads com telefone exato, mais recentes primeiro.
	FindByPhone(ctx context.Context, phone string) ([]*entity.Lead, error)
	List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error)
	// UpdateStatus devolve entity.ErrLeadNotFound quando o id não existe.
	UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error)
}

type MessagingGateway interface {
	SendText(ctx context.Context, phone, message string) (*zapi.SendTextResponse, error)
}

type LeadEventPublisher interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}
