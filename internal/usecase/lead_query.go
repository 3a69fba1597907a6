package usecase

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/xavierca1/hajabot/internal/entity"
)

const (
	MsgInvalidStatus = "Status inválido"
	MsgLeadNotFound  = "Lead não encontrado"
)

// LeadQueryUseCase atende a listagem, o histórico e a troca de status do dashboard.
type LeadQueryUseCase struct {
	Leads    LeadRepository
	Messages MessageRepository
}

func NewLeadQueryUseCase(leads LeadRepository, messages MessageRepository) *LeadQueryUseCase {
	return &LeadQueryUseCase{Leads: leads, Messages: messages}
}

// List devolve os leads do mais novo para o mais antigo.
func (uc *LeadQueryUseCase) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	leads, err := uc.Leads.List(ctx, filter)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "falha ao buscar leads", Err: err}
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

// Thread devolve as mensagens do lead em ordem cronológica.
func (uc *LeadQueryUseCase) Thread(ctx context.Context, leadID string) ([]*entity.Message, error) {
	msgs, err := uc.Messages.ListByLead(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "falha ao buscar mensagens", Err: err}
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	if msgs == nil {
		msgs = []*entity.Message{}
	}
	return msgs, nil
}

// UpdateStatus grava qualquer status não vazio, com qualquer transição.
// Valores fora dos três conhecidos só geram log.
func (uc *LeadQueryUseCase) UpdateStatus(ctx context.Context, leadID, status string) (*entity.Lead, error) {
	st, err := entity.ParseLeadStatus(status)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidStatus, Message: MsgInvalidStatus}
	}
	if !st.IsKnown() {
		log.Printf("⚠️ Lead %s recebeu status fora do padrão: %q", leadID, st)
	}

	lead, err := uc.Leads.UpdateStatus(ctx, leadID, st)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: MsgLeadNotFound}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "falha ao atualizar lead", Err: err}
	}
	return lead, nil
}
