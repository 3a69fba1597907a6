package usecase

import (
	"context"

	"github.com/xavierca1/hajabot/internal/entity"
)

const MsgFormRequired = "Nome e telefone são obrigatórios"

type FormInput struct {
	Name       string `json:"nome"`
	Phone      string `json:"telefone"`
	PostalCode string `json:"cep"`
	Plan       string `json:"plano"`
}

type CaptureFormUseCase struct {
	Leads  LeadRepository
	Events LeadEventPublisher
}

func NewCaptureFormUseCase(leads LeadRepository, events LeadEventPublisher) *CaptureFormUseCase {
	return &CaptureFormUseCase{Leads: leads, Events: events}
}

func (uc *CaptureFormUseCase) Execute(ctx context.Context, input FormInput) (*entity.Lead, error) {
	if errs := ValidateFormInput(input); len(errs) > 0 {
		return nil, validationFailed(MsgFormRequired, errs)
	}

	lead := entity.NewLead(input.Name, input.Phone)
	lead.PostalCode = input.PostalCode
	lead.Plan = input.Plan

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "falha ao salvar lead do formulário", Err: err}
	}

	publishLeadCreated(ctx, uc.Events, lead, SourceForm)
	return lead, nil
}
