package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/hajabot/internal/entity"
)

const MsgSenderRequired = "Sender é obrigatório"

const (
	stepLead     = "save_lead"
	stepInbound  = "save_inbound_message"
	stepReply    = "send_auto_reply"
	stepOutbound = "save_outbound_message"
)

type WebhookInput struct {
	Sender     string `json:"sender"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}

type WebhookOutput struct {
	LeadID      string
	LeadCreated bool
	Reply       string
}

type IngestWebhookUseCase struct {
	Leads    LeadRepository
	Messages MessageRepository
	Gateway  MessagingGateway
	Resolver *LeadResolver
	Events   LeadEventPublisher
	// ReuseLead faz o webhook reaproveitar o lead mais recente do telefone em vez de criar outro.
	ReuseLead bool
}

func NewIngestWebhookUseCase(
	leads LeadRepository,
	messages MessageRepository,
	gateway MessagingGateway,
	events LeadEventPublisher,
	reuseLead bool,
) *IngestWebhookUseCase {
	return &IngestWebhookUseCase{
		Leads:     leads,
		Messages:  messages,
		Gateway:   gateway,
		Resolver:  NewLeadResolver(leads),
		Events:    events,
		ReuseLead: reuseLead,
	}
}

func (uc *IngestWebhookUseCase) Execute(ctx context.Context, input WebhookInput) (*WebhookOutput, error) {
	if errs := ValidateWebhookInput(input); len(errs) > 0 {
		return nil, validationFailed(MsgSenderRequired, errs)
	}

	out := &WebhookOutput{Reply: ComposeGreeting(input.SenderName)}
	var lead *entity.Lead

	p := NewPipeline()

	p.AddStep(stepLead, func(ctx context.Context) error {
		if uc.ReuseLead {
			existing, err := uc.Resolver.Resolve(ctx, input.Sender)
			switch {
			case err == nil:
				lead = existing
				return nil
			case !errors.Is(err, entity.ErrLeadNotFound):
				return err
			}
		}

		lead = entity.NewLead(input.SenderName, input.Sender)
		lead.Message = input.Message
		if err := uc.Leads.Create(ctx, lead); err != nil {
			return err
		}
		out.LeadCreated = true
		return nil
	})

	p.AddStep(stepInbound, func(ctx context.Context) error {
		return uc.saveMessage(ctx, lead.ID, input.Message, entity.DirectionReceived)
	})

	p.AddStep(stepReply, func(ctx context.Context) error {
		_, err := uc.Gateway.SendText(ctx, input.Sender, out.Reply)
		return err
	})

	p.AddStep(stepOutbound, func(ctx context.Context) error {
		return uc.saveMessage(ctx, lead.ID, out.Reply, entity.DirectionSent)
	})

	if err := p.Execute(ctx); err != nil {
		var stepErr *StepError
		errors.As(err, &stepErr)

		code := CodeDatabase
		if stepErr != nil && stepErr.Step == stepReply {
			code = CodeMessaging
		}
		if lead != nil && lead.ID != "" {
			log.Printf("⚠️ Webhook de %s interrompido com lead %s já gravado: %v", input.Sender, lead.ID, err)
		}
		return nil, &TechnicalError{Code: code, Message: "falha ao processar webhook", Err: err}
	}

	out.LeadID = lead.ID
	if out.LeadCreated {
		publishLeadCreated(ctx, uc.Events, lead, SourceWebhook)
	}

	log.Printf("✅ Webhook processado: lead=%s novo=%t", lead.ID, out.LeadCreated)
	return out, nil
}

func (uc *IngestWebhookUseCase) saveMessage(ctx context.Context, leadID, text string, dir entity.Direction) error {
	msg, err := entity.NewMessage(leadID, text, dir)
	if err != nil {
		return fmt.Errorf("mensagem inválida: %w", err)
	}
	return uc.Messages.Create(ctx, msg)
}
