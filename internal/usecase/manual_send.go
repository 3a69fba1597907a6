package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
)

const MsgManualSendRequired = "Phone e message são obrigatórios"

type ManualSendInput struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ManualSendOutput separa as duas fases: o envio (sempre reportado) e o vínculo
// com o histórico, que pode falhar sem derrubar o envio.
type ManualSendOutput struct {
	Result      *zapi.SendTextResponse
	Linked      bool
	LeadID      string
	LinkWarning string
}

type ManualDispatchUseCase struct {
	Gateway  MessagingGateway
	Messages MessageRepository
	Resolver *LeadResolver
}

func NewManualDispatchUseCase(gateway MessagingGateway, leads LeadRepository, messages MessageRepository) *ManualDispatchUseCase {
	return &ManualDispatchUseCase{
		Gateway:  gateway,
		Messages: messages,
		Resolver: NewLeadResolver(leads),
	}
}

func (uc *ManualDispatchUseCase) Execute(ctx context.Context, input ManualSendInput) (*ManualSendOutput, error) {
	if errs := ValidateManualSendInput(input); len(errs) > 0 {
		return nil, validationFailed(MsgManualSendRequired, errs)
	}

	// Fase 1: envio. Se falhar, nada é gravado.
	result, err := uc.Gateway.SendText(ctx, input.Phone, input.Message)
	if err != nil {
		return nil, &TechnicalError{Code: CodeMessaging, Message: "falha ao enviar mensagem", Err: err}
	}

	out := &ManualSendOutput{Result: result}

	// Fase 2: vínculo com o histórico, best effort.
	leadID, err := uc.link(ctx, input)
	if err != nil {
		out.LinkWarning = linkWarning(err)
		log.Printf("⚠️ Mensagem enviada para %s sem registro no histórico: %v", input.Phone, err)
		return out, nil
	}

	out.Linked = true
	out.LeadID = leadID
	return out, nil
}

func (uc *ManualDispatchUseCase) link(ctx context.Context, input ManualSendInput) (string, error) {
	lead, err := uc.Resolver.Resolve(ctx, input.Phone)
	if err != nil {
		return "", err
	}

	msg, err := entity.NewMessage(lead.ID, input.Message, entity.DirectionSent)
	if err != nil {
		return "", err
	}
	if err := uc.Messages.Create(ctx, msg); err != nil {
		return "", err
	}
	return lead.ID, nil
}

func linkWarning(err error) string {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return "Lead não encontrado para este telefone; mensagem não registrada no histórico"
	}
	return "Falha ao registrar mensagem no histórico: " + err.Error()
}
