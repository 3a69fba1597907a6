package usecase

import (
	"fmt"
	"log"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Telefone só é checado quanto à presença; formato fica por conta do gateway.
func required(errs []ValidationError, field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, ValidationError{field, "is required"})
	}
	return errs
}

func ValidateWebhookInput(input WebhookInput) []ValidationError {
	return required(nil, "sender", input.Sender)
}

func ValidateFormInput(input FormInput) []ValidationError {
	var errs []ValidationError
	errs = required(errs, "nome", input.Name)
	errs = required(errs, "telefone", input.Phone)
	return errs
}

func ValidateManualSendInput(input ManualSendInput) []ValidationError {
	var errs []ValidationError
	errs = required(errs, "phone", input.Phone)
	errs = required(errs, "message", input.Message)
	return errs
}

// validationFailed monta o erro de domínio com os campos que falharam.
func validationFailed(message string, errs []ValidationError) *DomainError {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	log.Printf("⚠️ Validação falhou: %v", errs)
	return &DomainError{Code: CodeValidation, Message: message, Fields: fields}
}
