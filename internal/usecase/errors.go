package usecase

import "errors"

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidStatus = "INVALID_STATUS"
	CodeLeadNotFound  = "LEAD_NOT_FOUND"
	CodeDatabase      = "DATABASE_ERROR"
	CodeMessaging     = "MESSAGING_ERROR"
)

// DomainError é culpa de quem chamou (4xx). Message vai direto para o cliente.
// Fields lista os campos que falharam na validação, quando houver.
type DomainError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de store ou gateway (5xx).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
