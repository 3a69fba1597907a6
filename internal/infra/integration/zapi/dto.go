package zapi

import "fmt"

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendTextResponse é o recibo devolvido pela Z-API no envio.
type SendTextResponse struct {
	ZaapID    string `json:"zaapId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	ID        string `json:"id,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError representa uma resposta não-2xx da Z-API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("z-api status %d: %s", e.StatusCode, e.Message)
}
