package handlers

import (
	"errors"
	"net/http"

	metrics "github.com/xavierca1/hajabot/internal/infra/http/middleware"
	"github.com/xavierca1/hajabot/internal/usecase"
)

type WebhookHandler struct {
	UseCase *usecase.IngestWebhookUseCase
}

func NewWebhookHandler(uc *usecase.IngestWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{UseCase: uc}
}

type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.WebhookInput
	if err := decodeJSON(r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to process webhook")
		return
	}

	if out.LeadCreated {
		metrics.RecordLeadCreated(usecase.SourceWebhook)
	}
	metrics.RecordMessageSent("auto_reply")

	writeJSON(w, http.StatusOK, WebhookResponse{
		Success: true,
		Message: "Webhook processed successfully",
		LeadID:  out.LeadID,
	})
}

func recordTechnicalError(err error) {
	var te *usecase.TechnicalError
	if !errors.As(err, &te) {
		return
	}
	switch te.Code {
	case usecase.CodeMessaging:
		metrics.RecordIntegrationError("zapi")
	case usecase.CodeDatabase:
		metrics.RecordIntegrationError("store")
	}
}
