package handlers

import (
	"net/http"

	metrics "github.com/xavierca1/hajabot/internal/infra/http/middleware"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
	"github.com/xavierca1/hajabot/internal/usecase"
)

type SendHandler struct {
	UseCase *usecase.ManualDispatchUseCase
}

func NewSendHandler(uc *usecase.ManualDispatchUseCase) *SendHandler {
	return &SendHandler{UseCase: uc}
}

type SendResponse struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	Result      *zapi.SendTextResponse `json:"result"`
	Linked      bool                   `json:"linked"`
	LeadID      string                 `json:"leadId,omitempty"`
	LinkWarning string                 `json:"linkWarning,omitempty"`
}

func (h *SendHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ManualSendInput
	if err := decodeJSON(r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to send message")
		return
	}

	metrics.RecordMessageSent("manual")
	if !out.Linked {
		metrics.RecordLeadLinkSkipped()
	}

	writeJSON(w, http.StatusOK, SendResponse{
		Success:     true,
		Message:     "Message sent successfully",
		Result:      out.Result,
		Linked:      out.Linked,
		LeadID:      out.LeadID,
		LinkWarning: out.LinkWarning,
	})
}
