package handlers

import (
	"net/http"
	"time"

	"github.com/xavierca1/hajabot/internal/entity"
	metrics "github.com/xavierca1/hajabot/internal/infra/http/middleware"
	"github.com/xavierca1/hajabot/internal/usecase"
)

type FormHandler struct {
	UseCase     *usecase.CaptureFormUseCase
	rateLimiter *RateLimiter
}

// NewFormHandler limita submissões por IP a perMinute por minuto.
func NewFormHandler(uc *usecase.CaptureFormUseCase, perMinute int) *FormHandler {
	return &FormHandler{
		UseCase:     uc,
		rateLimiter: NewRateLimiter(perMinute, time.Minute),
	}
}

type FormResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Lead    *entity.Lead `json:"lead"`
}

func (h *FormHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error: "Muitas requisições. Tente novamente em instantes.",
		})
		return
	}

	var input usecase.FormInput
	if err := decodeJSON(r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	lead, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to process form submission")
		return
	}

	metrics.RecordLeadCreated(usecase.SourceForm)

	writeJSON(w, http.StatusCreated, FormResponse{
		Success: true,
		Message: "Lead cadastrado com sucesso",
		Lead:    lead,
	})
}
