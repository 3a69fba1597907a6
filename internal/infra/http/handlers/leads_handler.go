package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/usecase"
)

// LeadsHandler serve as rotas do dashboard.
type LeadsHandler struct {
	UseCase *usecase.LeadQueryUseCase
}

func NewLeadsHandler(uc *usecase.LeadQueryUseCase) *LeadsHandler {
	return &LeadsHandler{UseCase: uc}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := entity.LeadFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	leads, err := h.UseCase.List(r.Context(), filter)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to fetch leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadsHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	msgs, err := h.UseCase.Thread(r.Context(), leadID)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to fetch messages")
		return
	}

	writeJSON(w, http.StatusOK, msgs)
}

func (h *LeadsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	lead, err := h.UseCase.UpdateStatus(r.Context(), leadID, req.Status)
	if err != nil {
		recordTechnicalError(err)
		writeError(w, err, "Failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
