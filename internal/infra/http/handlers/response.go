package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/hajabot/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Erro ao serializar resposta: %v", err)
	}
}

// decodeJSON trata corpo vazio como objeto vazio, para a validação responder.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeBadJSON(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON", Details: err.Error()})
}

// writeError traduz erros de domínio em 4xx e o resto em 500 com a mensagem da rota.
func writeError(w http.ResponseWriter, err error, failure string) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if de.Code == usecase.CodeLeadNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{Error: de.Message})
		return
	}

	details := err.Error()
	var te *usecase.TechnicalError
	if errors.As(err, &te) && te.Err != nil {
		details = te.Err.Error()
	}
	var se *usecase.StepError
	if errors.As(err, &se) && se.Err != nil {
		details = se.Err.Error()
	}

	log.Printf("❌ %s: %v", failure, err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: failure, Details: details})
}
