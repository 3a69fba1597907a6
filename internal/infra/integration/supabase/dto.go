package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/hajabot/internal/entity"
)

// flexID aceita id numérico (bigserial) ou texto (uuid).
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido: %s", string(b))
	}
	*f = flexID(n.String())
	return nil
}

// flexTime aceita timestamptz e timestamp sem fuso (assumido UTC).
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*f = flexTime(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexTime(t)
			return nil
		}
	}
	return fmt.Errorf("data inválida: %q", s)
}

type leadRow struct {
	ID        flexID   `json:"id"`
	Nome      *string  `json:"nome"`
	Telefone  *string  `json:"telefone"`
	Mensagem  *string  `json:"mensagem"`
	Cep       *string  `json:"cep"`
	Plano     *string  `json:"plano"`
	Status    *string  `json:"status"`
	CreatedAt flexTime `json:"created_at"`
}

func (r leadRow) toEntity() *entity.Lead {
	return &entity.Lead{
		ID:         string(r.ID),
		Name:       deref(r.Nome),
		Phone:      deref(r.Telefone),
		Message:    deref(r.Mensagem),
		PostalCode: deref(r.Cep),
		Plan:       deref(r.Plano),
		Status:     entity.LeadStatus(deref(r.Status)),
		CreatedAt:  time.Time(r.CreatedAt),
	}
}

type leadInsert struct {
	Nome     string  `json:"nome"`
	Telefone string  `json:"telefone"`
	Mensagem *string `json:"mensagem,omitempty"`
	Cep      *string `json:"cep,omitempty"`
	Plano    *string `json:"plano,omitempty"`
	Status   string  `json:"status"`
}

type messageRow struct {
	ID      flexID   `json:"id"`
	IDLead  flexID   `json:"id_lead"`
	Texto   *string  `json:"texto"`
	Tipo    string   `json:"tipo"`
	Horario flexTime `json:"horario"`
}

func (r messageRow) toEntity() *entity.Message {
	return &entity.Message{
		ID:        string(r.ID),
		LeadID:    string(r.IDLead),
		Text:      deref(r.Texto),
		Direction: entity.Direction(r.Tipo),
		Timestamp: time.Time(r.Horario),
	}
}

type messageInsert struct {
	IDLead string `json:"id_lead"`
	Texto  string `json:"texto"`
	Tipo   string `json:"tipo"`
}

// APIError é o corpo de erro padrão do PostgREST.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "erro desconhecido"
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase status %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("supabase status %d: %s", e.StatusCode, msg)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// quoteValue protege valores com caracteres reservados do PostgREST (, . : ( )).
func quoteValue(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return `"` + s + `"`
}

// escapeLike faz % e _ da busca valerem como texto literal no ilike.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
