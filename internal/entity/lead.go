package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrLeadNotFound  = errors.New("lead não encontrado")
	ErrInvalidStatus = errors.New("status inválido")
)

// LeadStatus segue os valores que o dashboard já grava no banco.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "novo"
	LeadStatusInProgress LeadStatus = "em_andamento"
	LeadStatusDone       LeadStatus = "concluido"
)

// DefaultLeadName é usado quando o contato não informa nome.
const DefaultLeadName = "Sem nome"

// ParseLeadStatus aceita qualquer valor não vazio: o dashboard pode gravar status
// fora dos três conhecidos e o store guarda o que vier.
func ParseLeadStatus(s string) (LeadStatus, error) {
	st := LeadStatus(strings.TrimSpace(s))
	if st == "" {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsKnown indica se o status é um dos três usados pelo fluxo padrão.
func (s LeadStatus) IsKnown() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusDone:
		return true
	}
	return false
}

type Lead struct {
	ID         string     `json:"id"`
	Name       string     `json:"nome"`
	Phone      string     `json:"telefone"`
	Message    string     `json:"mensagem,omitempty"`
	PostalCode string     `json:"cep,omitempty"`
	Plan       string     `json:"plano,omitempty"`
	Status     LeadStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewLead monta um lead ainda não persistido, com status novo.
// ID e CreatedAt ficam a cargo do store.
func NewLead(name, phone string) *Lead {
	if strings.TrimSpace(name) == "" {
		name = DefaultLeadName
	}
	return &Lead{
		Name:   name,
		Phone:  phone,
		Status: LeadStatusNew,
	}
}

// LeadFilter é o filtro da listagem do dashboard.
type LeadFilter struct {
	Status string
	Search string
}

// HasStatus indica se o filtro restringe por status. "all" e "" não restringem.
func (f LeadFilter) HasStatus() bool {
	return f.Status != "" && f.Status != "all"
}

// Matches aplica o filtro em memória, com a mesma semântica dos stores.
func (f LeadFilter) Matches(l *Lead) bool {
	if f.HasStatus() && string(l.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Phone), term)
}
