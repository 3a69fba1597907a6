package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/xavierca1/hajabot/internal/entity"
)

const leadColumns = `id::text, nome, telefone, COALESCE(mensagem, ''), COALESCE(cep, ''), COALESCE(plano, ''), status, created_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (nome, telefone, mensagem, cep, plano, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, status, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Phone,
		nullString(lead.Message),
		nullString(lead.PostalCode),
		nullString(lead.Plan),
		string(lead.Status),
	).Scan(&lead.ID, &lead.Status, &lead.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			log.Printf("Erro crítico no banco (%s): %v", pqErr.Code, err)
		}
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByPhone(ctx context.Context, phone string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE telefone = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, phone)
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query, args := buildListQuery(filter)
	return r.query(ctx, query, args...)
}

// buildListQuery monta o SELECT da listagem numerando os placeholders na ordem dos filtros.
func buildListQuery(filter entity.LeadFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.HasStatus() {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(nome ILIKE $%d OR telefone ILIKE $%d)", n, n))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return query, args
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	query := `UPDATE leads SET status = $1 WHERE id::text = $2 RETURNING ` + leadColumns

	lead := &entity.Lead{}
	err := scanLead(r.DB.QueryRowContext(ctx, query, string(status), id), lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar status do lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead := &entity.Lead{}
		if err := scanLead(rows, lead); err != nil {
			return nil, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(s scanner, l *entity.Lead) error {
	return s.Scan(&l.ID, &l.Name, &l.Phone, &l.Message, &l.PostalCode, &l.Plan, &l.Status, &l.CreatedAt)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// escapeLike faz % e _ da busca valerem como texto literal no ILIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
