package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/xavierca1/hajabot/internal/entity"
)

type LeadRepository struct {
	Client *Client
}

func NewLeadRepository(c *Client) *LeadRepository {
	return &LeadRepository{Client: c}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	body := []leadInsert{{
		Nome:     lead.Name,
		Telefone: lead.Phone,
		Mensagem: optional(lead.Message),
		Cep:      optional(lead.PostalCode),
		Plano:    optional(lead.Plan),
		Status:   string(lead.Status),
	}}

	var rows []leadRow
	if err := r.Client.do(ctx, http.MethodPost, TableLeads, nil, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("supabase não devolveu o lead criado")
	}

	*lead = *rows[0].toEntity()
	return nil
}

func (r *LeadRepository) FindByPhone(ctx context.Context, phone string) ([]*entity.Lead, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("telefone", "eq."+phone)
	q.Set("order", "created_at.desc")
	return r.list(ctx, q)
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	q := url.Values{}
	q.Set("select", "*")
	if filter.HasStatus() {
		q.Set("status", "eq."+filter.Status)
	}
	if filter.Search != "" {
		term := quoteValue("*" + escapeLike(filter.Search) + "*")
		q.Set("or", "(nome.ilike."+term+",telefone.ilike."+term+")")
	}
	q.Set("order", "created_at.desc")
	return r.list(ctx, q)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var rows []leadRow
	err := r.Client.do(ctx, http.MethodPatch, TableLeads, q, map[string]string{"status": string(status)}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entity.ErrLeadNotFound
	}
	return rows[0].toEntity(), nil
}

func (r *LeadRepository) list(ctx context.Context, q url.Values) ([]*entity.Lead, error) {
	var rows []leadRow
	if err := r.Client.do(ctx, http.MethodGet, TableLeads, q, nil, &rows); err != nil {
		return nil, err
	}

	leads := make([]*entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, row.toEntity())
	}
	return leads, nil
}

type MessageRepository struct {
	Client *Client
}

func NewMessageRepository(c *Client) *MessageRepository {
	return &MessageRepository{Client: c}
}

func (r *MessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	body := []messageInsert{{
		IDLead: msg.LeadID,
		Texto:  msg.Text,
		Tipo:   string(msg.Direction),
	}}

	var rows []messageRow
	if err := r.Client.do(ctx, http.MethodPost, TableMessages, nil, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("supabase não devolveu a mensagem criada")
	}

	*msg = *rows[0].toEntity()
	return nil
}

func (r *MessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id_lead", "eq."+leadID)
	q.Set("order", "horario.asc,id.asc")

	var rows []messageRow
	if err := r.Client.do(ctx, http.MethodGet, TableMessages, q, nil, &rows); err != nil {
		return nil, err
	}

	msgs := make([]*entity.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, row.toEntity())
	}
	return msgs, nil
}
