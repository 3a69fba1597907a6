package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/hajabot/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	query := `
		INSERT INTO mensagens (id_lead, texto, tipo)
		VALUES ($1::uuid, $2, $3)
		RETURNING id::text, horario
	`
	err := r.DB.QueryRowContext(ctx, query, msg.LeadID, msg.Text, string(msg.Direction)).
		Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return fmt.Errorf("erro ao salvar mensagem: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	query := `
		SELECT id::text, id_lead::text, texto, tipo, horario
		FROM mensagens
		WHERE id_lead::text = $1
		ORDER BY horario ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar mensagens: %w", err)
	}
	defer rows.Close()

	var msgs []*entity.Message
	for rows.Next() {
		m := &entity.Message{}
		if err := rows.Scan(&m.ID, &m.LeadID, &m.Text, &m.Direction, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("erro ao escanear mensagem: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
