package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/hajabot/internal/entity"
)

func TestMessageRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO mensagens (id_lead, texto, tipo) VALUES ($1::uuid, $2, $3)`)).
		WithArgs("lead-1", "Olá", "enviada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "horario"}).AddRow("31", at))

	msg, err := entity.NewMessage("lead-1", "Olá", entity.DirectionSent)
	require.NoError(t, err)

	require.NoError(t, NewMessageRepository(db).Create(context.Background(), msg))
	assert.Equal(t, "31", msg.ID)
	assert.Equal(t, at, msg.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryListByLeadKeepsThreadOrder(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id_lead::text = $1 ORDER BY horario ASC, id ASC`)).
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "id_lead", "texto", "tipo", "horario"}).
			AddRow("1", "lead-1", "Oi", "recebida", at).
			AddRow("2", "lead-1", "Olá, tudo bem?", "enviada", at).
			AddRow("3", "lead-1", "Quero o plano", "recebida", at.Add(time.Minute)))

	msgs, err := NewMessageRepository(db).ListByLead(context.Background(), "lead-1")

	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID})
	assert.Equal(t, entity.DirectionSent, msgs[1].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryListByLeadScanError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM mensagens`)).
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "id_lead", "texto", "tipo", "horario"}).
			AddRow("1", "lead-1", "Oi", "recebida", "not-a-time"))

	_, err := NewMessageRepository(db).ListByLead(context.Background(), "lead-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao escanear mensagem")
}
