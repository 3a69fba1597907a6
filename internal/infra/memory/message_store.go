package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/hajabot/internal/entity"
)

type messageRow struct {
	msg entity.Message
	seq int
}

type MessageStore struct {
	mu     sync.RWMutex
	byLead map[string][]*messageRow
	seq    int
	now    func() time.Time
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		byLead: make(map[string][]*messageRow),
		now:    time.Now,
	}
}

func (s *MessageStore) Create(ctx context.Context, msg *entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	msg.ID = uuid.New().String()
	msg.Timestamp = s.now()
	s.byLead[msg.LeadID] = append(s.byLead[msg.LeadID], &messageRow{msg: *msg, seq: s.seq})
	return nil
}

// ListByLead devolve o histórico em ordem cronológica; empates ficam na ordem de inserção.
func (s *MessageStore) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := append([]*messageRow(nil), s.byLead[leadID]...)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].msg.Timestamp.Equal(rows[j].msg.Timestamp) {
			return rows[i].msg.Timestamp.Before(rows[j].msg.Timestamp)
		}
		return rows[i].seq < rows[j].seq
	})

	out := make([]*entity.Message, 0, len(rows))
	for _, row := range rows {
		m := row.msg
		out = append(out, &m)
	}
	return out, nil
}

// Count devolve o total de mensagens gravadas, de todos os leads.
func (s *MessageStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rows := range s.byLead {
		n += len(rows)
	}
	return n
}
