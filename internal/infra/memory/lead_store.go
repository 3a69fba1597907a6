package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/hajabot/internal/entity"
)

type leadRow struct {
	lead entity.Lead
	seq  int
}

// LeadStore guarda leads em memória; útil para rodar local e nos testes de handler.
type LeadStore struct {
	mu   sync.RWMutex
	rows map[string]*leadRow
	seq  int
	now  func() time.Time
}

func NewLeadStore() *LeadStore {
	return &LeadStore{
		rows: make(map[string]*leadRow),
		now:  time.Now,
	}
}

func (s *LeadStore) Create(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	lead.ID = uuid.New().String()
	lead.CreatedAt = s.now()
	if lead.Status == "" {
		lead.Status = entity.LeadStatusNew
	}
	s.rows[lead.ID] = &leadRow{lead: *lead, seq: s.seq}
	return nil
}

func (s *LeadStore) FindByPhone(ctx context.Context, phone string) ([]*entity.Lead, error) {
	return s.collect(func(l *entity.Lead) bool { return l.Phone == phone }), nil
}

func (s *LeadStore) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	return s.collect(filter.Matches), nil
}

func (s *LeadStore) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	row.lead.Status = status
	out := row.lead
	return &out, nil
}

// collect devolve cópias, do mais recente para o mais antigo.
func (s *LeadStore) collect(keep func(*entity.Lead) bool) []*entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*leadRow, 0, len(s.rows))
	for _, row := range s.rows {
		if keep(&row.lead) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].lead.CreatedAt.Equal(rows[j].lead.CreatedAt) {
			return rows[i].lead.CreatedAt.After(rows[j].lead.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]*entity.Lead, 0, len(rows))
	for _, row := range rows {
		l := row.lead
		out = append(out, &l)
	}
	return out
}
