package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/xavierca1/hajabot/internal/entity"
)

// LeadResolver encontra o lead de um telefone. Com duplicados, vence o mais recente.
type LeadResolver struct {
	Repo LeadRepository
}

func NewLeadResolver(repo LeadRepository) *LeadResolver {
	return &LeadResolver{Repo: repo}
}

func (r *LeadResolver) Resolve(ctx context.Context, phone string) (*entity.Lead, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, entity.ErrLeadNotFound
	}

	leads, err := r.Repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lead por telefone: %w", err)
	}
	if len(leads) == 0 {
		return nil, entity.ErrLeadNotFound
	}

	latest := leads[0]
	for _, l := range leads[1:] {
		if l.CreatedAt.After(latest.CreatedAt) {
			latest = l
		}
	}
	return latest, nil
}
