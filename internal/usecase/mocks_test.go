package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
	"github.com/xavierca1/hajabot/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByPhone(ctx context.Context, phone string) ([]*entity.Lead, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

type MockMessagingGateway struct {
	mock.Mock
}

func (m *MockMessagingGateway) SendText(ctx context.Context, phone, message string) (*zapi.SendTextResponse, error) {
	args := m.Called(ctx, phone, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zapi.SendTextResponse), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// assignLeadID simula o store preenchendo a identidade no insert.
func assignLeadID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = id
	}
}

func messageWith(leadID string, dir entity.Direction) interface{} {
	return mock.MatchedBy(func(m *entity.Message) bool {
		return m.LeadID == leadID && m.Direction == dir
	})
}
