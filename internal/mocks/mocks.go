package mocks

import (
	"context"

	"backorder-service/internal/domain"
	"backorder-service/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockRecordStore struct {
	mock.Mock
}

type MockCatalogClient struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

func (m *MockCatalogClient) GetItemById(ctx context.Context, id uint64) (*infra.ItemInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.ItemInfo), args.Error(1)
}

func (m *MockCatalogClient) ListVariationIds(ctx context.Context, parentID uint64) ([]uint64, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockRecordStore) Get(itemID uint64) (*domain.BackorderRecord, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackorderRecord), args.Error(1)
}

func (m *MockRecordStore) Put(record *domain.BackorderRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockRecordStore) AddSold(itemID uint64, quantity int64) (int64, error) {
	args := m.Called(itemID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordStore) List() ([]domain.BackorderRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BackorderRecord), args.Error(1)
}
