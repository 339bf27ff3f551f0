package services

import (
	"context"
	"errors"
	"testing"

	"backorder-service/internal/domain"
	"backorder-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStockSyncService_SyncManageStock(t *testing.T) {
	t.Run("copies the parent flag to every variation", func(t *testing.T) {
		store := new(mocks.MockRecordStore)
		catalog := new(mocks.MockCatalogClient)

		catalog.On("GetItemById", mock.Anything, TestParentID).Return(CreateMockItem(TestParentID, TestItemName, "variable", 0), nil)
		catalog.On("ListVariationIds", mock.Anything, TestParentID).Return([]uint64{101, 102}, nil)

		store.On("Get", TestParentID).Return(CreateMockRecord(TestParentID, domain.ModeAllowed, 10, 0), nil)
		store.On("Get", uint64(101)).Return(CreateMockRecord(101, domain.ModeDisabled, 0, 0), nil)
		store.On("Get", uint64(102)).Return(nil, nil)

		var saved []*domain.BackorderRecord
		store.On("Put", mock.AnythingOfType("*domain.BackorderRecord")).Return(nil).Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(0).(*domain.BackorderRecord))
		})

		svc := NewStockSyncService(store, catalog)
		synced, err := svc.SyncManageStock(context.Background(), TestParentID)

		assert.NoError(t, err)
		assert.Equal(t, []uint64{101, 102}, synced)
		assert.Len(t, saved, 2)
		for _, rec := range saved {
			assert.True(t, rec.ManageStock)
		}

		store.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("continues past a failing variation", func(t *testing.T) {
		store := new(mocks.MockRecordStore)
		catalog := new(mocks.MockCatalogClient)

		catalog.On("GetItemById", mock.Anything, TestParentID).Return(CreateMockItem(TestParentID, TestItemName, "variable", 0), nil)
		catalog.On("ListVariationIds", mock.Anything, TestParentID).Return([]uint64{101, 102}, nil)

		store.On("Get", TestParentID).Return(CreateMockRecord(TestParentID, domain.ModeDisabled, 0, 0), nil)
		store.On("Get", uint64(101)).Return(nil, errors.New("db error"))
		store.On("Get", uint64(102)).Return(nil, nil)
		store.On("Put", mock.AnythingOfType("*domain.BackorderRecord")).Return(nil)

		svc := NewStockSyncService(store, catalog)
		synced, err := svc.SyncManageStock(context.Background(), TestParentID)

		assert.NoError(t, err)
		assert.Equal(t, []uint64{102}, synced)

		store.AssertExpectations(t)
	})

	t.Run("unknown parent", func(t *testing.T) {
		store := new(mocks.MockRecordStore)
		catalog := new(mocks.MockCatalogClient)

		catalog.On("GetItemById", mock.Anything, uint64(999)).Return(nil, nil)

		svc := NewStockSyncService(store, catalog)
		_, err := svc.SyncManageStock(context.Background(), uint64(999))

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
		store.AssertNotCalled(t, "Put", mock.Anything)
	})

	t.Run("product without variations is a no-op", func(t *testing.T) {
		store := new(mocks.MockRecordStore)
		catalog := new(mocks.MockCatalogClient)

		catalog.On("GetItemById", mock.Anything, TestItemID).Return(CreateMockItem(TestItemID, TestItemName, TestItemType, 0), nil)
		catalog.On("ListVariationIds", mock.Anything, TestItemID).Return([]uint64{}, nil)

		svc := NewStockSyncService(store, catalog)
		synced, err := svc.SyncManageStock(context.Background(), TestItemID)

		assert.NoError(t, err)
		assert.Empty(t, synced)
		store.AssertNotCalled(t, "Get", mock.Anything)
	})
}
