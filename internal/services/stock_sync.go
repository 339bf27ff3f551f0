package services

import (
	"context"
	"fmt"
	"log"

	"backorder-service/internal/domain"
	"backorder-service/internal/infra"
	"backorder-service/internal/repository"
)

// StockSyncService copies a variable product's manage-stock flag onto each
// of its child variations. A side-effect relationship between records, not
// part of the accounting rules.
type StockSyncService struct {
	store   repository.RecordStore
	catalog infra.CatalogClientInterface
}

func NewStockSyncService(store repository.RecordStore, catalog infra.CatalogClientInterface) *StockSyncService {
	return &StockSyncService{store: store, catalog: catalog}
}

// SyncManageStock pushes the parent's manage-stock flag to every child
// variation, continuing past individual failures. Returns the ids that
// were updated.
func (s *StockSyncService) SyncManageStock(ctx context.Context, parentID uint64) ([]uint64, error) {
	parentItem, err := s.catalog.GetItemById(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parentItem == nil {
		return nil, fmt.Errorf("item %d: %w", parentID, domain.ErrItemNotFound)
	}

	variationIDs, err := s.catalog.ListVariationIds(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(variationIDs) == 0 {
		return nil, nil
	}

	parent, err := s.store.Get(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		parent = domain.DefaultRecord(parentID)
	}

	synced := make([]uint64, 0, len(variationIDs))
	for _, id := range variationIDs {
		rec, err := s.store.Get(id)
		if err != nil {
			log.Printf("stock sync: get variation %d: %v", id, err)
			continue
		}
		if rec == nil {
			rec = domain.DefaultRecord(id)
		}
		rec.ManageStock = parent.ManageStock
		if err := s.store.Put(rec); err != nil {
			log.Printf("stock sync: put variation %d: %v", id, err)
			continue
		}
		synced = append(synced, id)
	}
	return synced, nil
}
