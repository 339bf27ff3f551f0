package services

import (
	"backorder-service/internal/domain"
	"backorder-service/internal/infra"
)

func CreateMockRecord(itemID uint64, mode domain.BackorderMode, limit, sold int64) *domain.BackorderRecord {
	rec := domain.DefaultRecord(itemID)
	rec.Mode = mode
	rec.Limit = limit
	rec.Sold = sold
	rec.ManageStock = mode.Allows()
	if sold > 0 {
		rec.StockStatus = domain.StockOnBackorder
	}
	return rec
}

func CreateMockItem(id uint64, name, itemType string, parentID uint64) *infra.ItemInfo {
	return &infra.ItemInfo{
		ID:       id,
		Name:     name,
		Type:     itemType,
		ParentID: parentID,
	}
}

const (
	TestItemID   = uint64(42)
	TestParentID = uint64(7)
	TestLimit    = int64(10)
	TestItemName = "Test Item"
	TestOrderNo  = "ORD-1001"
	TestItemType = "simple"
)
