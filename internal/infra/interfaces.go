package infra

import "context"

type CatalogClientInterface interface {
	GetItemById(ctx context.Context, id uint64) (*ItemInfo, error)
	ListVariationIds(ctx context.Context, parentID uint64) ([]uint64, error)
}

var _ CatalogClientInterface = (*CatalogClient)(nil)
