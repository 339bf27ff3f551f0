package repository

import (
	"backorder-service/internal/domain"
)

// RecordStore is the persistence port for backorder records. Get returns
// (nil, nil) for an item that has never been configured; callers fall back
// to domain.DefaultRecord.
type RecordStore interface {
	Get(itemID uint64) (*domain.BackorderRecord, error)
	Put(record *domain.BackorderRecord) error
	// AddSold increments the sold counter and marks the item on backorder,
	// serialized per item so concurrent fulfillments cannot lose updates.
	// Returns the counter value after the increment.
	AddSold(itemID uint64, quantity int64) (int64, error)
	List() ([]domain.BackorderRecord, error)
}
