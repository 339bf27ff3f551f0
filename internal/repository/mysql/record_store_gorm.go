package mysql

import (
	"errors"
	"log"

	"backorder-service/internal/domain"
	"backorder-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) repository.RecordStore {
	return &recordStore{db: db}
}

func (s *recordStore) Get(itemID uint64) (*domain.BackorderRecord, error) {
	var rec domain.BackorderRecord
	if err := s.db.First(&rec, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("record store: get %d: %v", itemID, err)
		return nil, err
	}
	return &rec, nil
}

func (s *recordStore) Put(record *domain.BackorderRecord) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mode", "limit", "sold", "stock_status", "manage_stock", "updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		log.Printf("record store: put %d: %v", record.ItemID, err)
	}
	return err
}

// AddSold runs the read-modify-write under a row lock so two orders
// completing at once for the same item both land in the counter.
func (s *recordStore) AddSold(itemID uint64, quantity int64) (int64, error) {
	var newSold int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rec domain.BackorderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "item_id = ?", itemID).Error; err != nil {
			return err
		}
		rec.Sold += quantity
		rec.StockStatus = domain.StockOnBackorder
		if err := tx.Model(&domain.BackorderRecord{}).
			Where("item_id = ?", itemID).
			Updates(map[string]any{
				"sold":         rec.Sold,
				"stock_status": rec.StockStatus,
			}).Error; err != nil {
			return err
		}
		newSold = rec.Sold
		return nil
	})
	if err != nil {
		log.Printf("record store: add sold %d: %v", itemID, err)
		return 0, err
	}
	return newSold, nil
}

func (s *recordStore) List() ([]domain.BackorderRecord, error) {
	var out []domain.BackorderRecord
	if err := s.db.Order("item_id ASC").Find(&out).Error; err != nil {
		log.Printf("record store: list: %v", err)
		return nil, err
	}
	return out, nil
}
