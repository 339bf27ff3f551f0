package domain

import "time"

type BackorderMode string

const (
	ModeDisabled      BackorderMode = "disabled"
	ModeAllowed       BackorderMode = "allowed"
	ModeAllowedNotify BackorderMode = "allowed_notify"
)

// Valid reports whether m is one of the three known modes.
func (m BackorderMode) Valid() bool {
	switch m {
	case ModeDisabled, ModeAllowed, ModeAllowedNotify:
		return true
	}
	return false
}

// Allows reports whether backorders are accepted under this mode.
// ModeAllowedNotify only differs from ModeAllowed in customer messaging.
func (m BackorderMode) Allows() bool {
	return m == ModeAllowed || m == ModeAllowedNotify
}

type StockStatus string

const (
	StockInStock     StockStatus = "in_stock"
	StockOnBackorder StockStatus = "on_backorder"
)

// BackorderRecord is the per-item ledger row. The item id covers both
// standalone products and individual variations; a variation's record is
// fully independent of its parent's (no roll-up).
type BackorderRecord struct {
	ItemID      uint64        `json:"itemId" gorm:"primaryKey;autoIncrement:false"`
	Mode        BackorderMode `json:"mode" gorm:"type:varchar(16);not null;default:'disabled'"`
	Limit       int64         `json:"limit" gorm:"not null;default:0"` // 0 = unlimited
	Sold        int64         `json:"sold" gorm:"not null;default:0"`
	StockStatus StockStatus   `json:"stockStatus" gorm:"type:varchar(16);not null;default:'in_stock'"`
	ManageStock bool          `json:"manageStock" gorm:"not null;default:false"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (BackorderRecord) TableName() string { return "backorder_records" }

// DefaultRecord is the implicit state of an item that has never been
// configured: backorders off, no limit, nothing sold.
func DefaultRecord(itemID uint64) *BackorderRecord {
	return &BackorderRecord{
		ItemID:      itemID,
		Mode:        ModeDisabled,
		StockStatus: StockInStock,
	}
}

// FulfillmentResult reports the outcome of one fulfillment application.
// LimitExceeded is informational; the ledger never blocks a fulfillment.
type FulfillmentResult struct {
	ItemID        uint64 `json:"itemId"`
	NewSold       int64  `json:"newSold"`
	Limit         int64  `json:"limit"`
	LimitExceeded bool   `json:"limitExceeded"`
}

// ValidationResult is advisory: Allowed is always true, the limit is soft.
// An empty Warning means the requested quantity fits under the limit.
type ValidationResult struct {
	Allowed bool   `json:"allowed"`
	Warning string `json:"warning,omitempty"`
}

// ProgressView backs the "12/50 sold on backorder" storefront display.
// Show=false tells the renderer to suppress the text (no limit configured).
type ProgressView struct {
	ItemID uint64        `json:"itemId"`
	Mode   BackorderMode `json:"mode"`
	Sold   int64         `json:"sold"`
	Limit  int64         `json:"limit"`
	Show   bool          `json:"show"`
}

// View derives the storefront progress projection from a record.
func (r *BackorderRecord) View() ProgressView {
	return ProgressView{
		ItemID: r.ItemID,
		Mode:   r.Mode,
		Sold:   r.Sold,
		Limit:  r.Limit,
		Show:   r.Limit > 0,
	}
}
