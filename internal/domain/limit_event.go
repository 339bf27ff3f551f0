package domain

import "time"

// LimitExceededEvent is published to the operator alert channel when a
// fulfillment pushes an item's sold counter past its configured limit.
type LimitExceededEvent struct {
	ItemID     uint64    `json:"itemId"`
	Sold       int64     `json:"sold"`
	Limit      int64     `json:"limit"`
	OccurredAt time.Time `json:"occurredAt"`
}
