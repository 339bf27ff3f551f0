package http

// PolicyUpdate is one admin edit: which item, which mode, which limit.
// Validation happens per item in the service so one bad row cannot reject
// the rest of the batch.
type PolicyUpdate struct {
	ItemID uint64 `json:"itemId"`
	Mode   string `json:"mode"`
	Limit  int64  `json:"limit"`
}

type SetPoliciesRequest struct {
	Policies []PolicyUpdate `json:"policies" binding:"required"`
}

type PolicyUpdateResult struct {
	ItemID uint64 `json:"itemId"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

type OrderLineRequest struct {
	ProductID   uint64 `json:"productId" binding:"required"`
	VariationID uint64 `json:"variationId"`
	Quantity    int64  `json:"quantity"`
}

type OrderCompletedRequest struct {
	OrderNo string             `json:"orderNo" binding:"required"`
	Items   []OrderLineRequest `json:"items" binding:"required"`
}

type CartValidateRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required"`
}
