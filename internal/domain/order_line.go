package domain

// OrderLine is one line item of a completed order as delivered by the
// order-management system. VariationID is zero when the line references a
// standalone product.
type OrderLine struct {
	ProductID   uint64 `json:"productId"`
	VariationID uint64 `json:"variationId"`
	Quantity    int64  `json:"quantity"`
}

// TargetID resolves the sellable item the line is accounted against: the
// variation when one is set, the product otherwise.
func (l OrderLine) TargetID() uint64 {
	if l.VariationID != 0 {
		return l.VariationID
	}
	return l.ProductID
}
