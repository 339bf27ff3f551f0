package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackorderMode(t *testing.T) {
	assert.True(t, ModeDisabled.Valid())
	assert.True(t, ModeAllowed.Valid())
	assert.True(t, ModeAllowedNotify.Valid())
	assert.False(t, BackorderMode("yes").Valid())
	assert.False(t, BackorderMode("").Valid())

	assert.False(t, ModeDisabled.Allows())
	assert.True(t, ModeAllowed.Allows())
	assert.True(t, ModeAllowedNotify.Allows())
}

func TestBackorderRecord_View(t *testing.T) {
	rec := DefaultRecord(42)
	view := rec.View()
	assert.Equal(t, ProgressView{ItemID: 42, Mode: ModeDisabled}, view)
	assert.False(t, view.Show)

	rec.Mode = ModeAllowed
	rec.Limit = 50
	rec.Sold = 12
	view = rec.View()
	assert.True(t, view.Show)
	assert.Equal(t, int64(12), view.Sold)
	assert.Equal(t, int64(50), view.Limit)
}

func TestOrderLine_TargetID(t *testing.T) {
	assert.Equal(t, uint64(101), OrderLine{ProductID: 1, VariationID: 101}.TargetID())
	assert.Equal(t, uint64(1), OrderLine{ProductID: 1}.TargetID())
}
