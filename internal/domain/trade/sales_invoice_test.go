package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

func newSalesInvoiceWithItem(t *testing.T, quantity int, unitPrice float64) *SalesInvoice {
	t.Helper()
	inv, err := NewSalesInvoice("HD20250115-001", time.Now(), "")
	require.NoError(t, err)
	require.NoError(t, inv.AddItem(uuid.New(), "40", quantity, valueobject.NewMoneyVNDFromFloat(unitPrice)))
	return inv
}

func TestSalesInvoice_AddItem_RecalculatesRevenue(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)
	require.NoError(t, inv.AddItem(uuid.New(), "41", 1, valueobject.NewMoneyVNDFromFloat(150)))

	assert.True(t, inv.TotalRevenue.Equals(valueobject.NewMoneyVNDFromFloat(350)))
}

func TestSalesInvoice_Item(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)

	got, err := inv.Item(inv.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Items[0].ID, got.ID)

	_, err = inv.Item(uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesInvoiceItem_Shrink(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 5, 100)
	item := &inv.Items[0]

	require.NoError(t, item.Shrink(2))
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.TotalPrice.Equals(valueobject.NewMoneyVNDFromFloat(300)))

	// shrink to zero keeps the row
	require.NoError(t, item.Shrink(3))
	assert.Equal(t, 0, item.Quantity)
	assert.True(t, item.TotalPrice.IsZero())
}

func TestSalesInvoiceItem_Shrink_Invalid(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)
	item := &inv.Items[0]

	assert.ErrorIs(t, item.Shrink(3), shared.ErrInvalidQuantity)
	assert.ErrorIs(t, item.Shrink(0), shared.ErrInvalidQuantity)
	assert.Equal(t, 2, item.Quantity)
}

func TestSalesInvoiceItem_Rewrite(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)
	item := &inv.Items[0]
	newProduct := uuid.New()

	item.Rewrite(newProduct, "42", valueobject.NewMoneyVNDFromFloat(150))
	assert.Equal(t, newProduct, item.ProductID)
	assert.Equal(t, "42", item.SizeEU)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.TotalPrice.Equals(valueobject.NewMoneyVNDFromFloat(300)))
}

func TestSalesInvoice_ActiveItems_HidesZeroedRows(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)
	require.NoError(t, inv.AddItem(uuid.New(), "41", 1, valueobject.NewMoneyVNDFromFloat(200)))

	require.NoError(t, inv.Items[0].Shrink(2))
	active := inv.ActiveItems()
	require.Len(t, active, 1)
	assert.Equal(t, "41", active[0].SizeEU)
	assert.Len(t, inv.Items, 2)
}

func TestSalesInvoice_ApplyRevenueDelta(t *testing.T) {
	inv := newSalesInvoiceWithItem(t, 2, 100)

	require.NoError(t, inv.ApplyRevenueDelta(valueobject.NewMoneyVNDFromFloat(100)))
	assert.True(t, inv.TotalRevenue.Equals(valueobject.NewMoneyVNDFromFloat(300)))

	require.NoError(t, inv.ApplyRevenueDelta(valueobject.NewMoneyVNDFromFloat(-250)))
	assert.True(t, inv.TotalRevenue.Equals(valueobject.NewMoneyVNDFromFloat(50)))
}
