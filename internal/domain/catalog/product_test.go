package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Giày Nike Air Force 1", valueobject.NewMoneyVNDFromFloat(2500000), nil)
	require.NoError(t, err)
	assert.Equal(t, "Giày Nike Air Force 1", p.Name)
	assert.Equal(t, 0, p.StockQuantity)
	assert.NotEqual(t, "", p.ID.String())
}

func TestNewProduct_EmptyName(t *testing.T) {
	_, err := NewProduct("  ", valueobject.NewMoneyVNDFromFloat(100000), nil)
	assert.Error(t, err)
}

func TestNewProduct_NegativePrice(t *testing.T) {
	_, err := NewProduct("Giày", valueobject.NewMoneyVNDFromFloat(-1), nil)
	assert.Error(t, err)
}

func TestProduct_EffectivePrice(t *testing.T) {
	p, err := NewProduct("Giày", valueobject.NewMoneyVNDFromFloat(2000000), nil)
	require.NoError(t, err)
	assert.True(t, p.EffectivePrice().Equals(p.Price))

	discounted := valueobject.NewMoneyVNDFromFloat(1500000)
	p.DiscountPrice = &discounted
	assert.True(t, p.EffectivePrice().Equals(discounted))
}

func TestProduct_CanFulfill(t *testing.T) {
	p, _ := NewProduct("Giày", valueobject.NewMoneyVNDFromFloat(100000), nil)
	p.StockQuantity = 5

	assert.True(t, p.CanFulfill(5))
	assert.True(t, p.CanFulfill(1))
	assert.False(t, p.CanFulfill(6))
	assert.False(t, p.CanFulfill(0))
	assert.False(t, p.CanFulfill(-1))
}

func TestParseSizeList(t *testing.T) {
	assert.Equal(t, []string{"40", "41", "42"}, ParseSizeList("40, 41, 42"))
	assert.Equal(t, []string{"40"}, ParseSizeList("40"))
	assert.Nil(t, ParseSizeList("  "))
	assert.Equal(t, []string{"40", "41"}, ParseSizeList("40,,41, "))
}

func TestJoinSizeList(t *testing.T) {
	assert.Equal(t, "40, 41", JoinSizeList([]string{"41", "40"}))
	assert.Equal(t, "40, 41", JoinSizeList([]string{"40", "41", "40"}))
	assert.Equal(t, "9, 40", JoinSizeList([]string{"40", "9"}))
	assert.Equal(t, "", JoinSizeList(nil))
}

func TestProduct_MergeSizes(t *testing.T) {
	p, _ := NewProduct("Giày", valueobject.NewMoneyVNDFromFloat(100000), nil)
	p.SetSizes([]string{"41", "40"})
	assert.Equal(t, "40, 41", p.Size)

	p.MergeSizes([]string{"42", "40"})
	assert.Equal(t, "40, 41, 42", p.Size)
	assert.Equal(t, []string{"40", "41", "42"}, p.Sizes())
}
