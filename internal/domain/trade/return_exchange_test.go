package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/backend/internal/domain/shared"
)

func TestNewReturnExchange_Validation(t *testing.T) {
	_, err := NewReturnExchange(uuid.Nil, TypeReturn, "hàng lỗi", "")
	assert.Error(t, err)

	_, err = NewReturnExchange(uuid.New(), ReturnExchangeType("refund"), "hàng lỗi", "")
	assert.Error(t, err)

	_, err = NewReturnExchange(uuid.New(), TypeReturn, "  ", "")
	assert.Error(t, err)

	re, err := NewReturnExchange(uuid.New(), TypeReturn, "hàng lỗi", "")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, re.Status)
}

func TestReturnExchange_AddItem_ReturnRejectsNewProduct(t *testing.T) {
	re, _ := NewReturnExchange(uuid.New(), TypeReturn, "hàng lỗi", "")
	newProduct := uuid.New()

	err := re.AddItem(uuid.New(), uuid.New(), 1, &newProduct)
	assert.Error(t, err)

	assert.NoError(t, re.AddItem(uuid.New(), uuid.New(), 1, nil))
}

func TestReturnExchange_AddItem_ExchangeRequiresNewProduct(t *testing.T) {
	re, _ := NewReturnExchange(uuid.New(), TypeExchange, "đổi size", "")

	err := re.AddItem(uuid.New(), uuid.New(), 1, nil)
	assert.Error(t, err)

	nilID := uuid.Nil
	err = re.AddItem(uuid.New(), uuid.New(), 1, &nilID)
	assert.Error(t, err)

	newProduct := uuid.New()
	assert.NoError(t, re.AddItem(uuid.New(), uuid.New(), 1, &newProduct))
}

func TestReturnExchange_AddItem_InvalidQuantity(t *testing.T) {
	re, _ := NewReturnExchange(uuid.New(), TypeReturn, "hàng lỗi", "")
	assert.ErrorIs(t, re.AddItem(uuid.New(), uuid.New(), 0, nil), shared.ErrInvalidQuantity)
	assert.ErrorIs(t, re.AddItem(uuid.New(), uuid.New(), -2, nil), shared.ErrInvalidQuantity)
}

func TestReturnExchange_Complete(t *testing.T) {
	re, _ := NewReturnExchange(uuid.New(), TypeReturn, "hàng lỗi", "")

	// no items yet
	assert.Error(t, re.Complete())

	require.NoError(t, re.AddItem(uuid.New(), uuid.New(), 1, nil))
	require.NoError(t, re.Complete())
	assert.Equal(t, StatusCompleted, re.Status)

	assert.ErrorIs(t, re.Complete(), shared.ErrInvalidState)
}
