package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Add(t *testing.T) {
	a := NewMoneyVNDFromFloat(150000)
	b := NewMoneyVNDFromFloat(50000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(200000)))
	assert.Equal(t, VND, sum.Currency())
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a := NewMoneyVNDFromFloat(100)
	b, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyVNDFromFloat(100000)
	b := NewMoneyVNDFromFloat(120000)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(-20000)))
}

func TestMoney_MultiplyByInt(t *testing.T) {
	price := NewMoneyVNDFromFloat(150000)

	total := price.MultiplyByInt(3)
	assert.True(t, total.Amount().Equal(decimal.NewFromInt(450000)))
}

func TestMoney_Negate(t *testing.T) {
	m := NewMoneyVNDFromFloat(25000)
	assert.True(t, m.Negate().IsNegative())
	assert.True(t, m.Negate().Negate().Equals(m))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyVNDFromFloat(199000)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m.Equals(got))
}

func TestMoney_UnmarshalJSON_DefaultsCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"99000"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("120000"))
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
