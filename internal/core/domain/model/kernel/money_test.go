package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("from_decimal_rounds_to_two_places", func(t *testing.T) {
		m, err := kernel.NewMoneyFromDecimal(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("from_string", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("1000")

		require.NoError(t, err)
		assert.Equal(t, "1000.00", m.String())
	})

	t.Run("invalid_string_fails", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("not-a-number")
		require.Error(t, err)
	})

	t.Run("negative_amount_fails", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-1)
		require.ErrorIs(t, err, kernel.ErrMoneyIsNegative)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("commission_plus_net_reassembles_gross", func(t *testing.T) {
		gross, _ := kernel.NewMoneyFromString("1000")
		rate := decimal.RequireFromString("0.15")

		commission := gross.MulRate(rate)
		net, err := gross.Sub(commission)
		require.NoError(t, err)

		assert.Equal(t, "150.00", commission.String())
		assert.Equal(t, "850.00", net.String())
		assert.True(t, commission.Add(net).IsEqual(gross))
	})

	t.Run("sub_below_zero_fails", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromString("1")
		b, _ := kernel.NewMoneyFromString("2")

		_, err := a.Sub(b)

		require.ErrorIs(t, err, kernel.ErrMoneyIsNegative)
	})

	t.Run("zero_money", func(t *testing.T) {
		assert.True(t, kernel.ZeroMoney().IsZero())
		assert.Equal(t, "0.00", kernel.ZeroMoney().String())
	})
}
