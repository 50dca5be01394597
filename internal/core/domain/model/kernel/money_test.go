package kernel_test

import (
	"math"
	"testing"

	"donedelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from cents", func(t *testing.T) {
		m, err := kernel.NewMoney(40000, "ZAR")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, int64(40000), m.Cents())
		assert.InDelta(t, 400.0, m.Amount(), 0.001)
		assert.Equal(t, "ZAR", m.Currency())
	})

	t.Run("should default empty currency", func(t *testing.T) {
		m, err := kernel.NewMoney(100, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, m.Currency())
	})

	t.Run("should reject negative cents", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "ZAR")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "-1 is negative")
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})
}

func TestNewMoneyFromAmount(t *testing.T) {
	t.Run("should round to two decimal places", func(t *testing.T) {
		m, err := kernel.NewMoneyFromAmount(399.999, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, int64(40000), m.Cents())
	})

	t.Run("should handle exact amounts", func(t *testing.T) {
		m, err := kernel.NewMoneyFromAmount(800.0, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, int64(80000), m.Cents())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromAmount(-5, "ZAR")

		require.Error(t, err)
	})

	t.Run("should reject non-finite amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromAmount(math.NaN(), "ZAR")
		require.Error(t, err)

		_, err = kernel.NewMoneyFromAmount(math.Inf(1), "ZAR")
		require.Error(t, err)
	})
}

func TestMoney_String(t *testing.T) {
	t.Run("should render ZAR with rand prefix", func(t *testing.T) {
		m, err := kernel.NewMoney(40000, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, "R400.00", m.String())
	})

	t.Run("should pad cents", func(t *testing.T) {
		m, err := kernel.NewMoney(80005, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, "R800.05", m.String())
	})

	t.Run("should render other currencies with code prefix", func(t *testing.T) {
		m, err := kernel.NewMoney(1250, "USD")

		require.NoError(t, err)
		assert.Equal(t, "USD 12.50", m.String())
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, err := kernel.NewMoney(500, "ZAR")
	require.NoError(t, err)
	b, err := kernel.NewMoney(500, "ZAR")
	require.NoError(t, err)
	c, err := kernel.NewMoney(500, "USD")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should reject zero value", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Money must be created")
	})
}
