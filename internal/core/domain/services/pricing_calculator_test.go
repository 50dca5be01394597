package services_test

import (
	"testing"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricingCalculator(t *testing.T) {
	t.Run("should create calculator with rate and currency", func(t *testing.T) {
		calculator, err := services.NewPricingCalculator(80, "ZAR")

		require.NoError(t, err)
		assert.InDelta(t, 80.0, calculator.RatePerKm(), 0.001)
		assert.Equal(t, "ZAR", calculator.Currency())
	})

	t.Run("should default empty currency", func(t *testing.T) {
		calculator, err := services.NewPricingCalculator(80, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, calculator.Currency())
	})

	t.Run("should reject negative rate", func(t *testing.T) {
		_, err := services.NewPricingCalculator(-1, "ZAR")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ratePerKm")
	})
}

func TestPricingCalculator_Price(t *testing.T) {
	calculator, err := services.NewPricingCalculator(80, "ZAR")
	require.NoError(t, err)

	t.Run("should quote distance times rate", func(t *testing.T) {
		pricing, err := calculator.Price(10)

		require.NoError(t, err)
		assert.Equal(t, int64(80000), pricing.Total().Cents())
		assert.Equal(t, "R800.00", pricing.Total().String())
		assert.InDelta(t, 10.0, pricing.DistanceKm(), 0.001)
		assert.InDelta(t, 80.0, pricing.RatePerKm(), 0.001)
	})

	t.Run("should round fractional totals to cents", func(t *testing.T) {
		pricing, err := calculator.Price(0.333)

		require.NoError(t, err)
		assert.Equal(t, int64(2664), pricing.Total().Cents())
	})

	t.Run("should quote zero for zero distance", func(t *testing.T) {
		pricing, err := calculator.Price(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), pricing.Total().Cents())
	})

	t.Run("should reject negative distance", func(t *testing.T) {
		_, err := calculator.Price(-5)

		require.Error(t, err)
	})
}
