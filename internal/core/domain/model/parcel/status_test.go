package parcel_test

import (
	"testing"

	"donedelivery/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid statuses", func(t *testing.T) {
		cases := map[string]parcel.Status{
			"pending":    parcel.Pending,
			"picked-up":  parcel.PickedUp,
			"in-transit": parcel.InTransit,
			"delivered":  parcel.Delivered,
		}

		for s, want := range cases {
			got, err := parcel.StatusFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "Pending", "shipped"} {
			_, err := parcel.StatusFromString(s)
			require.Error(t, err, s)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", parcel.Pending.String())
	assert.Equal(t, "picked-up", parcel.PickedUp.String())
	assert.Equal(t, "in-transit", parcel.InTransit.String())
	assert.Equal(t, "delivered", parcel.Delivered.String())
	assert.Equal(t, "unknown", parcel.StatusUnknown.String())
	assert.Equal(t, "unknown", parcel.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []parcel.Status{parcel.Pending, parcel.PickedUp, parcel.InTransit, parcel.Delivered} {
		assert.NoError(t, s.Validate(), s.String())
	}

	assert.Error(t, parcel.StatusUnknown.Validate())
	assert.Error(t, parcel.Status(42).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.False(t, parcel.Pending.IsTerminal())
	assert.False(t, parcel.InTransit.IsTerminal())
}

func TestStatus_IsReached(t *testing.T) {
	t.Run("should be reached at or before the current status", func(t *testing.T) {
		assert.True(t, parcel.Pending.IsReached(parcel.InTransit))
		assert.True(t, parcel.PickedUp.IsReached(parcel.PickedUp))
		assert.True(t, parcel.Delivered.IsReached(parcel.Delivered))
	})

	t.Run("should not be reached past the current status", func(t *testing.T) {
		assert.False(t, parcel.Delivered.IsReached(parcel.InTransit))
		assert.False(t, parcel.InTransit.IsReached(parcel.Pending))
	})

	t.Run("should never be reached for unknown statuses", func(t *testing.T) {
		assert.False(t, parcel.StatusUnknown.IsReached(parcel.Delivered))
		assert.False(t, parcel.Pending.IsReached(parcel.StatusUnknown))
	})
}
