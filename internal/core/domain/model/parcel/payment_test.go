package parcel_test

import (
	"testing"
	"time"

	"donedelivery/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatusFromString(t *testing.T) {
	t.Run("should parse all valid payment statuses", func(t *testing.T) {
		cases := map[string]parcel.PaymentStatus{
			"unpaid":    parcel.PaymentUnpaid,
			"pending":   parcel.PaymentPending,
			"completed": parcel.PaymentCompleted,
			"cancelled": parcel.PaymentCancelled,
			"refunded":  parcel.PaymentRefunded,
		}

		for s, want := range cases {
			got, err := parcel.PaymentStatusFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "paid"} {
			_, err := parcel.PaymentStatusFromString(s)
			require.Error(t, err, s)
		}
	})
}

func TestPaymentStatus_Validate(t *testing.T) {
	assert.NoError(t, parcel.PaymentUnpaid.Validate())
	assert.NoError(t, parcel.PaymentRefunded.Validate())
	assert.Error(t, parcel.PaymentStatusUnknown.Validate())
	assert.Error(t, parcel.PaymentStatus(42).Validate())
}

func TestNewUnpaidPayment(t *testing.T) {
	p := parcel.NewUnpaidPayment("paystack")

	assert.Equal(t, parcel.PaymentUnpaid, p.Status())
	assert.Equal(t, "paystack", p.Method())
	assert.Empty(t, p.Reference())
	assert.Nil(t, p.PaidAt())
}

func TestRestorePayment(t *testing.T) {
	t.Run("should restore a completed payment", func(t *testing.T) {
		paidAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		p, err := parcel.RestorePayment(parcel.PaymentCompleted, "card", "txn-42", &paidAt)

		require.NoError(t, err)
		assert.Equal(t, parcel.PaymentCompleted, p.Status())
		assert.Equal(t, "txn-42", p.Reference())
		require.NotNil(t, p.PaidAt())
		assert.Equal(t, paidAt, *p.PaidAt())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := parcel.RestorePayment(parcel.PaymentStatusUnknown, "", "", nil)

		require.Error(t, err)
	})
}
