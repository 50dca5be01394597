package parcel_test

import (
	"testing"

	"donedelivery/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransition(t *testing.T) {
	t.Run("should allow the canonical forward moves for drivers", func(t *testing.T) {
		cases := []struct {
			from, to parcel.Status
			payment  parcel.PaymentStatus
		}{
			{parcel.Pending, parcel.PickedUp, parcel.PaymentCompleted},
			{parcel.PickedUp, parcel.InTransit, parcel.PaymentUnpaid},
			{parcel.InTransit, parcel.Delivered, parcel.PaymentUnpaid},
		}

		for _, tc := range cases {
			err := parcel.AllowedTransition(tc.from, tc.to, parcel.RoleDriver, tc.payment)
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		}
	})

	t.Run("should reject every pair absent from the table", func(t *testing.T) {
		statuses := []parcel.Status{parcel.Pending, parcel.PickedUp, parcel.InTransit, parcel.Delivered}
		allowed := map[parcel.Status]parcel.Status{
			parcel.Pending:   parcel.PickedUp,
			parcel.PickedUp:  parcel.InTransit,
			parcel.InTransit: parcel.Delivered,
		}

		for _, from := range statuses {
			for _, to := range statuses {
				if allowed[from] == to || from == to {
					continue
				}
				err := parcel.AllowedTransition(from, to, parcel.RoleDriver, parcel.PaymentCompleted)
				require.ErrorIs(t, err, parcel.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	})

	t.Run("should reject non-driver roles on legal pairs", func(t *testing.T) {
		for _, role := range []parcel.Role{parcel.RoleCustomer, parcel.RoleSystem} {
			err := parcel.AllowedTransition(parcel.PickedUp, parcel.InTransit, role, parcel.PaymentCompleted)

			require.ErrorIs(t, err, parcel.ErrInvalidTransition)
			assert.Contains(t, err.Error(), "only a driver may perform this transition")
		}
	})

	t.Run("should gate pickup on completed payment", func(t *testing.T) {
		for _, payment := range []parcel.PaymentStatus{
			parcel.PaymentUnpaid, parcel.PaymentPending, parcel.PaymentCancelled, parcel.PaymentRefunded,
		} {
			err := parcel.AllowedTransition(parcel.Pending, parcel.PickedUp, parcel.RoleDriver, payment)

			require.ErrorIs(t, err, parcel.ErrInvalidTransition, payment.String())
			assert.Contains(t, err.Error(), "payment must be completed")
		}
	})

	t.Run("should reject invalid statuses before consulting the table", func(t *testing.T) {
		err := parcel.AllowedTransition(parcel.StatusUnknown, parcel.PickedUp, parcel.RoleDriver, parcel.PaymentCompleted)
		require.Error(t, err)
		assert.NotErrorIs(t, err, parcel.ErrInvalidTransition)

		err = parcel.AllowedTransition(parcel.Pending, parcel.Status(42), parcel.RoleDriver, parcel.PaymentCompleted)
		require.Error(t, err)
	})
}

func TestInvalidTransitionError_Error(t *testing.T) {
	t.Run("should name the attempted pair", func(t *testing.T) {
		err := &parcel.InvalidTransitionError{From: parcel.Pending, To: parcel.Delivered}

		assert.Equal(t, "invalid status transition: pending -> delivered", err.Error())
	})

	t.Run("should include the failed rule when present", func(t *testing.T) {
		err := &parcel.InvalidTransitionError{
			From:   parcel.Pending,
			To:     parcel.PickedUp,
			Reason: "payment must be completed, got unpaid",
		}

		assert.Equal(t,
			"invalid status transition: pending -> picked-up (payment must be completed, got unpaid)",
			err.Error())
	})
}
