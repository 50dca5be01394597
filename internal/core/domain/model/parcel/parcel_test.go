package parcel_test

import (
	"testing"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func mustParty(t *testing.T, name string) parcel.Party {
	t.Helper()
	party, err := parcel.NewParty(name, "+27821234567", name+"@example.com", "+27821234567", "12 Main Rd, Cape Town")
	require.NoError(t, err)
	return party
}

func mustActor(t *testing.T, role parcel.Role) parcel.Actor {
	t.Helper()
	actor, err := parcel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	pack, err := parcel.NewPackageInfo("Books", 2.5, 150, 10)
	require.NoError(t, err)
	pricing, err := parcel.NewPricing(10, 80, kernel.DefaultCurrency)
	require.NoError(t, err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.GenerateTrackingNumber(testNow),
		mustParty(t, "Alice Sender"),
		mustParty(t, "Bob Receiver"),
		pack,
		pricing,
		mustActor(t, parcel.RoleCustomer),
		testNow,
	)
	require.NoError(t, err)
	return p
}

func payAndPickUp(t *testing.T, p *parcel.Parcel, driver parcel.Actor) {
	t.Helper()
	require.NoError(t, p.RecordPayment(parcel.PaymentCompleted, "", "ref-1", testNow))
	require.NoError(t, p.Transition(parcel.PickedUp, driver, parcel.TransitionOptions{Now: testNow}))
}

func TestNewParcel(t *testing.T) {
	t.Run("should create pending parcel with seeded history", func(t *testing.T) {
		p := newTestParcel(t)

		assert.Equal(t, parcel.Pending, p.Status())
		assert.Equal(t, parcel.PaymentUnpaid, p.Payment().Status())
		assert.Equal(t, parcel.DefaultPaymentMethod, p.Payment().Method())
		assert.Nil(t, p.Driver())
		assert.Nil(t, p.ProofOfDelivery())
		assert.Equal(t, int64(1), p.Version())
		assert.Equal(t, testNow.Add(parcel.ParcelTTL), p.ExpiresAt())

		history := p.History()
		require.Len(t, history, 1)
		assert.Equal(t, parcel.Pending, history[0].Status())
		assert.Equal(t, parcel.RoleCustomer, history[0].UpdatedByRole())
	})

	t.Run("should reject invalid value objects", func(t *testing.T) {
		pack, err := parcel.NewPackageInfo("Books", 2.5, 150, 10)
		require.NoError(t, err)
		pricing, err := parcel.NewPricing(10, 80, kernel.DefaultCurrency)
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.UUID{},
			kernel.TrackingNumber{},
			parcel.Party{},
			parcel.Party{},
			pack,
			pricing,
			parcel.Actor{},
			testNow,
		)

		require.Error(t, err)
	})
}

func TestParcel_Transition(t *testing.T) {
	t.Run("should walk the full delivery workflow", func(t *testing.T) {
		p := newTestParcel(t)
		driver := mustActor(t, parcel.RoleDriver)

		payAndPickUp(t, p, driver)
		assert.Equal(t, parcel.PickedUp, p.Status())
		require.NotNil(t, p.Driver())
		assert.True(t, p.Driver().IsEqual(driver.ID()))

		require.NoError(t, p.Transition(parcel.InTransit, driver, parcel.TransitionOptions{Now: testNow}))
		assert.Equal(t, parcel.InTransit, p.Status())

		proof, err := parcel.NewProofOfDelivery("https://cdn.example.com/pod/1.jpg", testNow, driver.ID())
		require.NoError(t, err)
		require.NoError(t, p.Transition(parcel.Delivered, driver, parcel.TransitionOptions{
			Proof: &proof,
			Now:   testNow,
			Note:  "left at reception",
		}))

		assert.Equal(t, parcel.Delivered, p.Status())
		require.NotNil(t, p.ProofOfDelivery())
		assert.Equal(t, "https://cdn.example.com/pod/1.jpg", p.ProofOfDelivery().ImageURL())

		history := p.History()
		require.Len(t, history, 4)
		assert.Equal(t, parcel.Delivered, history[3].Status())
		assert.Equal(t, "left at reception", history[3].Note())
	})

	t.Run("should reject pickup before payment completes", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.Transition(parcel.PickedUp, mustActor(t, parcel.RoleDriver), parcel.TransitionOptions{Now: testNow})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "payment must be completed, got unpaid")
		assert.Equal(t, parcel.Pending, p.Status())
		assert.Len(t, p.History(), 1)
	})

	t.Run("should reject non-driver actors", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.RecordPayment(parcel.PaymentCompleted, "", "", testNow))

		err := p.Transition(parcel.PickedUp, mustActor(t, parcel.RoleCustomer), parcel.TransitionOptions{Now: testNow})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "only a driver may perform this transition, got customer")
	})

	t.Run("should reject skipping statuses", func(t *testing.T) {
		p := newTestParcel(t)
		driver := mustActor(t, parcel.RoleDriver)
		proof, err := parcel.NewProofOfDelivery("https://cdn.example.com/pod/2.jpg", testNow, driver.ID())
		require.NoError(t, err)

		err = p.Transition(parcel.Delivered, driver, parcel.TransitionOptions{Proof: &proof, Now: testNow})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "invalid status transition: pending -> delivered")
	})

	t.Run("should reject moving backwards", func(t *testing.T) {
		p := newTestParcel(t)
		driver := mustActor(t, parcel.RoleDriver)
		payAndPickUp(t, p, driver)

		err := p.Transition(parcel.Pending, driver, parcel.TransitionOptions{Now: testNow})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	})

	t.Run("should treat same status as idempotent no-op", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.Transition(parcel.Pending, mustActor(t, parcel.RoleCustomer), parcel.TransitionOptions{Now: testNow})

		require.NoError(t, err)
		assert.Len(t, p.History(), 1)
	})

	t.Run("should require proof of delivery before consulting policy", func(t *testing.T) {
		p := newTestParcel(t)
		driver := mustActor(t, parcel.RoleDriver)
		payAndPickUp(t, p, driver)
		require.NoError(t, p.Transition(parcel.InTransit, driver, parcel.TransitionOptions{Now: testNow}))

		err := p.Transition(parcel.Delivered, driver, parcel.TransitionOptions{Now: testNow})

		require.ErrorIs(t, err, parcel.ErrProofOfDeliveryRequired)
		assert.Equal(t, parcel.InTransit, p.Status())
	})

	t.Run("should assign explicit driver over acting driver", func(t *testing.T) {
		p := newTestParcel(t)
		driver := mustActor(t, parcel.RoleDriver)
		assigned := kernel.NewUUID()
		require.NoError(t, p.RecordPayment(parcel.PaymentCompleted, "", "", testNow))

		err := p.Transition(parcel.PickedUp, driver, parcel.TransitionOptions{DriverID: &assigned, Now: testNow})

		require.NoError(t, err)
		require.NotNil(t, p.Driver())
		assert.True(t, p.Driver().IsEqual(assigned))
	})

	t.Run("should reject unconstructed parcel", func(t *testing.T) {
		var p parcel.Parcel

		err := p.Transition(parcel.PickedUp, mustActor(t, parcel.RoleDriver), parcel.TransitionOptions{})

		require.ErrorIs(t, err, parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcel_RecordPayment(t *testing.T) {
	t.Run("should record completion with paidAt", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.RecordPayment(parcel.PaymentCompleted, "card", "txn-42", testNow)

		require.NoError(t, err)
		assert.Equal(t, parcel.PaymentCompleted, p.Payment().Status())
		assert.Equal(t, "card", p.Payment().Method())
		assert.Equal(t, "txn-42", p.Payment().Reference())
		require.NotNil(t, p.Payment().PaidAt())
		assert.Equal(t, testNow, *p.Payment().PaidAt())
	})

	t.Run("should keep stored method when none given", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.RecordPayment(parcel.PaymentPending, "", "txn-42", testNow)

		require.NoError(t, err)
		assert.Equal(t, parcel.DefaultPaymentMethod, p.Payment().Method())
		assert.Equal(t, "txn-42", p.Payment().Reference())
		assert.Nil(t, p.Payment().PaidAt())
	})

	t.Run("should reject illegal payment moves", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.RecordPayment(parcel.PaymentRefunded, "", "", testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment cannot move from unpaid to refunded")
	})

	t.Run("should treat same payment status as no-op", func(t *testing.T) {
		p := newTestParcel(t)
		before := p.UpdatedAt()

		err := p.RecordPayment(parcel.PaymentUnpaid, "", "", testNow.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, before, p.UpdatedAt())
	})
}

func TestRestoreParcel(t *testing.T) {
	restore := func(t *testing.T, mutate func(args *restoreArgs)) (*parcel.Parcel, error) {
		t.Helper()
		args := defaultRestoreArgs(t)
		if mutate != nil {
			mutate(args)
		}
		return parcel.RestoreParcel(
			args.id, args.trackingNumber, args.sender, args.receiver,
			args.pack, args.pricing, args.status, args.history, args.payment,
			args.driverID, args.proof,
			args.createdAt, args.updatedAt, args.expiresAt, args.version,
		)
	}

	t.Run("should restore a valid snapshot", func(t *testing.T) {
		p, err := restore(t, nil)

		require.NoError(t, err)
		assert.Equal(t, parcel.Pending, p.Status())
		assert.Equal(t, int64(3), p.Version())
	})

	t.Run("should reject empty history", func(t *testing.T) {
		_, err := restore(t, func(args *restoreArgs) {
			args.history = nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "statusHistory")
	})

	t.Run("should reject history out of sync with status", func(t *testing.T) {
		_, err := restore(t, func(args *restoreArgs) {
			args.status = parcel.PickedUp
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "last history entry is pending but status is picked-up")
	})

	t.Run("should reject proof on undelivered parcel", func(t *testing.T) {
		_, err := restore(t, func(args *restoreArgs) {
			proof, perr := parcel.NewProofOfDelivery("https://cdn.example.com/pod/3.jpg", testNow, kernel.NewUUID())
			require.NoError(t, perr)
			args.proof = &proof
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "proof of delivery must be present exactly when status is delivered")
	})

	t.Run("should reject non-positive version", func(t *testing.T) {
		_, err := restore(t, func(args *restoreArgs) {
			args.version = 0
		})

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestParcel_IsExpired(t *testing.T) {
	p := newTestParcel(t)

	assert.False(t, p.IsExpired(testNow.Add(parcel.ParcelTTL)))
	assert.True(t, p.IsExpired(testNow.Add(parcel.ParcelTTL).Add(time.Second)))
}

type restoreArgs struct {
	id             kernel.UUID
	trackingNumber kernel.TrackingNumber
	sender         parcel.Party
	receiver       parcel.Party
	pack           parcel.PackageInfo
	pricing        parcel.Pricing
	status         parcel.Status
	history        []parcel.HistoryEntry
	payment        parcel.Payment
	driverID       *kernel.UUID
	proof          *parcel.ProofOfDelivery
	createdAt      time.Time
	updatedAt      time.Time
	expiresAt      time.Time
	version        int64
}

func defaultRestoreArgs(t *testing.T) *restoreArgs {
	t.Helper()

	pack, err := parcel.NewPackageInfo("Books", 2.5, 150, 10)
	require.NoError(t, err)
	pricing, err := parcel.NewPricing(10, 80, kernel.DefaultCurrency)
	require.NoError(t, err)
	entry, err := parcel.RestoreHistoryEntry(parcel.Pending, testNow, "", kernel.NewUUID(), parcel.RoleCustomer)
	require.NoError(t, err)
	payment, err := parcel.RestorePayment(parcel.PaymentUnpaid, parcel.DefaultPaymentMethod, "", nil)
	require.NoError(t, err)

	return &restoreArgs{
		id:             kernel.NewUUID(),
		trackingNumber: kernel.GenerateTrackingNumber(testNow),
		sender:         mustParty(t, "Alice Sender"),
		receiver:       mustParty(t, "Bob Receiver"),
		pack:           pack,
		pricing:        pricing,
		status:         parcel.Pending,
		history:        []parcel.HistoryEntry{entry},
		payment:        payment,
		createdAt:      testNow,
		updatedAt:      testNow,
		expiresAt:      testNow.Add(parcel.ParcelTTL),
		version:        3,
	}
}
