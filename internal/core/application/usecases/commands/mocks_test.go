package commands_test

import (
	"context"
	"testing"
	"time"

	"donedelivery/internal/core/application/usecases/commands"
	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

var testClock = ports.ClockFunc(func() time.Time { return testNow })

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingNumber(
	ctx context.Context, trackingNumber kernel.TrackingNumber,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllInStatus(
	ctx context.Context, status parcel.Status, driverID *kernel.UUID,
) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, status, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockNotificationDispatcher struct {
	mock.Mock
	notified chan ports.StatusChangedEvent
}

func NewMockNotificationDispatcher() *MockNotificationDispatcher {
	return &MockNotificationDispatcher{notified: make(chan ports.StatusChangedEvent, 1)}
}

func (m *MockNotificationDispatcher) Notify(ctx context.Context, event ports.StatusChangedEvent) {
	m.Called(ctx, event)
	m.notified <- event
}

// waitForEvent blocks until the dispatcher receives an event, failing the
// test on timeout. Dispatch runs on a separate goroutine.
func (m *MockNotificationDispatcher) waitForEvent(t *testing.T) ports.StatusChangedEvent {
	t.Helper()
	select {
	case event := <-m.notified:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification to be dispatched")
		return ports.StatusChangedEvent{}
	}
}

func testParty(t *testing.T, name string) parcel.Party {
	t.Helper()
	party, err := parcel.NewParty(name, "+27821234567", name+"@example.com", "+27821234567", "12 Main Rd, Cape Town")
	require.NoError(t, err)
	return party
}

func testActor(t *testing.T, role parcel.Role) parcel.Actor {
	t.Helper()
	actor, err := parcel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func testPackage(t *testing.T) parcel.PackageInfo {
	t.Helper()
	pack, err := parcel.NewPackageInfo("Books", 2.5, 150, 10)
	require.NoError(t, err)
	return pack
}

// storedParcel builds a pending aggregate the way the repository would
// return it from a load.
func storedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	pricing, err := parcel.NewPricing(10, 80, kernel.DefaultCurrency)
	require.NoError(t, err)

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.GenerateTrackingNumber(testNow),
		testParty(t, "Alice Sender"),
		testParty(t, "Bob Receiver"),
		testPackage(t),
		pricing,
		testActor(t, parcel.RoleCustomer),
		testNow,
	)
	require.NoError(t, err)
	return aggregate
}
