package commands_test

import (
	"testing"

	"donedelivery/internal/core/application/usecases/commands"
	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordPaymentCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewRecordPaymentCommand(id, parcel.PaymentCompleted, "paystack", "DN_573920118")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.ParcelID())
	assert.Equal(t, parcel.PaymentCompleted, cmd.Target())
	assert.Equal(t, "paystack", cmd.Method())
	assert.Equal(t, "DN_573920118", cmd.Reference())
}

func TestNewRecordPaymentCommand_EmptyMethodAndReference(t *testing.T) {
	cmd, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), parcel.PaymentCancelled, "", "")

	require.NoError(t, err)
	assert.Empty(t, cmd.Method())
	assert.Empty(t, cmd.Reference())
}

func TestNewRecordPaymentCommand_InvalidParcelID(t *testing.T) {
	_, err := commands.NewRecordPaymentCommand(kernel.UUID{}, parcel.PaymentCompleted, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewRecordPaymentCommand_InvalidTarget(t *testing.T) {
	_, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), parcel.PaymentStatusUnknown, "", "")

	require.Error(t, err)
}

func TestRecordPaymentCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.RecordPaymentCommand{}

	err := cmd.Validate()

	require.ErrorIs(t, err, commands.ErrRecordPaymentCommandIsNotConstructed)
}
