package parcel

import (
	"fmt"
	"time"

	"donedelivery/internal/pkg/errs"
)

// PaymentStatus represents the payment state of a parcel. Payment moves
// independently of the delivery lifecycle, but the delivery state machine
// gates Pending -> PickedUp on PaymentCompleted.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial payment status at parcel creation.
	PaymentUnpaid

	// PaymentPending indicates a payment has been initiated with the
	// provider but not yet confirmed.
	PaymentPending

	// PaymentCompleted indicates the payment was captured. Required before
	// a driver may pick the parcel up.
	PaymentCompleted

	// PaymentCancelled indicates the payment was abandoned or voided.
	PaymentCancelled

	// PaymentRefunded indicates a completed payment was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentUnpaid:        "unpaid",
		PaymentPending:       "pending",
		PaymentCompleted:     "completed",
		PaymentCancelled:     "cancelled",
		PaymentRefunded:      "refunded",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentUnpaid:    "unpaid",
		PaymentPending:   "pending",
		PaymentCompleted: "completed",
		PaymentCancelled: "cancelled",
		PaymentRefunded:  "refunded",
	}
}

// paymentMoves lists the legal payment status transitions.
var paymentMoves = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:    {PaymentPending, PaymentCompleted, PaymentCancelled},
	PaymentPending:   {PaymentCompleted, PaymentCancelled},
	PaymentCompleted: {PaymentRefunded},
}

// PaymentStatusFromString parses a payment status from its persisted string form.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the PaymentStatus value is one of the closed set.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the persisted string form of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// canMoveTo reports whether the payment may transition to target.
func (s PaymentStatus) canMoveTo(target PaymentStatus) bool {
	for _, next := range paymentMoves[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Payment is a value object capturing the payment state of a parcel:
// current status, capture method, the provider reference, and when the
// payment completed.
type Payment struct {
	status    PaymentStatus
	method    string
	reference string
	paidAt    *time.Time
}

// NewUnpaidPayment creates the initial payment state for a new parcel.
func NewUnpaidPayment(method string) Payment {
	return Payment{
		status: PaymentUnpaid,
		method: method,
	}
}

// RestorePayment reconstructs a payment value from persistence.
func RestorePayment(status PaymentStatus, method, reference string, paidAt *time.Time) (Payment, error) {
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{
		status:    status,
		method:    method,
		reference: reference,
		paidAt:    paidAt,
	}, nil
}

// Status returns the current payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// Method returns the capture method, e.g. "paystack".
func (p Payment) Method() string {
	return p.method
}

// Reference returns the provider transaction reference, if any.
func (p Payment) Reference() string {
	return p.reference
}

// PaidAt returns the completion time of the payment, nil if not completed.
func (p Payment) PaidAt() *time.Time {
	return p.paidAt
}

// moveTo returns a new Payment in the target status. Re-applying the current
// status is a no-op; illegal moves are rejected. Reference and method are
// only overwritten when provided, and paidAt is recorded on completion.
func (p Payment) moveTo(target PaymentStatus, method, reference string, now time.Time) (Payment, error) {
	if err := target.Validate(); err != nil {
		return Payment{}, err
	}
	if target == p.status {
		return p, nil
	}
	if !p.status.canMoveTo(target) {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("payment cannot move from %s to %s", p.status, target),
		)
	}

	next := p
	next.status = target
	if method != "" {
		next.method = method
	}
	if reference != "" {
		next.reference = reference
	}
	if target == PaymentCompleted {
		paidAt := now
		next.paidAt = &paidAt
	}
	return next, nil
}
