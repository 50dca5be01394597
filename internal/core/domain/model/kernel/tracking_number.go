package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"donedelivery/internal/pkg/errs"
)

// Tracking number shape: "DN" prefix, eight digits derived from the creation
// time, four random uppercase alphanumerics.
const (
	TrackingNumberPrefix = "DN"
	TrackingNumberLength = 14
)

var (
	trackingNumberPattern = regexp.MustCompile(`^DN\d{8}[0-9A-Z]{4}$`)

	trackingSuffixAlphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
)

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not
// created through GenerateTrackingNumber or TrackingNumberFromString.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingNumber must be created via GenerateTrackingNumber or TrackingNumberFromString",
)

// TrackingNumber is the human-readable, globally unique identifier customers
// use to look up a parcel. It is immutable after creation; uniqueness is
// enforced by the repository at parcel creation time, with bounded
// regeneration on collision.
type TrackingNumber struct {
	value string
}

// GenerateTrackingNumber produces a new candidate tracking number from the
// given creation time. The time contributes the last eight digits of its
// unix-millisecond representation; the random suffix disambiguates parcels
// created within the same millisecond. Candidates are not guaranteed unique:
// the caller must collision-check against storage.
func GenerateTrackingNumber(now time.Time) TrackingNumber {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	var suffix strings.Builder
	for range 4 {
		suffix.WriteByte(trackingSuffixAlphabet[rand.IntN(len(trackingSuffixAlphabet))])
	}

	return TrackingNumber{value: TrackingNumberPrefix + millis + suffix.String()}
}

// TrackingNumberFromString parses a tracking number from its string form,
// normalizing case. Returns an error if the value does not match the
// expected shape.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !trackingNumberPattern.MatchString(normalized) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match %s", s, trackingNumberPattern.String()),
		)
	}
	return TrackingNumber{value: normalized}, nil
}

// String returns the tracking number in its canonical uppercase form.
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual compares two tracking numbers for equality.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks that the tracking number was properly constructed.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
