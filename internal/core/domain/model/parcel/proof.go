package parcel

import (
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/errs"
)

// ProofOfDelivery is the evidence artifact gating the terminal Delivered
// state: a photo taken at handover, who uploaded it, and when. It is set
// exactly once, on the transition into Delivered.
type ProofOfDelivery struct {
	imageURL   string
	uploadedAt time.Time
	uploadedBy kernel.UUID
}

// NewProofOfDelivery creates a delivery proof. The image URL must be
// non-empty and the uploader identity must be constructed.
func NewProofOfDelivery(imageURL string, uploadedAt time.Time, uploadedBy kernel.UUID) (ProofOfDelivery, error) {
	if imageURL == "" {
		return ProofOfDelivery{}, errs.NewValueIsRequiredError("imageUrl")
	}
	if err := uploadedBy.Validate(); err != nil {
		return ProofOfDelivery{}, err
	}

	return ProofOfDelivery{
		imageURL:   imageURL,
		uploadedAt: uploadedAt,
		uploadedBy: uploadedBy,
	}, nil
}

// ImageURL returns the location of the proof photo.
func (p ProofOfDelivery) ImageURL() string {
	return p.imageURL
}

// UploadedAt returns when the proof was captured.
func (p ProofOfDelivery) UploadedAt() time.Time {
	return p.uploadedAt
}

// UploadedBy returns the identity of the uploader.
func (p ProofOfDelivery) UploadedBy() kernel.UUID {
	return p.uploadedBy
}

// Validate checks the proof invariants.
func (p ProofOfDelivery) Validate() error {
	if p.imageURL == "" {
		return errs.NewValueIsRequiredError("imageUrl")
	}
	return p.uploadedBy.Validate()
}
