// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Sender and receiver contacts are embedded with column prefixes, the status
// history is stored as a JSONB document, and the version column drives the
// optimistic compare-and-set in the repository.
type ParcelDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"type:varchar(14);uniqueIndex"`

	Sender   PartyDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver PartyDTO `gorm:"embedded;embeddedPrefix:receiver_"`

	Description   string
	WeightKg      float64
	DeclaredValue float64
	DistanceKm    float64

	RatePerKm  float64
	TotalCents int64
	Currency   string `gorm:"type:varchar(3)"`

	Status  string            `gorm:"type:varchar(16);index"`
	History []HistoryEntryDTO `gorm:"serializer:json;type:jsonb"`

	PaymentStatus    string `gorm:"type:varchar(16)"`
	PaymentMethod    string
	PaymentReference string
	PaidAt           *time.Time

	DriverID *uuid.UUID `gorm:"type:uuid;index"`

	ProofImageURL   string
	ProofUploadedAt *time.Time
	ProofUploadedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
	ExpiresAt time.Time `gorm:"index"`

	Version int64
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// PartyDTO represents the embedded contact details of a sender or receiver
// within the parcel table.
type PartyDTO struct {
	Name     string
	Phone    string
	Email    string
	WhatsApp string
	Address  string
}

// HistoryEntryDTO represents one audit record inside the JSONB history
// column. The JSON field names are part of the stored format and are also
// read directly by the reporting queries.
type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
	UpdatedBy string    `json:"updated_by"`
	Role      string    `json:"role"`
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Maps all parcel attributes including the optional driver assignment and
// proof of delivery.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryEntryDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
			UpdatedBy: entry.UpdatedBy().String(),
			Role:      entry.UpdatedByRole().String(),
		})
	}

	dto := ParcelDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber().String(),
		Sender:         partyFromDomain(aggregate.Sender()),
		Receiver:       partyFromDomain(aggregate.Receiver()),

		Description:   aggregate.Package().Description(),
		WeightKg:      aggregate.Package().WeightKg(),
		DeclaredValue: aggregate.Package().Value(),
		DistanceKm:    aggregate.Package().DistanceKm(),

		RatePerKm:  aggregate.Pricing().RatePerKm(),
		TotalCents: aggregate.Pricing().Total().Cents(),
		Currency:   aggregate.Pricing().Total().Currency(),

		Status:  aggregate.Status().String(),
		History: history,

		PaymentStatus:    aggregate.Payment().Status().String(),
		PaymentMethod:    aggregate.Payment().Method(),
		PaymentReference: aggregate.Payment().Reference(),
		PaidAt:           aggregate.Payment().PaidAt(),

		DriverID: driverID,

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		ExpiresAt: aggregate.ExpiresAt(),

		Version: aggregate.Version(),
	}

	if proof := aggregate.ProofOfDelivery(); proof != nil {
		uploadedAt := proof.UploadedAt()
		uploadedBy := proof.UploadedBy().Bytes()
		dto.ProofImageURL = proof.ImageURL()
		dto.ProofUploadedAt = &uploadedAt
		dto.ProofUploadedBy = &uploadedBy
	}

	return dto
}

func partyFromDomain(party parcel.Party) PartyDTO {
	return PartyDTO{
		Name:     party.Name(),
		Phone:    party.Phone(),
		Email:    party.Email(),
		WhatsApp: party.WhatsApp(),
		Address:  party.Address(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including history, payment, driver
// assignment and proof of delivery using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingNumber, err := kernel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	sender, err := partyToDomain(dto.Sender)
	if err != nil {
		return nil, err
	}

	receiver, err := partyToDomain(dto.Receiver)
	if err != nil {
		return nil, err
	}

	pack, err := parcel.NewPackageInfo(dto.Description, dto.WeightKg, dto.DeclaredValue, dto.DistanceKm)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	pricing, err := parcel.RestorePricing(dto.DistanceKm, dto.RatePerKm, total)
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]parcel.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entry, entryErr := historyEntryToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	paymentStatus, err := parcel.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	payment, err := parcel.RestorePayment(paymentStatus, dto.PaymentMethod, dto.PaymentReference, dto.PaidAt)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	var proof *parcel.ProofOfDelivery
	if dto.ProofImageURL != "" && dto.ProofUploadedAt != nil && dto.ProofUploadedBy != nil {
		uploadedBy, proofErr := kernel.UUIDFromBytes((*dto.ProofUploadedBy)[:])
		if proofErr != nil {
			return nil, proofErr
		}

		p, proofErr := parcel.NewProofOfDelivery(dto.ProofImageURL, *dto.ProofUploadedAt, uploadedBy)
		if proofErr != nil {
			return nil, proofErr
		}

		proof = &p
	}

	return parcel.RestoreParcel(
		id,
		trackingNumber,
		sender,
		receiver,
		pack,
		pricing,
		status,
		history,
		payment,
		driverID,
		proof,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.ExpiresAt,
		dto.Version,
	)
}

func partyToDomain(dto PartyDTO) (parcel.Party, error) {
	return parcel.NewParty(dto.Name, dto.Phone, dto.Email, dto.WhatsApp, dto.Address)
}

func historyEntryToDomain(dto HistoryEntryDTO) (parcel.HistoryEntry, error) {
	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	updatedBy, err := kernel.UUIDFromString(dto.UpdatedBy)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	role, err := parcel.RoleFromString(dto.Role)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	return parcel.RestoreHistoryEntry(status, dto.Timestamp, dto.Note, updatedBy, role)
}
