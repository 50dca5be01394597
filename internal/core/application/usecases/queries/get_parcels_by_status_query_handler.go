package queries

import (
	"context"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelsByStatusQueryResponse is one parcel row of the status listing.
type GetParcelsByStatusQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          parcel.Status
	SenderName      string
	SenderAddress   string
	ReceiverName    string
	ReceiverAddress string
	TotalAmount     kernel.Money
	DriverID        *kernel.UUID
	UpdatedAt       time.Time
}

// GetParcelsByStatusQueryHandler lists parcels in a given lifecycle status,
// most recently updated first. Used by the dispatch board and by drivers
// looking at their active workload.
//
// Example:
//
//	handler := NewGetParcelsByStatusQueryHandler(db)
//	query, _ := NewGetParcelsByStatusQuery(parcel.Pending, nil)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetParcelsByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsByStatusQueryHandler creates a handler for status listings.
// Requires a GORM database connection for query execution.
func NewGetParcelsByStatusQueryHandler(db *gorm.DB) GetParcelsByStatusQueryHandler {
	return GetParcelsByStatusQueryHandler{db: db}
}

// Handle executes the listing. Results are ordered by updated_at descending
// so the most recent activity surfaces first.
func (h GetParcelsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetParcelsByStatusQuery,
) ([]GetParcelsByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			tracking_number,
			status,
			sender_name,
			sender_address,
			receiver_name,
			receiver_address,
			total_cents,
			currency,
			driver_id,
			updated_at
		FROM parcels
		WHERE status = ?`
	args := []any{query.Status().String()}

	if driverID := query.DriverID(); driverID != nil {
		sql += ` AND driver_id = ?`
		args = append(args, driverID.Bytes())
	}
	sql += `
		ORDER BY updated_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]GetParcelsByStatusQueryResponse, 0)

	for rows.Next() {
		var (
			resp       GetParcelsByStatusQueryResponse
			id         uuid.UUID
			statusStr  string
			totalCents int64
			currency   string
			driverID   *uuid.UUID
		)

		err = rows.Scan(
			&id,
			&resp.TrackingNumber,
			&statusStr,
			&resp.SenderName,
			&resp.SenderAddress,
			&resp.ReceiverName,
			&resp.ReceiverAddress,
			&totalCents,
			&currency,
			&driverID,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID

		status, statusErr := parcel.StatusFromString(statusStr)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = status

		total, moneyErr := kernel.NewMoney(totalCents, currency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.TotalAmount = total

		if driverID != nil {
			driver, driverErr := kernel.UUIDFromBytes(driverID[:])
			if driverErr != nil {
				return nil, driverErr
			}
			resp.DriverID = &driver
		}

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
