package queries

import (
	"context"

	"donedelivery/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetDriverStatsQueryResponse holds a driver's activity counters for the
// reporting window.
type GetDriverStatsQueryResponse struct {
	Pickups   int64
	Delivered int64
	Active    int64
}

// GetDriverStatsQueryHandler computes per-driver activity counters:
// how many parcels the driver picked up and delivered within the window,
// and how many are still in the driver's hands right now.
//
// Example:
//
//	handler := NewGetDriverStatsQueryHandler(db)
//	query, _ := NewGetDriverStatsQuery(driverID, startOfDay)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d delivered today\n", stats.Delivered)
type GetDriverStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverStatsQueryHandler creates a handler for driver stats queries.
// Requires a GORM database connection for query execution.
func NewGetDriverStatsQueryHandler(db *gorm.DB) GetDriverStatsQueryHandler {
	return GetDriverStatsQueryHandler{db: db}
}

// Handle executes the stats query. Pickups and deliveries are counted from
// the persisted status history so a parcel that moved through a status
// within the window is counted even after it moved on.
func (h GetDriverStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverStatsQuery,
) (GetDriverStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverStatsQueryResponse{}, err
	}

	var stats GetDriverStatsQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			entry->>'status' AS status,
			COUNT(*) AS total
		FROM parcels,
			jsonb_array_elements(history) AS entry
		WHERE driver_id = ?
			AND (entry->>'timestamp')::timestamptz >= ?
			AND entry->>'status' IN (?, ?)
		GROUP BY entry->>'status'
	`,
		query.DriverID().Bytes(),
		query.Since(),
		parcel.PickedUp.String(),
		parcel.Delivered.String(),
	).Rows()
	if err != nil {
		return GetDriverStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			statusStr string
			total     int64
		)
		if err = rows.Scan(&statusStr, &total); err != nil {
			return GetDriverStatsQueryResponse{}, err
		}

		switch statusStr {
		case parcel.PickedUp.String():
			stats.Pickups = total
		case parcel.Delivered.String():
			stats.Delivered = total
		}
	}

	if err = rows.Err(); err != nil {
		return GetDriverStatsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM parcels
		WHERE driver_id = ?
			AND status IN (?, ?)
	`,
		query.DriverID().Bytes(),
		parcel.PickedUp.String(),
		parcel.InTransit.String(),
	).Row().Scan(&stats.Active)
	if err != nil {
		return GetDriverStatsQueryResponse{}, err
	}

	return stats, nil
}
