package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/ports"
	"donedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimelineStep is one rung of the public tracking timeline.
type TimelineStep struct {
	Status      parcel.Status
	Title       string
	Description string
	Reached     bool
	Active      bool
	Timestamp   *time.Time
	Note        string
}

// GetParcelByTrackingNumberQueryResponse is the public tracking view of a
// parcel.
type GetParcelByTrackingNumberQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          parcel.Status
	SenderName      string
	SenderAddress   string
	ReceiverName    string
	ReceiverAddress string
	Description     string
	TotalAmount     kernel.Money
	CreatedAt       time.Time
	Timeline        []TimelineStep
	ProofImageURL   string
}

// timelineTexts is the customer-facing copy for each lifecycle step.
var timelineTexts = []struct {
	status      parcel.Status
	title       string
	description string
}{
	{parcel.Pending, "Order Created", "Your parcel has been created and is awaiting pickup"},
	{parcel.PickedUp, "Picked Up", "Your parcel has been picked up from the sender"},
	{parcel.InTransit, "In Transit", "Your parcel is on its way to the destination"},
	{parcel.Delivered, "Delivered", "Your parcel has been successfully delivered"},
}

// historyEntryRow mirrors the JSON shape of one persisted history entry.
type historyEntryRow struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
	UpdatedBy string    `json:"updated_by"`
	Role      string    `json:"role"`
}

// GetParcelByTrackingNumberQueryHandler serves the public tracking lookup.
// An optional tracking cache maps tracking numbers to parcel IDs so repeat
// lookups skip the secondary-index scan; the cache is consulted
// best-effort and every cache failure falls back to the database.
//
// Example:
//
//	handler := NewGetParcelByTrackingNumberQueryHandler(db, cache, logger)
//	query, _ := NewGetParcelByTrackingNumberQuery(trackingNumber)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown tracking number
//	}
type GetParcelByTrackingNumberQueryHandler struct {
	db     *gorm.DB
	cache  ports.TrackingCache
	logger *slog.Logger
}

// NewGetParcelByTrackingNumberQueryHandler creates a handler for tracking
// lookups. cache may be nil, in which case every lookup goes straight to
// the database.
func NewGetParcelByTrackingNumberQueryHandler(
	db *gorm.DB,
	cache ports.TrackingCache,
	logger *slog.Logger,
) GetParcelByTrackingNumberQueryHandler {
	return GetParcelByTrackingNumberQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "tracking_query"),
	}
}

// Handle executes the tracking lookup.
func (h GetParcelByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingNumberQuery,
) (GetParcelByTrackingNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	trackingNumber := query.TrackingNumber()

	if cachedID, ok := h.lookupCache(ctx, trackingNumber); ok {
		resp, err := h.fetch(ctx, "id = ?", cachedID.Bytes())
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return GetParcelByTrackingNumberQueryResponse{}, err
		}
		// Stale cache entry: fall through to the tracking-number lookup.
	}

	resp, err := h.fetch(ctx, "tracking_number = ?", trackingNumber.String())
	if err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	h.populateCache(ctx, trackingNumber, resp.ID)
	return resp, nil
}

func (h GetParcelByTrackingNumberQueryHandler) lookupCache(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (kernel.UUID, bool) {
	if h.cache == nil {
		return kernel.UUID{}, false
	}

	id, ok, err := h.cache.GetParcelID(ctx, trackingNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "tracking cache lookup failed",
			"trackingNumber", trackingNumber.String(), "error", err)
		return kernel.UUID{}, false
	}
	return id, ok
}

func (h GetParcelByTrackingNumberQueryHandler) populateCache(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
	id kernel.UUID,
) {
	if h.cache == nil {
		return
	}

	if err := h.cache.SetParcelID(ctx, trackingNumber, id); err != nil {
		h.logger.WarnContext(ctx, "tracking cache update failed",
			"trackingNumber", trackingNumber.String(), "error", err)
	}
}

func (h GetParcelByTrackingNumberQueryHandler) fetch(
	ctx context.Context,
	condition string,
	arg any,
) (GetParcelByTrackingNumberQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			sender_name,
			sender_address,
			receiver_name,
			receiver_address,
			description,
			total_cents,
			currency,
			created_at,
			history,
			proof_image_url
		FROM parcels
		WHERE `+condition, arg).Row()

	var (
		id            uuid.UUID
		statusStr     string
		totalCents    int64
		currency      string
		historyRaw    []byte
		resp          GetParcelByTrackingNumberQueryResponse
		proofImageURL string
	)

	err := row.Scan(
		&id,
		&resp.TrackingNumber,
		&statusStr,
		&resp.SenderName,
		&resp.SenderAddress,
		&resp.ReceiverName,
		&resp.ReceiverAddress,
		&resp.Description,
		&totalCents,
		&currency,
		&resp.CreatedAt,
		&historyRaw,
		&proofImageURL,
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return GetParcelByTrackingNumberQueryResponse{}, errs.NewObjectNotFoundError("parcel", arg)
		}
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}
	resp.ID = parcelID

	status, err := parcel.StatusFromString(statusStr)
	if err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}
	resp.Status = status
	resp.ProofImageURL = proofImageURL

	total, err := kernel.NewMoney(totalCents, currency)
	if err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}
	resp.TotalAmount = total

	var history []historyEntryRow
	if len(historyRaw) > 0 {
		if err = json.Unmarshal(historyRaw, &history); err != nil {
			return GetParcelByTrackingNumberQueryResponse{}, err
		}
	}

	resp.Timeline = buildTimeline(status, history)
	return resp, nil
}

// buildTimeline renders the four lifecycle steps, marking what has been
// reached and attaching the audit timestamp and note where one exists.
func buildTimeline(current parcel.Status, history []historyEntryRow) []TimelineStep {
	steps := make([]TimelineStep, 0, len(timelineTexts))
	for _, text := range timelineTexts {
		step := TimelineStep{
			Status:      text.status,
			Title:       text.title,
			Description: text.description,
			Reached:     text.status.IsReached(current),
			Active:      text.status == current,
		}

		for _, entry := range history {
			if entry.Status == text.status.String() {
				ts := entry.Timestamp
				step.Timestamp = &ts
				step.Note = entry.Note
				break
			}
		}

		steps = append(steps, step)
	}
	return steps
}
