package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListTemperatureLogsQueryHandler struct {
	db *gorm.DB
}

func NewListTemperatureLogsQueryHandler(db *gorm.DB) ListTemperatureLogsQueryHandler {
	return ListTemperatureLogsQueryHandler{db: db}
}

// Handle returns the readings of the delivery ordered by recording time.
// An unknown delivery is errs.ErrObjectNotFound; a delivery without
// readings yields an empty slice.
func (h ListTemperatureLogsQueryHandler) Handle(
	ctx context.Context,
	query ListTemperatureLogsQuery,
) ([]ListTemperatureLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	deliveryID := query.DeliveryID().Bytes()

	var deliveries int64
	if err := db.Table("deliveries").Where("id = ?", deliveryID).Count(&deliveries).Error; err != nil {
		return nil, err
	}
	if deliveries == 0 {
		return nil, errs.NewObjectNotFoundError("delivery", query.DeliveryID())
	}

	logs := make([]ListTemperatureLogsQueryResponse, 0)

	rows, err := db.Raw(`
		SELECT
			id,
			temperature,
			location,
			is_manual,
			sensor_id,
			notes,
			is_compliant,
			recorded_at
		FROM temperature_logs
		WHERE delivery_id = ?
		ORDER BY recorded_at, id
	`, deliveryID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var log ListTemperatureLogsQueryResponse
		var id uuid.UUID
		var recordedAt time.Time

		err = rows.Scan(
			&id,
			&log.Temperature,
			&log.Location,
			&log.IsManual,
			&log.SensorID,
			&log.Notes,
			&log.IsCompliant,
			&recordedAt,
		)
		if err != nil {
			return nil, err
		}

		logID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}
		log.ID = logID
		log.RecordedAt = recordedAt.UTC()
		logs = append(logs, log)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
