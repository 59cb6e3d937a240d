// Package db - persistence layer
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alwitt/haiku/models"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
)

// defineNewAuditEvent record a new audit event
func (d *databaseImpl) defineNewAuditEvent(
	eventType models.AuditEventTypeENUMType, metadata interface{},
) (models.AuditEvent, error) {

	newEntry := AuditEventDBEntry{
		AuditEvent: models.AuditEvent{ID: ulid.Make().String(), EventType: eventType},
	}
	// Same zone as the haiku timestamps so textual timestamps order correctly
	now := time.Now().UTC()
	newEntry.CreatedAt = now
	newEntry.UpdatedAt = now

	if metadata != nil {
		if err := d.validator.Struct(metadata); err != nil {
			return models.AuditEvent{}, fmt.Errorf(
				"new audit event '%s' metadata entry is not valid [%w]", eventType, err,
			)
		}

		metadataStr, _ := json.Marshal(&metadata)
		newEntry.Metadata = datatypes.JSON(metadataStr)
	}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.AuditEvent{}, fmt.Errorf(
			"new audit event '%s' entry is not valid [%w]", eventType, err,
		)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.AuditEvent{}, fmt.Errorf(
			"new audit event '%s' insert failed [%w]", eventType, tmp.Error,
		)
	}

	return newEntry.AuditEvent, nil
}

/*
ListAuditEvents list captured audit events

	@param ctx context.Context - execution context
	@param filters AuditEventQueryFilter - entry listing filter
	@return list of audit events
*/
func (d *databaseImpl) ListAuditEvents(
	_ context.Context, filters AuditEventQueryFilter,
) ([]models.AuditEvent, error) {
	query := d.db.Model(&AuditEventDBEntry{})

	if len(filters.EventTypes) > 0 {
		query = query.Where("type in ?", filters.EventTypes)
	}

	if filters.EventsAfter != nil {
		query = query.Where("created_at >= ?", filters.EventsAfter.UTC())
	}
	if filters.EventsBefore != nil {
		query = query.Where("created_at <= ?", filters.EventsBefore.UTC())
	}

	if filters.Limit != nil {
		query = query.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		query = query.Offset(*filters.Offset)
	}

	query = query.Order("created_at")

	var entries []AuditEventDBEntry
	if tmp := query.Find(&entries); tmp.Error != nil {
		return nil, d.logFailure(
			fmt.Errorf("failed to list captured audit events [%w]", tmp.Error),
			"Audit event listing failed",
		)
	}

	result := []models.AuditEvent{}
	for _, entry := range entries {
		result = append(result, entry.AuditEvent)
	}

	return result, nil
}
