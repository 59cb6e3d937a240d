package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// AuditEventTypeENUMType audit event type ENUM value type
type AuditEventTypeENUMType string

const (
	// AuditEventTypeAddNewHaiku new haiku is being added
	AuditEventTypeAddNewHaiku AuditEventTypeENUMType = "ADD_NEW_HAIKU"

	// AuditEventTypeDeleteHaiku haiku is deleted
	AuditEventTypeDeleteHaiku AuditEventTypeENUMType = "DELETE_HAIKU"
)

// AuditEvent recording of changes made to the haiku collection
type AuditEvent struct {
	// ID audit entry ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required"`
	// EventType audit event type
	EventType AuditEventTypeENUMType `json:"type" gorm:"column:type;not null" validate:"required,audit_event_type"`
	// Metadata a metadata relating to the event
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"column:metadata;default:null"`
	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseMetadata parse the metadata based on the event type
func (a AuditEvent) ParseMetadata(validator *validator.Validate) (interface{}, error) {
	switch a.EventType {
	case AuditEventTypeAddNewHaiku:
		fallthrough
	case AuditEventTypeDeleteHaiku:
		var parsed AuditEventHaikuRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("audit event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)
	}
	return nil, nil
}

// AuditEventHaikuRelated audit event metadata related to one haiku
type AuditEventHaikuRelated struct {
	// HaikuID the haiku ID
	HaikuID string `json:"haiku_id" validate:"required"`
	// Subject the haiku subject
	Subject string `json:"subject" validate:"required"`
}
