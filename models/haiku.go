package models

import (
	"fmt"
	"time"
)

// Haiku a generated haiku / short poem
type Haiku struct {
	// ID haiku ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required"`

	// Subject the topic the haiku was generated for
	Subject string `json:"subject" gorm:"column:subject;not null" validate:"required,not_blank"`

	// BodyText the generated haiku text. Lines are newline delimited.
	BodyText string `json:"body_text" gorm:"column:body_text;not null" validate:"required,not_blank"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index"`

	// OwnerID optional ID of the user which owns the haiku
	OwnerID *string `json:"owner_id,omitempty" gorm:"column:owner_id;default:null"`
}

// String summary of the haiku for display
func (h Haiku) String() string {
	return fmt.Sprintf(
		"Haiku(id=%s, subject='%s', created_at=%s)",
		h.ID, h.Subject, h.CreatedAt.Format(time.RFC3339),
	)
}
