package db

import (
	"context"

	"github.com/alwitt/haiku/models"
	"gorm.io/gorm"
)

// --------------------------------------------------------------------------------------
// Audit events

// AuditEventDBEntry audit event DB entry
type AuditEventDBEntry struct {
	models.AuditEvent
}

// TableName hard code table name
func (AuditEventDBEntry) TableName() string {
	return "haiku_audit_events"
}

// --------------------------------------------------------------------------------------
// Haikus

// HaikuDBEntry haiku DB entry
type HaikuDBEntry struct {
	models.Haiku
}

// TableName hard code table name
func (HaikuDBEntry) TableName() string {
	return "haikus"
}

// DefineTables prepare a database with the tables
//
// Used by unit-tests and local SQLite stores. Remote stores are migrated with the DDL from
// `utils/atlas-migrate`.
func DefineTables(_ context.Context, db *gorm.DB) error {
	return db.AutoMigrate(
		AuditEventDBEntry{},
		HaikuDBEntry{},
	)
}
