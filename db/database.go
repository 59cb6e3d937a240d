package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/haiku/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrHaikuNotFound the requested haiku does not exist
var ErrHaikuNotFound = errors.New("haiku not found")

// CommonListEntryQueryFilter common query filter when listing data entries
type CommonListEntryQueryFilter struct {
	Limit  *int
	Offset *int
}

// AuditEventQueryFilter audit event query filter conditions
type AuditEventQueryFilter struct {
	CommonListEntryQueryFilter
	// EventTypes the specific event types to query for
	EventTypes []models.AuditEventTypeENUMType
	// EventsAfter filter for events after this timestamp
	EventsAfter *time.Time
	// EventsBefore filter for events before this timestamp
	EventsBefore *time.Time
}

// HaikuQueryFilter haiku query filter conditions
type HaikuQueryFilter struct {
	CommonListEntryQueryFilter
}

// Database the database handle to interacting with the data base
type Database interface {
	// ------------------------------------------------------------------------------------
	// Audit events

	/*
		ListAuditEvents list captured audit events

			@param ctx context.Context - execution context
			@param filters AuditEventQueryFilter - entry listing filter
			@return list of audit events
	*/
	ListAuditEvents(
		ctx context.Context, filters AuditEventQueryFilter,
	) ([]models.AuditEvent, error)

	// ------------------------------------------------------------------------------------
	// Haikus

	/*
		DefineNewHaiku insert a new haiku

		Unset ID and creation timestamp are populated before the insert.

			@param ctx context.Context - execution context
			@param haiku models.Haiku - the haiku to insert
			@returns the haiku as stored
	*/
	DefineNewHaiku(ctx context.Context, haiku models.Haiku) (models.Haiku, error)

	/*
		GetHaiku fetch a haiku by ID

			@param ctx context.Context - execution context
			@param haikuID string - haiku ID
			@returns haiku entry, or ErrHaikuNotFound
	*/
	GetHaiku(ctx context.Context, haikuID string) (models.Haiku, error)

	/*
		ListHaikus list haikus, newest first

			@param ctx context.Context - execution context
			@param filters HaikuQueryFilter - entry listing filter
			@return list of haikus
	*/
	ListHaikus(ctx context.Context, filters HaikuQueryFilter) ([]models.Haiku, error)

	/*
		SearchHaikusBySubject list haikus whose subject contains a fragment, ignoring case.
		Newest first.

			@param ctx context.Context - execution context
			@param fragment string - subject fragment
			@param limit int - max number of haikus to return
			@return list of haikus
	*/
	SearchHaikusBySubject(
		ctx context.Context, fragment string, limit int,
	) ([]models.Haiku, error)

	/*
		CountHaikus count the haikus

			@param ctx context.Context - execution context
			@return number of haikus
	*/
	CountHaikus(ctx context.Context) (int64, error)

	/*
		DeleteHaiku delete a haiku

			@param ctx context.Context - execution context
			@param haikuID string - haiku ID
			@return whether a haiku was removed
	*/
	DeleteHaiku(ctx context.Context, haikuID string) (bool, error)
}

// databaseImpl implements Database
type databaseImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

// newDatabase define a new database client
func newDatabase(_ context.Context, sqlClient *gorm.DB) (Database, error) {
	logTags := log.Fields{"package": "haiku", "module": "db", "component": "db-client"}

	instance := &databaseImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        sqlClient,
		validator: validator.New(),
	}

	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}

// logFailure log a store operation failure, and return the error
func (d *databaseImpl) logFailure(err error, msg string) error {
	log.WithFields(d.LogTags).WithError(err).Error(msg)
	return err
}
