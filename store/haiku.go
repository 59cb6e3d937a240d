// Package store - haiku storage service
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/alwitt/haiku/db"
	"github.com/alwitt/haiku/models"
	"github.com/apex/log"
)

// DefaultListLimit number of haikus returned when the caller gives no usable limit
const DefaultListLimit = 10

/*
HaikuStorage failure isolating haiku storage service.

No method returns an error: store failures are logged, and the weakest valid value for the
return type (empty list, zero, false) is returned instead. Callers can not distinguish invalid
input from an unavailable store.
*/
type HaikuStorage interface {
	/*
		Save record a new haiku

			@param ctx context.Context - execution context
			@param subject string - the subject the haiku was generated for
			@param bodyText string - the haiku text
			@param ownerID *string - optional owner of the haiku
			@returns the stored haiku, and whether it was stored
	*/
	Save(
		ctx context.Context, subject string, bodyText string, ownerID *string,
	) (models.Haiku, bool)

	/*
		ListRecent list the most recent haikus, newest first

			@param ctx context.Context - execution context
			@param limit int - max number of haikus to return
			@returns the haikus
	*/
	ListRecent(ctx context.Context, limit int) []models.Haiku

	/*
		Search list the haikus whose subject contains a term, ignoring case. A blank term
		lists the most recent haikus instead.

			@param ctx context.Context - execution context
			@param subject string - subject search term
			@param limit int - max number of haikus to return
			@returns the haikus
	*/
	Search(ctx context.Context, subject string, limit int) []models.Haiku

	/*
		GetByID fetch one haiku

			@param ctx context.Context - execution context
			@param haikuID string - haiku ID
			@returns the haiku, and whether it was found
	*/
	GetByID(ctx context.Context, haikuID string) (models.Haiku, bool)

	/*
		Count count the stored haikus

			@param ctx context.Context - execution context
			@returns number of haikus
	*/
	Count(ctx context.Context) int64

	/*
		IsAvailable whether the store is reachable

			@param ctx context.Context - execution context
			@returns whether the store is reachable
	*/
	IsAvailable(ctx context.Context) bool

	/*
		Delete remove one haiku

			@param ctx context.Context - execution context
			@param haikuID string - haiku ID
			@returns whether the haiku was removed
	*/
	Delete(ctx context.Context, haikuID string) bool

	/*
		ListEvents list the audit events of the haiku collection

			@param ctx context.Context - execution context
			@param filters db.AuditEventQueryFilter - entry listing filter
			@returns the events
	*/
	ListEvents(ctx context.Context, filters db.AuditEventQueryFilter) []models.AuditEvent
}

// PersistenceConnector function which connects to the store
type PersistenceConnector func(ctx context.Context) (db.Client, error)

// HaikuStorageParams haiku storage service parameters
type HaikuStorageParams struct {
	// Connect connects to the store. It is called on first use of the service.
	Connect PersistenceConnector
	// AutoMigrate whether to define the tables after connecting
	AutoMigrate bool
}

// haikuStorage implements HaikuStorage
type haikuStorage struct {
	goutils.Component

	connect     PersistenceConnector
	autoMigrate bool

	lock        sync.Mutex
	persistence db.Client
}

/*
NewHaikuStorage define new haiku storage service

The store is not contacted until the first operation.

	@param params HaikuStorageParams - service parameters
	@returns service instance
*/
func NewHaikuStorage(params HaikuStorageParams) (HaikuStorage, error) {
	if params.Connect == nil {
		return nil, fmt.Errorf("no store connector provided")
	}

	logTags := log.Fields{"module": "store", "component": "haiku-storage"}

	return &haikuStorage{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		connect:     params.Connect,
		autoMigrate: params.AutoMigrate,
	}, nil
}

// getPersistence get the store client, connecting on first use
//
// A failed connection is not cached; the next call tries again.
func (s *haikuStorage) getPersistence(ctx context.Context) (db.Client, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.persistence != nil {
		return s.persistence, nil
	}

	client, err := s.connect(ctx)
	if err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Failed to create store client")
		return nil, fmt.Errorf("failed to connect to store [%w]", err)
	}

	if s.autoMigrate {
		if err := client.RunSQLInTransaction(ctx, db.DefineTables); err != nil {
			log.WithFields(s.LogTags).WithError(err).Error("Failed to define store tables")
			return nil, fmt.Errorf("failed to define store tables [%w]", err)
		}
	}

	log.WithFields(s.LogTags).Info("Store client created")
	s.persistence = client
	return client, nil
}

// useDatabase run logic against the store
func (s *haikuStorage) useDatabase(
	ctx context.Context,
	inTransaction bool,
	coreLogic func(ctx context.Context, dbClient db.Database) error,
) error {
	persistence, err := s.getPersistence(ctx)
	if err != nil {
		return err
	}
	if inTransaction {
		return persistence.UseDatabaseInTransaction(ctx, coreLogic)
	}
	return persistence.UseDatabase(ctx, coreLogic)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

/*
Save record a new haiku

	@param ctx context.Context - execution context
	@param subject string - the subject the haiku was generated for
	@param bodyText string - the haiku text
	@param ownerID *string - optional owner of the haiku
	@returns the stored haiku, and whether it was stored
*/
func (s *haikuStorage) Save(
	ctx context.Context, subject string, bodyText string, ownerID *string,
) (models.Haiku, bool) {
	subject = strings.TrimSpace(subject)
	bodyText = strings.TrimSpace(bodyText)
	if subject == "" {
		log.WithFields(s.LogTags).Warn("Cannot save haiku: empty subject")
		return models.Haiku{}, false
	}
	if bodyText == "" {
		log.WithFields(s.LogTags).Warn("Cannot save haiku: empty haiku text")
		return models.Haiku{}, false
	}
	if ownerID != nil && strings.TrimSpace(*ownerID) == "" {
		ownerID = nil
	}

	var stored models.Haiku
	if err := s.useDatabase(
		ctx, true, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			stored, err = dbClient.DefineNewHaiku(
				dbCtx, models.Haiku{Subject: subject, BodyText: bodyText, OwnerID: ownerID},
			)
			return err
		},
	); err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Failed to save haiku")
		return models.Haiku{}, false
	}

	log.WithFields(s.LogTags).WithField("haiku_id", stored.ID).Info("Successfully saved haiku")
	return stored, true
}

/*
ListRecent list the most recent haikus, newest first

	@param ctx context.Context - execution context
	@param limit int - max number of haikus to return
	@returns the haikus
*/
func (s *haikuStorage) ListRecent(ctx context.Context, limit int) []models.Haiku {
	limit = normalizeLimit(limit)

	var haikus []models.Haiku
	if err := s.useDatabase(
		ctx, false, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			haikus, err = dbClient.ListHaikus(dbCtx, db.HaikuQueryFilter{
				CommonListEntryQueryFilter: db.CommonListEntryQueryFilter{Limit: &limit},
			})
			return err
		},
	); err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Failed to get recent haikus")
		return []models.Haiku{}
	}

	if haikus == nil {
		return []models.Haiku{}
	}
	return haikus
}

/*
Search list the haikus whose subject contains a term, ignoring case. A blank term
lists the most recent haikus instead.

	@param ctx context.Context - execution context
	@param subject string - subject search term
	@param limit int - max number of haikus to return
	@returns the haikus
*/
func (s *haikuStorage) Search(ctx context.Context, subject string, limit int) []models.Haiku {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return s.ListRecent(ctx, limit)
	}
	limit = normalizeLimit(limit)

	var haikus []models.Haiku
	if err := s.useDatabase(
		ctx, false, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			haikus, err = dbClient.SearchHaikusBySubject(dbCtx, subject, limit)
			return err
		},
	); err != nil {
		log.WithFields(s.LogTags).
			WithError(err).
			WithField("subject", subject).
			Error("Failed to search haikus")
		return []models.Haiku{}
	}

	if haikus == nil {
		return []models.Haiku{}
	}
	return haikus
}

/*
GetByID fetch one haiku

	@param ctx context.Context - execution context
	@param haikuID string - haiku ID
	@returns the haiku, and whether it was found
*/
func (s *haikuStorage) GetByID(ctx context.Context, haikuID string) (models.Haiku, bool) {
	if strings.TrimSpace(haikuID) == "" {
		log.WithFields(s.LogTags).Warn("Cannot get haiku: empty ID")
		return models.Haiku{}, false
	}

	var haiku models.Haiku
	err := s.useDatabase(
		ctx, false, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			haiku, err = dbClient.GetHaiku(dbCtx, haikuID)
			return err
		},
	)
	if errors.Is(err, db.ErrHaikuNotFound) {
		log.WithFields(s.LogTags).WithField("haiku_id", haikuID).Debug("Haiku not found")
		return models.Haiku{}, false
	} else if err != nil {
		log.WithFields(s.LogTags).
			WithError(err).
			WithField("haiku_id", haikuID).
			Error("Failed to get haiku by ID")
		return models.Haiku{}, false
	}

	return haiku, true
}

// countHaikus count the stored haikus
func (s *haikuStorage) countHaikus(ctx context.Context) (int64, error) {
	var count int64
	err := s.useDatabase(
		ctx, false, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			count, err = dbClient.CountHaikus(dbCtx)
			return err
		},
	)
	return count, err
}

/*
Count count the stored haikus

	@param ctx context.Context - execution context
	@returns number of haikus
*/
func (s *haikuStorage) Count(ctx context.Context) int64 {
	count, err := s.countHaikus(ctx)
	if err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Failed to get haiku count")
		return 0
	}
	return count
}

/*
IsAvailable whether the store is reachable

	@param ctx context.Context - execution context
	@returns whether the store is reachable
*/
func (s *haikuStorage) IsAvailable(ctx context.Context) bool {
	if _, err := s.countHaikus(ctx); err != nil {
		log.WithFields(s.LogTags).WithError(err).Warn("Storage service not available")
		return false
	}
	return true
}

/*
Delete remove one haiku

	@param ctx context.Context - execution context
	@param haikuID string - haiku ID
	@returns whether the haiku was removed
*/
func (s *haikuStorage) Delete(ctx context.Context, haikuID string) bool {
	if strings.TrimSpace(haikuID) == "" {
		log.WithFields(s.LogTags).Warn("Cannot delete haiku: empty ID")
		return false
	}

	var deleted bool
	if err := s.useDatabase(
		ctx, true, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			deleted, err = dbClient.DeleteHaiku(dbCtx, haikuID)
			return err
		},
	); err != nil {
		log.WithFields(s.LogTags).
			WithError(err).
			WithField("haiku_id", haikuID).
			Error("Failed to delete haiku")
		return false
	}
	return deleted
}

/*
ListEvents list the audit events of the haiku collection

	@param ctx context.Context - execution context
	@param filters db.AuditEventQueryFilter - entry listing filter
	@returns the events
*/
func (s *haikuStorage) ListEvents(
	ctx context.Context, filters db.AuditEventQueryFilter,
) []models.AuditEvent {
	var events []models.AuditEvent
	if err := s.useDatabase(
		ctx, false, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			events, err = dbClient.ListAuditEvents(dbCtx, filters)
			return err
		},
	); err != nil {
		log.WithFields(s.LogTags).WithError(err).Error("Failed to list audit events")
		return []models.AuditEvent{}
	}

	if events == nil {
		return []models.AuditEvent{}
	}
	return events
}
