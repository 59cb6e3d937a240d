package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alwitt/haiku/models"
	"github.com/apex/log"
	"github.com/google/uuid"
)

// hydrate validate a haiku entry read back from the store
func (d *databaseImpl) hydrate(entry HaikuDBEntry) (models.Haiku, error) {
	if err := d.validator.Struct(&entry.Haiku); err != nil {
		return models.Haiku{}, fmt.Errorf("stored haiku '%s' is malformed [%w]", entry.ID, err)
	}
	return entry.Haiku, nil
}

// hydrateAll validate haiku entries read back from the store
func (d *databaseImpl) hydrateAll(entries []HaikuDBEntry) ([]models.Haiku, error) {
	result := []models.Haiku{}
	for _, entry := range entries {
		haiku, err := d.hydrate(entry)
		if err != nil {
			return nil, err
		}
		result = append(result, haiku)
	}
	return result, nil
}

// getHaikuEntry find a haiku by ID
func (d *databaseImpl) getHaikuEntry(haikuID string) (HaikuDBEntry, error) {
	var entries []HaikuDBEntry
	if err := d.db.Where("id = ?", haikuID).Limit(1).Find(&entries).Error; err != nil {
		return HaikuDBEntry{}, err
	}
	if len(entries) == 0 {
		return HaikuDBEntry{}, ErrHaikuNotFound
	}
	return entries[0], nil
}

/*
DefineNewHaiku insert a new haiku

Unset ID and creation timestamp are populated before the insert.

	@param ctx context.Context - execution context
	@param haiku models.Haiku - the haiku to insert
	@returns the haiku as stored
*/
func (d *databaseImpl) DefineNewHaiku(_ context.Context, haiku models.Haiku) (models.Haiku, error) {
	newEntry := HaikuDBEntry{Haiku: haiku}
	if newEntry.ID == "" {
		newEntry.ID = uuid.NewString()
	}
	if newEntry.CreatedAt.IsZero() {
		newEntry.CreatedAt = time.Now()
	}
	// Stored in UTC so textual timestamps also order correctly
	newEntry.CreatedAt = newEntry.CreatedAt.UTC()

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("new haiku on '%s' is not valid [%w]", haiku.Subject, err),
			"Haiku insert rejected",
		)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("new haiku on '%s' failed insert [%w]", haiku.Subject, tmp.Error),
			"Haiku insert failed",
		)
	}

	// Read back what the store actually holds
	stored, err := d.getHaikuEntry(newEntry.ID)
	if errors.Is(err, ErrHaikuNotFound) {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("insert of haiku %s returned no row", newEntry.ID),
			"Haiku insert failed",
		)
	} else if err != nil {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("failed to read back new haiku %s [%w]", newEntry.ID, err),
			"Haiku insert failed",
		)
	}

	// Record this event
	if _, err := d.defineNewAuditEvent(
		models.AuditEventTypeAddNewHaiku,
		models.AuditEventHaikuRelated{HaikuID: stored.ID, Subject: stored.Subject},
	); err != nil {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("failed to log add new haiku %s audit event [%w]", stored.ID, err),
			"Haiku insert failed",
		)
	}

	result, err := d.hydrate(stored)
	if err != nil {
		return models.Haiku{}, d.logFailure(err, "Haiku insert failed")
	}
	return result, nil
}

/*
GetHaiku fetch a haiku by ID

	@param ctx context.Context - execution context
	@param haikuID string - haiku ID
	@returns haiku entry, or ErrHaikuNotFound
*/
func (d *databaseImpl) GetHaiku(_ context.Context, haikuID string) (models.Haiku, error) {
	entry, err := d.getHaikuEntry(haikuID)
	if errors.Is(err, ErrHaikuNotFound) {
		log.WithFields(d.LogTags).WithField("haiku_id", haikuID).Debug("No such haiku")
		return models.Haiku{}, fmt.Errorf("haiku %s [%w]", haikuID, err)
	} else if err != nil {
		return models.Haiku{}, d.logFailure(
			fmt.Errorf("failed to fetch haiku %s [%w]", haikuID, err), "Haiku fetch failed",
		)
	}

	result, err := d.hydrate(entry)
	if err != nil {
		return models.Haiku{}, d.logFailure(err, "Haiku fetch failed")
	}
	return result, nil
}

/*
ListHaikus list haikus, newest first

	@param ctx context.Context - execution context
	@param filters HaikuQueryFilter - entry listing filter
	@return list of haikus
*/
func (d *databaseImpl) ListHaikus(
	_ context.Context, filters HaikuQueryFilter,
) ([]models.Haiku, error) {
	query := d.db.Model(&HaikuDBEntry{})

	if filters.Limit != nil {
		if *filters.Limit <= 0 {
			return nil, d.logFailure(
				fmt.Errorf("invalid haiku list limit %d", *filters.Limit), "Haiku listing rejected",
			)
		}
		query = query.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		if *filters.Offset < 0 {
			return nil, d.logFailure(
				fmt.Errorf("invalid haiku list offset %d", *filters.Offset), "Haiku listing rejected",
			)
		}
		query = query.Offset(*filters.Offset)
	}

	query = query.Order("created_at desc")

	var entries []HaikuDBEntry
	if tmp := query.Find(&entries); tmp.Error != nil {
		return nil, d.logFailure(
			fmt.Errorf("failed to list haikus [%w]", tmp.Error), "Haiku listing failed",
		)
	}

	result, err := d.hydrateAll(entries)
	if err != nil {
		return nil, d.logFailure(err, "Haiku listing failed")
	}
	return result, nil
}

// likePatternEscaper escape the LIKE wildcards so a fragment is matched literally
var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

/*
SearchHaikusBySubject list haikus whose subject contains a fragment, ignoring case.
Newest first.

	@param ctx context.Context - execution context
	@param fragment string - subject fragment
	@param limit int - max number of haikus to return
	@return list of haikus
*/
func (d *databaseImpl) SearchHaikusBySubject(
	_ context.Context, fragment string, limit int,
) ([]models.Haiku, error) {
	if limit <= 0 {
		return nil, d.logFailure(
			fmt.Errorf("invalid haiku search limit %d", limit), "Haiku search rejected",
		)
	}

	// Both sides must be folded by the same function for non-ASCII subjects to match
	var condition string
	switch d.db.Dialector.Name() {
	case "postgres":
		condition = `subject ILIKE ? ESCAPE '\'`
	case "sqlite":
		condition = sqliteUnicodeLower + `(subject) LIKE ` + sqliteUnicodeLower + `(?) ESCAPE '\'`
	default:
		condition = `LOWER(subject) LIKE LOWER(?) ESCAPE '\'`
	}
	pattern := "%" + likePatternEscaper.Replace(fragment) + "%"

	var entries []HaikuDBEntry
	if tmp := d.db.
		Where(condition, pattern).
		Order("created_at desc").
		Limit(limit).
		Find(&entries); tmp.Error != nil {
		return nil, d.logFailure(
			fmt.Errorf("failed to search haikus by subject '%s' [%w]", fragment, tmp.Error),
			"Haiku search failed",
		)
	}

	result, err := d.hydrateAll(entries)
	if err != nil {
		return nil, d.logFailure(err, "Haiku search failed")
	}
	return result, nil
}

/*
CountHaikus count the haikus

	@param ctx context.Context - execution context
	@return number of haikus
*/
func (d *databaseImpl) CountHaikus(_ context.Context) (int64, error) {
	var count int64
	if tmp := d.db.Model(&HaikuDBEntry{}).Count(&count); tmp.Error != nil {
		return 0, d.logFailure(fmt.Errorf("failed to count haikus [%w]", tmp.Error), "Haiku count failed")
	}
	return count, nil
}

/*
DeleteHaiku delete a haiku

	@param ctx context.Context - execution context
	@param haikuID string - haiku ID
	@return whether a haiku was removed
*/
func (d *databaseImpl) DeleteHaiku(_ context.Context, haikuID string) (bool, error) {
	entry, err := d.getHaikuEntry(haikuID)
	if errors.Is(err, ErrHaikuNotFound) {
		return false, nil
	} else if err != nil {
		return false, d.logFailure(
			fmt.Errorf("failed to fetch haiku %s [%w]", haikuID, err), "Haiku delete failed",
		)
	}

	tmp := d.db.Where("id = ?", haikuID).Delete(&HaikuDBEntry{})
	if tmp.Error != nil {
		return false, d.logFailure(
			fmt.Errorf("failed to delete haiku %s [%w]", haikuID, tmp.Error), "Haiku delete failed",
		)
	}
	if tmp.RowsAffected == 0 {
		return false, nil
	}

	// Record this event
	if _, err := d.defineNewAuditEvent(
		models.AuditEventTypeDeleteHaiku,
		models.AuditEventHaikuRelated{HaikuID: entry.ID, Subject: entry.Subject},
	); err != nil {
		return false, d.logFailure(
			fmt.Errorf("failed to log delete haiku %s audit event [%w]", haikuID, err),
			"Haiku delete failed",
		)
	}

	return true, nil
}
