package haiku_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alwitt/haiku"
	"github.com/alwitt/haiku/config"
	"github.com/alwitt/haiku/db"
	"github.com/alwitt/haiku/models"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

// TestHaikuStorageEndToEnd performs a full end-to-end test of the HaikuStorage against a
// temporary SQLite database.
func TestHaikuStorageEndToEnd(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	ctx := context.Background()

	// ------------------------------------------------------------------
	// 1. Create the storage service on a temporary SQLite database
	// ------------------------------------------------------------------
	testDB := fmt.Sprintf("/tmp/haiku_ut_%s.db", ulid.Make().String())
	uut, err := haiku.NewHaikuStorage(
		db.GetSqliteDialector(testDB), logger.Error, db.ConnectionRetryParams{}, true,
	)
	assert.Nil(err)

	// ------------------------------------------------------------------
	// 2. Empty store
	// ------------------------------------------------------------------
	assert.True(uut.IsAvailable(ctx))
	assert.Equal(int64(0), uut.Count(ctx))
	assert.Equal([]models.Haiku{}, uut.ListRecent(ctx, 5))

	// ------------------------------------------------------------------
	// 3. Save a haiku
	// ------------------------------------------------------------------
	saved, ok := uut.Save(ctx, "ocean waves", "Line one\nLine two\nLine three", nil)
	assert.True(ok)
	assert.Equal("ocean waves", saved.Subject)
	assert.Equal("Line one\nLine two\nLine three", saved.BodyText)
	assert.NotEmpty(saved.ID)
	assert.False(saved.CreatedAt.IsZero())
	assert.Nil(saved.OwnerID)
	assert.Equal(int64(1), uut.Count(ctx))

	// Round trip
	fetched, ok := uut.GetByID(ctx, saved.ID)
	assert.True(ok)
	assert.Equal(saved.ID, fetched.ID)
	assert.Equal(saved.Subject, fetched.Subject)
	assert.Equal(saved.BodyText, fetched.BodyText)
	assert.Equal(saved.OwnerID, fetched.OwnerID)
	assert.WithinDuration(saved.CreatedAt, fetched.CreatedAt, time.Millisecond)

	// Unknown ID
	_, ok = uut.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.False(ok)

	// Blank input
	_, ok = uut.Save(ctx, "  ", "text", nil)
	assert.False(ok)
	assert.Equal(int64(1), uut.Count(ctx))

	// ------------------------------------------------------------------
	// 4. Save more haikus, with an owner
	// ------------------------------------------------------------------
	owner := uuid.NewString()
	subjects := []string{"Ocean breeze", "mountain snow", "city lights", "OCEAN floor"}
	for _, subject := range subjects {
		before := uut.Count(ctx)
		stored, ok := uut.Save(ctx, subject, "a\nb\nc", &owner)
		assert.True(ok)
		assert.Equal(owner, *stored.OwnerID)
		assert.Equal(before+1, uut.Count(ctx))
	}
	total := uut.Count(ctx)
	assert.Equal(int64(5), total)

	// ------------------------------------------------------------------
	// 5. Listing is newest first
	// ------------------------------------------------------------------
	all := uut.ListRecent(ctx, int(total))
	assert.Len(all, 5)
	for idx := 1; idx < len(all); idx++ {
		assert.False(all[idx].CreatedAt.After(all[idx-1].CreatedAt))
	}
	assert.Len(uut.ListRecent(ctx, 2), 2)

	// ------------------------------------------------------------------
	// 6. Search
	// ------------------------------------------------------------------
	// Blank search is the same as listing recent
	assert.Equal(uut.ListRecent(ctx, 3), uut.Search(ctx, "  ", 3))

	// Search result is the filtered full listing
	found := uut.Search(ctx, "ocean", 10)
	expected := []models.Haiku{}
	for _, hk := range all {
		if strings.Contains(strings.ToLower(hk.Subject), "ocean") {
			expected = append(expected, hk)
		}
	}
	assert.Len(found, 3)
	assert.ElementsMatch(expected, found)

	// ------------------------------------------------------------------
	// 7. Delete for cleanup
	// ------------------------------------------------------------------
	assert.True(uut.Delete(ctx, saved.ID))
	assert.False(uut.Delete(ctx, saved.ID))
	_, ok = uut.GetByID(ctx, saved.ID)
	assert.False(ok)
	assert.Equal(int64(4), uut.Count(ctx))

	// Audit trail: five additions and one delete
	events := uut.ListEvents(ctx, db.AuditEventQueryFilter{})
	assert.Len(events, 6)
}

// TestHaikuStorageUnreachableStore verifies an unusable store never surfaces as an error
func TestHaikuStorageUnreachableStore(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	ctx := context.Background()

	// The tables are never defined
	testDB := fmt.Sprintf("/tmp/haiku_ut_%s.db", ulid.Make().String())
	uut, err := haiku.NewHaikuStorage(
		db.GetSqliteDialector(testDB), logger.Silent, db.ConnectionRetryParams{}, false,
	)
	assert.Nil(err)

	assert.False(uut.IsAvailable(ctx))
	assert.Equal(int64(0), uut.Count(ctx))
	assert.Equal([]models.Haiku{}, uut.ListRecent(ctx, 5))
	assert.Equal([]models.Haiku{}, uut.Search(ctx, "ocean", 5))
	_, ok := uut.Save(ctx, "ocean", "text", nil)
	assert.False(ok)
	_, ok = uut.GetByID(ctx, uuid.NewString())
	assert.False(ok)
}

func TestNewHaikuStorageFromConfig(t *testing.T) {
	assert := assert.New(t)

	// Persistence disabled
	uut, err := haiku.NewHaikuStorageFromConfig(config.StoreConfig{})
	assert.Nil(err)
	assert.Nil(uut)

	// Unknown driver
	_, err = haiku.NewHaikuStorageFromConfig(config.StoreConfig{Driver: "oracle", DSN: "x"})
	assert.Error(err)

	// SQLite
	testDB := fmt.Sprintf("/tmp/haiku_ut_%s.db", ulid.Make().String())
	uut, err = haiku.NewHaikuStorageFromConfig(config.StoreConfig{
		Driver: config.StoreDriverSqlite, DSN: testDB, AutoMigrate: true,
	})
	assert.Nil(err)
	assert.True(uut.IsAvailable(context.Background()))
}
