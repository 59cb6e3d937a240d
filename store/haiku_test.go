package store_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alwitt/haiku/db"
	mockdb "github.com/alwitt/haiku/mocks/db"
	"github.com/alwitt/haiku/models"
	"github.com/alwitt/haiku/store"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// passThroughDatabase make the mock client hand the mock database to every callback
func passThroughDatabase(mockDBClient *mockdb.Client, mockDatabase *mockdb.Database) {
	runCallback := func(
		ctx context.Context, coreLogic func(context.Context, db.Database) error,
	) error {
		return coreLogic(ctx, mockDatabase)
	}
	mockDBClient.On("UseDatabase", mock.Anything, mock.Anything).Return(runCallback).Maybe()
	mockDBClient.On(
		"UseDatabaseInTransaction", mock.Anything, mock.Anything,
	).Return(runCallback).Maybe()
}

// newTestStorage define a storage service on top of mocks
func newTestStorage(t *testing.T) (store.HaikuStorage, *mockdb.Database, *atomic.Int32) {
	mockDBClient := mockdb.NewClient(t)
	mockDatabase := mockdb.NewDatabase(t)
	passThroughDatabase(mockDBClient, mockDatabase)

	connectCalls := &atomic.Int32{}
	uut, err := store.NewHaikuStorage(store.HaikuStorageParams{
		Connect: func(_ context.Context) (db.Client, error) {
			connectCalls.Add(1)
			return mockDBClient, nil
		},
	})
	assert.Nil(t, err)
	return uut, mockDatabase, connectCalls
}

func TestHaikuStorageInit(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	_, err := store.NewHaikuStorage(store.HaikuStorageParams{})
	assert.Error(err)

	// The store is not contacted during construction
	_, _, connectCalls := newTestStorage(t)
	assert.Equal(int32(0), connectCalls.Load())
}

func TestHaikuStorageSave(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	// Case 0: valid haiku, fields are trimmed
	{
		stored := models.Haiku{
			ID:        uuid.NewString(),
			Subject:   "ocean waves",
			BodyText:  "Line one\nLine two\nLine three",
			CreatedAt: time.Now().UTC(),
		}
		mockDatabase.On(
			"DefineNewHaiku",
			mock.AnythingOfType("context.backgroundCtx"),
			models.Haiku{Subject: "ocean waves", BodyText: "Line one\nLine two\nLine three"},
		).Return(stored, nil).Once()

		result, ok := uut.Save(utCtx, "  ocean waves ", "Line one\nLine two\nLine three\n", nil)
		assert.True(ok)
		assert.Equal(stored, result)
	}

	// Case 1: with owner
	{
		owner := uuid.NewString()
		stored := models.Haiku{
			ID: uuid.NewString(), Subject: "moon", BodyText: "pale", OwnerID: &owner,
		}
		mockDatabase.On(
			"DefineNewHaiku",
			mock.AnythingOfType("context.backgroundCtx"),
			models.Haiku{Subject: "moon", BodyText: "pale", OwnerID: &owner},
		).Return(stored, nil).Once()

		result, ok := uut.Save(utCtx, "moon", "pale", &owner)
		assert.True(ok)
		assert.Equal(owner, *result.OwnerID)
	}

	// Case 2: store failure
	{
		mockDatabase.On(
			"DefineNewHaiku",
			mock.AnythingOfType("context.backgroundCtx"),
			models.Haiku{Subject: "rain", BodyText: "drops"},
		).Return(models.Haiku{}, fmt.Errorf("dummy error")).Once()

		_, ok := uut.Save(utCtx, "rain", "drops", nil)
		assert.False(ok)
	}
}

func TestHaikuStorageSaveRejectsBlankInput(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, _, connectCalls := newTestStorage(t)

	type testCase struct {
		subject  string
		bodyText string
	}
	testCases := []testCase{
		{subject: "", bodyText: "text"},
		{subject: "   ", bodyText: "text"},
		{subject: "subject", bodyText: ""},
		{subject: "subject", bodyText: " \n\t "},
		{subject: "", bodyText: ""},
	}
	for _, oneTest := range testCases {
		_, ok := uut.Save(utCtx, oneTest.subject, oneTest.bodyText, nil)
		assert.False(ok)
	}

	// No store call made at all
	assert.Equal(int32(0), connectCalls.Load())
}

func TestHaikuStorageListRecent(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	testHaikus := []models.Haiku{
		{ID: uuid.NewString(), Subject: "a", BodyText: "a"},
		{ID: uuid.NewString(), Subject: "b", BodyText: "b"},
	}

	// Case 0: success
	{
		limit := 5
		mockDatabase.On(
			"ListHaikus",
			mock.AnythingOfType("context.backgroundCtx"),
			db.HaikuQueryFilter{
				CommonListEntryQueryFilter: db.CommonListEntryQueryFilter{Limit: &limit},
			},
		).Return(testHaikus, nil).Once()

		assert.Equal(testHaikus, uut.ListRecent(utCtx, 5))
	}

	// Case 1: no usable limit given
	{
		limit := store.DefaultListLimit
		mockDatabase.On(
			"ListHaikus",
			mock.AnythingOfType("context.backgroundCtx"),
			db.HaikuQueryFilter{
				CommonListEntryQueryFilter: db.CommonListEntryQueryFilter{Limit: &limit},
			},
		).Return(nil, nil).Once()

		result := uut.ListRecent(utCtx, 0)
		assert.NotNil(result)
		assert.Len(result, 0)
	}

	// Case 2: store failure
	{
		mockDatabase.On(
			"ListHaikus", mock.AnythingOfType("context.backgroundCtx"), mock.Anything,
		).Return(nil, fmt.Errorf("dummy error")).Once()

		result := uut.ListRecent(utCtx, 5)
		assert.NotNil(result)
		assert.Len(result, 0)
	}
}

func TestHaikuStorageSearch(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	testHaikus := []models.Haiku{
		{ID: uuid.NewString(), Subject: "ocean", BodyText: "a"},
	}

	// Case 0: search term is trimmed
	{
		mockDatabase.On(
			"SearchHaikusBySubject",
			mock.AnythingOfType("context.backgroundCtx"),
			"ocean",
			7,
		).Return(testHaikus, nil).Once()

		assert.Equal(testHaikus, uut.Search(utCtx, " ocean  ", 7))
	}

	// Case 1: blank term lists recent haikus
	for _, blank := range []string{"", "   ", "\t"} {
		limit := 3
		mockDatabase.On(
			"ListHaikus",
			mock.AnythingOfType("context.backgroundCtx"),
			db.HaikuQueryFilter{
				CommonListEntryQueryFilter: db.CommonListEntryQueryFilter{Limit: &limit},
			},
		).Return(testHaikus, nil).Once()

		assert.Equal(testHaikus, uut.Search(utCtx, blank, 3))
	}

	// Case 2: store failure
	{
		mockDatabase.On(
			"SearchHaikusBySubject",
			mock.AnythingOfType("context.backgroundCtx"),
			"ocean",
			store.DefaultListLimit,
		).Return(nil, fmt.Errorf("dummy error")).Once()

		result := uut.Search(utCtx, "ocean", -1)
		assert.NotNil(result)
		assert.Len(result, 0)
	}
}

func TestHaikuStorageGetByID(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	// Case 0: found
	{
		testHaiku := models.Haiku{ID: uuid.NewString(), Subject: "a", BodyText: "b"}
		mockDatabase.On(
			"GetHaiku", mock.AnythingOfType("context.backgroundCtx"), testHaiku.ID,
		).Return(testHaiku, nil).Once()

		result, ok := uut.GetByID(utCtx, testHaiku.ID)
		assert.True(ok)
		assert.Equal(testHaiku, result)
	}

	// Case 1: not found
	{
		missingID := "00000000-0000-0000-0000-000000000000"
		mockDatabase.On(
			"GetHaiku", mock.AnythingOfType("context.backgroundCtx"), missingID,
		).Return(
			models.Haiku{}, fmt.Errorf("haiku %s [%w]", missingID, db.ErrHaikuNotFound),
		).Once()

		_, ok := uut.GetByID(utCtx, missingID)
		assert.False(ok)
	}

	// Case 2: store failure
	{
		testID := uuid.NewString()
		mockDatabase.On(
			"GetHaiku", mock.AnythingOfType("context.backgroundCtx"), testID,
		).Return(models.Haiku{}, fmt.Errorf("dummy error")).Once()

		_, ok := uut.GetByID(utCtx, testID)
		assert.False(ok)
	}

	// Case 3: blank ID
	{
		_, ok := uut.GetByID(utCtx, " ")
		assert.False(ok)
	}
}

func TestHaikuStorageCountAndAvailability(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	// Case 0: empty store is still available
	mockDatabase.On(
		"CountHaikus", mock.AnythingOfType("context.backgroundCtx"),
	).Return(int64(0), nil).Twice()
	assert.Equal(int64(0), uut.Count(utCtx))
	assert.True(uut.IsAvailable(utCtx))

	// Case 1: some entries
	mockDatabase.On(
		"CountHaikus", mock.AnythingOfType("context.backgroundCtx"),
	).Return(int64(42), nil).Once()
	assert.Equal(int64(42), uut.Count(utCtx))

	// Case 2: store failure
	mockDatabase.On(
		"CountHaikus", mock.AnythingOfType("context.backgroundCtx"),
	).Return(int64(0), fmt.Errorf("dummy error")).Twice()
	assert.Equal(int64(0), uut.Count(utCtx))
	assert.False(uut.IsAvailable(utCtx))
}

func TestHaikuStorageDeleteAndEvents(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, mockDatabase, _ := newTestStorage(t)

	// Blank IDs never reach the store
	assert.False(uut.Delete(utCtx, ""))
	assert.False(uut.Delete(utCtx, "  \t"))
	mockDatabase.AssertNotCalled(t, "DeleteHaiku", mock.Anything, mock.Anything)

	testID := uuid.NewString()
	mockDatabase.On(
		"DeleteHaiku", mock.AnythingOfType("context.backgroundCtx"), testID,
	).Return(true, nil).Once()
	assert.True(uut.Delete(utCtx, testID))

	mockDatabase.On(
		"DeleteHaiku", mock.AnythingOfType("context.backgroundCtx"), testID,
	).Return(false, fmt.Errorf("dummy error")).Once()
	assert.False(uut.Delete(utCtx, testID))

	testEvents := []models.AuditEvent{
		{ID: uuid.NewString(), EventType: models.AuditEventTypeAddNewHaiku},
	}
	mockDatabase.On(
		"ListAuditEvents", mock.AnythingOfType("context.backgroundCtx"), db.AuditEventQueryFilter{},
	).Return(testEvents, nil).Once()
	assert.Equal(testEvents, uut.ListEvents(utCtx, db.AuditEventQueryFilter{}))

	mockDatabase.On(
		"ListAuditEvents", mock.AnythingOfType("context.backgroundCtx"), db.AuditEventQueryFilter{},
	).Return(nil, fmt.Errorf("dummy error")).Once()
	assert.Len(uut.ListEvents(utCtx, db.AuditEventQueryFilter{}), 0)
}

func TestHaikuStorageConnectionHandling(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockDBClient := mockdb.NewClient(t)
	mockDatabase := mockdb.NewDatabase(t)
	passThroughDatabase(mockDBClient, mockDatabase)

	var connectCalls atomic.Int32
	var failConnect atomic.Bool
	failConnect.Store(true)

	uut, err := store.NewHaikuStorage(store.HaikuStorageParams{
		Connect: func(_ context.Context) (db.Client, error) {
			connectCalls.Add(1)
			if failConnect.Load() {
				return nil, fmt.Errorf("dummy error")
			}
			return mockDBClient, nil
		},
	})
	assert.Nil(err)

	// Connection failures turn into defaults
	assert.False(uut.IsAvailable(utCtx))
	assert.Equal(int64(0), uut.Count(utCtx))
	assert.Len(uut.ListRecent(utCtx, 5), 0)
	_, ok := uut.Save(utCtx, "subject", "text", nil)
	assert.False(ok)
	assert.Equal(int32(4), connectCalls.Load())

	// Once connected, the client is reused, even with concurrent first access
	failConnect.Store(false)
	mockDatabase.On(
		"CountHaikus", mock.AnythingOfType("context.backgroundCtx"),
	).Return(int64(1), nil).Times(8)

	wg := sync.WaitGroup{}
	for idx := 0; idx < 8; idx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(int64(1), uut.Count(utCtx))
		}()
	}
	wg.Wait()
	assert.Equal(int32(5), connectCalls.Load())
}

func TestHaikuStorageAutoMigrate(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockDBClient := mockdb.NewClient(t)
	mockDatabase := mockdb.NewDatabase(t)
	passThroughDatabase(mockDBClient, mockDatabase)

	mockDBClient.On(
		"RunSQLInTransaction", mock.AnythingOfType("context.backgroundCtx"), mock.Anything,
	).Return(nil).Once()

	uut, err := store.NewHaikuStorage(store.HaikuStorageParams{
		Connect: func(_ context.Context) (db.Client, error) {
			return mockDBClient, nil
		},
		AutoMigrate: true,
	})
	assert.Nil(err)

	mockDatabase.On(
		"CountHaikus", mock.AnythingOfType("context.backgroundCtx"),
	).Return(int64(0), nil).Twice()
	assert.True(uut.IsAvailable(utCtx))
	assert.True(uut.IsAvailable(utCtx))
}
