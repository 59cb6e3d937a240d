// Package haiku - generated haiku storage
package haiku

import (
	"context"
	"fmt"

	"github.com/alwitt/haiku/config"
	"github.com/alwitt/haiku/db"
	"github.com/alwitt/haiku/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
NewHaikuStorage initialize a haiku storage service instance.

The store connection is only opened on first use of the service.

	@param dbDialector gorm.Dialector - GORM dialector
	@param dbLogLevel logger.LogLevel - SQL log level
	@param retryParams db.ConnectionRetryParams - store connection retry settings
	@param autoMigrate bool - whether to define the tables on first connect
	@returns new storage service instance
*/
func NewHaikuStorage(
	dbDialector gorm.Dialector,
	dbLogLevel logger.LogLevel,
	retryParams db.ConnectionRetryParams,
	autoMigrate bool,
) (store.HaikuStorage, error) {
	storage, err := store.NewHaikuStorage(store.HaikuStorageParams{
		Connect: func(ctx context.Context) (db.Client, error) {
			return db.NewConnectionWithRetry(ctx, dbDialector, dbLogLevel, retryParams)
		},
		AutoMigrate: autoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialized haiku storage [%w]", err)
	}
	return storage, nil
}

/*
NewHaikuStorageFromConfig initialize a haiku storage service instance from configuration.

	@param cfg config.StoreConfig - store configuration
	@returns new storage service instance, or nil if persistence is not configured
*/
func NewHaikuStorageFromConfig(cfg config.StoreConfig) (store.HaikuStorage, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StoreDriverSqlite:
		dialector = db.GetSqliteDialector(cfg.DSN)
	case config.StoreDriverPostgres:
		dialector = db.GetPostgresDialector(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver '%s'", cfg.Driver)
	}

	return NewHaikuStorage(
		dialector,
		cfg.GORMLogLevel(),
		db.ConnectionRetryParams{Attempts: cfg.ConnectAttempts, Delay: cfg.ConnectRetryDelay},
		cfg.AutoMigrate,
	)
}
