package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/storage/gormstore"
)

// InitMySQL opens the gorm-backed MySQL store from cfg.MySQL and pings it.
func InitMySQL(cfg config.Config) (*gormstore.Store, error) {
	dsn := cfg.MySQL.DSN
	if dsn == "" {
		dsn = cfg.MySQL.DataSourceName()
	}

	store, err := gormstore.Open(dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	return store, nil
}

// mysqlOpener is an indirection used by OpenStore; overridden in tests.
var mysqlOpener = InitMySQL
