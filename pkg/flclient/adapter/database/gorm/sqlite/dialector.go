// Package sqlite registers the SQLite dialector with the gorm adapter.
package sqlite

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/database/config"
	gormadapter "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm"
)

// DBType is the database type handled by this package.
const DBType = "sqlite"

func init() {
	gormadapter.RegisterDialector(DBType, NewDialector)
}

// NewDialector creates a SQLite dialector. Database is the file path, or ":memory:".
func NewDialector(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error) {
	if cfg.Database == "" {
		return nil, errors.New("SQLite database path cannot be empty")
	}
	return sqlite.Open(ConnectionString(cfg)), nil
}

// ConnectionString returns the DSN for cfg. GORM's SQLite dialector expects the file path directly.
func ConnectionString(cfg dbconfig.DatabaseConfig) string {
	return cfg.Database
}
