package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	dbconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/database/config"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/configbinder"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// Open establishes a GORM connection for dbConfig and applies its pool settings.
// logLevel controls GORM's own logging (e.g., "SILENT", "WARN").
func Open(dbConfig dbconfig.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	dialectorFactory, err := GetDialectorFactory(dbConfig.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to get dialector factory for %s: %w", dbConfig.Type, err)
	}
	dialector, err := dialectorFactory(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialector for %s: %w", dbConfig.Type, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if dbConfig.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.Pool.MaxOpenConns)
	}
	if dbConfig.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.Pool.MaxIdleConns)
	}
	if dbConfig.Pool.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.Pool.ConnMaxLifetimeMinutes) * time.Minute)
	}
	return db, nil
}

// DecodeDatabaseConfig reads the flclient.database entry called name.
func DecodeDatabaseConfig(cfg *config.Config, name string) (dbconfig.DatabaseConfig, error) {
	var dbConfig dbconfig.DatabaseConfig
	rawConfig, ok := cfg.FLClient.AdapterConfigs[name]
	if !ok {
		return dbConfig, fmt.Errorf("database configuration '%s' not found in flclient.database", name)
	}
	rawMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return dbConfig, fmt.Errorf("database configuration '%s' is not a mapping", name)
	}
	if err := configbinder.BindMap(rawMap, &dbConfig); err != nil {
		return dbConfig, fmt.Errorf("failed to decode database config for '%s': %w", name, err)
	}
	return dbConfig, nil
}

// OpenNamed opens the flclient.database entry called name.
// GORM logs only errors unless the application runs at DEBUG.
func OpenNamed(cfg *config.Config, name string) (*gorm.DB, error) {
	dbConfig, err := DecodeDatabaseConfig(cfg, name)
	if err != nil {
		return nil, err
	}
	gormLevel := string(config.LogLevelError)
	if config.LogLevel(cfg.FLClient.System.Logging.Level) == config.LogLevelDebug {
		gormLevel = string(config.LogLevelInfo)
	}
	db, err := Open(dbConfig, gormLevel)
	if err != nil {
		return nil, err
	}
	logger.Infof("Established new DB connection: %s (%s)", name, dbConfig.Type)
	return db, nil
}
