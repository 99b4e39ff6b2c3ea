// Package gorm opens GORM connections from DatabaseConfig entries.
// Database drivers register themselves through RegisterDialector; import the
// sqlite, postgres or mysql sub-package to make a type available.
package gorm

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	dbconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/database/config"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// DialectorFactory generates a gorm.Dialector from a dbconfig.DatabaseConfig.
type DialectorFactory func(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error)

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given database type.
func RegisterDialector(dbType string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[dbType]; exists {
		logger.Warnf("Dialector for type '%s' already registered. Overwriting.", dbType)
	}
	dialectorRegistry[dbType] = factory
}

// GetDialectorFactory retrieves the DialectorFactory corresponding to the specified DB type.
func GetDialectorFactory(dbType string) (DialectorFactory, error) {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	factory, ok := dialectorRegistry[dbType]
	if !ok {
		return nil, fmt.Errorf("no dialector registered for database type: %s", dbType)
	}
	return factory, nil
}

// RegisteredTypes returns the registered database types in sorted order.
func RegisteredTypes() []string {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	types := make([]string, 0, len(dialectorRegistry))
	for t := range dialectorRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
