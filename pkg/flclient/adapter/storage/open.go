package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	storageconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/config"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/configbinder"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// ConnectionFactory opens a StorageConnection for one configuration entry.
type ConnectionFactory func(ctx context.Context, cfg storageconfig.StorageConfig, name string) (StorageConnection, error)

var (
	factoryRegistry = make(map[string]ConnectionFactory)
	factoryMutex    sync.RWMutex
)

// RegisterConnectionFactory registers a ConnectionFactory for the given storage type.
func RegisterConnectionFactory(storageType string, factory ConnectionFactory) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	if _, exists := factoryRegistry[storageType]; exists {
		logger.Warnf("Storage factory for type '%s' already registered. Overwriting.", storageType)
	}
	factoryRegistry[storageType] = factory
}

// GetConnectionFactory returns the factory registered for storageType.
func GetConnectionFactory(storageType string) (ConnectionFactory, error) {
	factoryMutex.RLock()
	defer factoryMutex.RUnlock()
	factory, ok := factoryRegistry[storageType]
	if !ok {
		return nil, fmt.Errorf("no storage factory registered for type: %s", storageType)
	}
	return factory, nil
}

// RegisteredTypes returns the registered storage types in sorted order.
func RegisteredTypes() []string {
	factoryMutex.RLock()
	defer factoryMutex.RUnlock()
	types := make([]string, 0, len(factoryRegistry))
	for t := range factoryRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Open creates a connection for storageCfg using the factory registered for its type.
func Open(ctx context.Context, storageCfg storageconfig.StorageConfig, name string) (StorageConnection, error) {
	factory, err := GetConnectionFactory(storageCfg.Type)
	if err != nil {
		return nil, fmt.Errorf("storage connection '%s': %w", name, err)
	}
	conn, err := factory(ctx, storageCfg, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage connection '%s': %w", name, err)
	}
	logger.Debugf("Opened %s storage connection '%s'.", storageCfg.Type, name)
	return conn, nil
}

// DecodeStorageConfig reads the flclient.storage entry called name.
func DecodeStorageConfig(cfg *config.Config, name string) (storageconfig.StorageConfig, error) {
	var storageCfg storageconfig.StorageConfig
	rawConfig, ok := cfg.FLClient.StorageConfigs[name]
	if !ok {
		return storageCfg, fmt.Errorf("storage configuration '%s' not found in flclient.storage", name)
	}
	rawMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return storageCfg, fmt.Errorf("storage configuration '%s' is not a mapping", name)
	}
	if err := configbinder.BindMap(rawMap, &storageCfg); err != nil {
		return storageCfg, fmt.Errorf("failed to decode storage config for '%s': %w", name, err)
	}
	return storageCfg, nil
}

// OpenNamed opens the flclient.storage entry called name.
func OpenNamed(ctx context.Context, cfg *config.Config, name string) (StorageConnection, error) {
	storageCfg, err := DecodeStorageConfig(cfg, name)
	if err != nil {
		return nil, err
	}
	return Open(ctx, storageCfg, name)
}
