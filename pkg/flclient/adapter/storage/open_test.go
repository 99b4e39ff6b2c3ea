package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/tigerroll/flclient/pkg/flclient/adapter/storage"
	storageconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/config"
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/gcs"
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/local"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
)

func TestRegisteredTypes(t *testing.T) {
	assert.Equal(t, []string{"gcs", "local"}, storage.RegisteredTypes())
}

func TestOpenUnknownType(t *testing.T) {
	_, err := storage.Open(context.Background(), storageconfig.StorageConfig{Type: "ftp"}, "archive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no storage factory registered for type: ftp")
}

func TestOpenNamedLocal(t *testing.T) {
	baseDir := t.TempDir()
	cfg := config.NewConfig()
	cfg.FLClient.StorageConfigs["archive"] = map[string]interface{}{
		"type":        "local",
		"base_dir":    baseDir,
		"bucket_name": "results",
	}

	conn, err := storage.OpenNamed(context.Background(), cfg, "archive")
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "local", conn.Type())
	assert.Equal(t, "archive", conn.Name())
}

func TestDecodeStorageConfigErrors(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FLClient.StorageConfigs["scalar"] = "gcs"

	_, err := storage.DecodeStorageConfig(cfg, "missing")
	assert.ErrorContains(t, err, "not found in flclient.storage")

	_, err = storage.DecodeStorageConfig(cfg, "scalar")
	assert.ErrorContains(t, err, "is not a mapping")
}

func TestDecodeStorageConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FLClient.StorageConfigs["archive"] = map[string]interface{}{
		"type":             "gcs",
		"bucket_name":      "fl-results",
		"credentials_file": "/etc/gcs/key.json",
	}

	got, err := storage.DecodeStorageConfig(cfg, "archive")
	require.NoError(t, err)
	assert.Equal(t, storageconfig.StorageConfig{
		Type:            "gcs",
		BucketName:      "fl-results",
		CredentialsFile: "/etc/gcs/key.json",
	}, got)
}
