package gcs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/tigerroll/flclient/pkg/flclient/adapter/storage"
	storageconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/config"
	"github.com/tigerroll/flclient/pkg/flclient/adapter/storage/gcs"
)

func TestNewGCSAdapterRequiresBucket(t *testing.T) {
	_, err := gcs.NewGCSAdapter(context.Background(), storageconfig.StorageConfig{Type: gcs.ProviderType}, "archive")
	assert.ErrorContains(t, err, "bucket_name must be specified")
}

func TestClientOptions(t *testing.T) {
	assert.Empty(t, gcs.ClientOptions(storageconfig.StorageConfig{}))
	assert.Len(t, gcs.ClientOptions(storageconfig.StorageConfig{CredentialsFile: "/etc/key.json"}), 1)
	assert.Len(t, gcs.ClientOptions(storageconfig.StorageConfig{Endpoint: "http://localhost:4443/storage/v1/", CredentialsFile: "/etc/key.json"}), 2)
}

// fakeGCS answers the JSON API calls used by ListObjects and DeleteObject.
type fakeGCS struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/b/fl-results/o"):
		_, _ = w.Write([]byte(`{"kind":"storage#objects","items":[{"name":"runs/a.parquet","bucket":"fl-results"},{"name":"runs/b.parquet","bucket":"fl-results"}]}`))
	case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/o/present.parquet"):
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"No such object"}}`))
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newFakeAdapter(t *testing.T) (*fakeGCS, storage.StorageConnection) {
	t.Helper()
	fake := &fakeGCS{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	conn, err := gcs.NewGCSAdapter(context.Background(), storageconfig.StorageConfig{
		Type:       gcs.ProviderType,
		BucketName: "fl-results",
		Endpoint:   srv.URL + "/storage/v1/",
	}, "archive")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return fake, conn
}

func TestGCSListObjects(t *testing.T) {
	_, conn := newFakeAdapter(t)
	assert.Equal(t, "gcs", conn.Type())
	assert.Equal(t, "archive", conn.Name())

	var names []string
	require.NoError(t, conn.ListObjects(context.Background(), "", "runs/", func(name string) error {
		names = append(names, name)
		return nil
	}))
	assert.Equal(t, []string{"runs/a.parquet", "runs/b.parquet"}, names)
}

func TestGCSDeleteObject(t *testing.T) {
	fake, conn := newFakeAdapter(t)
	ctx := context.Background()

	require.NoError(t, conn.DeleteObject(ctx, "", "present.parquet"))
	assert.NoError(t, conn.DeleteObject(ctx, "", "missing.parquet"), "missing objects are ignored")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.requests, 2)
	assert.Equal(t, "DELETE /storage/v1/b/fl-results/o/present.parquet", fake.requests[0])
}
