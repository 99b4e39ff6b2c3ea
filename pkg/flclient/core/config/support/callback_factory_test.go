package support_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	testutil "github.com/tigerroll/flclient/pkg/flclient/test"
)

func newConfigWithListeners(refs ...string) *config.Config {
	cfg := config.NewConfig()
	for _, ref := range refs {
		cfg.FLClient.Callback.Listeners = append(cfg.FLClient.Callback.Listeners, config.ListenerConfig{
			Ref:        ref,
			Properties: map[string]string{"name": ref},
		})
	}
	return cfg
}

func TestCreateCallbacksInOrder(t *testing.T) {
	f := support.NewCallbackFactory()
	first, second := &testutil.RecordingCallback{}, &testutil.RecordingCallback{}
	var seenProps []map[string]string
	f.RegisterCallbackBuilder("first", func(_ *config.Config, props map[string]string) (port.JobResultCallback, error) {
		seenProps = append(seenProps, props)
		return first, nil
	})
	f.RegisterCallbackBuilder("second", func(_ *config.Config, props map[string]string) (port.JobResultCallback, error) {
		seenProps = append(seenProps, props)
		return second, nil
	})

	callbacks, err := f.CreateCallbacks(newConfigWithListeners("second", "first", "second"))
	require.NoError(t, err)

	require.Len(t, callbacks, 3)
	assert.Same(t, second, callbacks[0])
	assert.Same(t, first, callbacks[1])
	assert.Same(t, second, callbacks[2])
	assert.Equal(t, "second", seenProps[0]["name"])
	assert.Equal(t, "first", seenProps[1]["name"])
}

func TestCreateCallbacksNoListeners(t *testing.T) {
	f := support.NewCallbackFactory()
	callbacks, err := f.CreateCallbacks(config.NewConfig())
	require.NoError(t, err)
	assert.Empty(t, callbacks)
}

func TestCreateCallbacksUnknownRef(t *testing.T) {
	f := support.NewCallbackFactory()
	_, err := f.CreateCallbacks(newConfigWithListeners("missing"))

	require.Error(t, err)
	assert.True(t, exception.IsCallbackError(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestCreateCallbacksBuilderError(t *testing.T) {
	f := support.NewCallbackFactory()
	buildErr := errors.New("bad property")
	f.RegisterCallbackBuilder("broken", func(*config.Config, map[string]string) (port.JobResultCallback, error) {
		return nil, buildErr
	})

	_, err := f.CreateCallbacks(newConfigWithListeners("broken"))
	require.Error(t, err)
	assert.ErrorIs(t, err, buildErr)
}

func TestRegisterCallbackBuilderOverwrites(t *testing.T) {
	f := support.NewCallbackFactory()
	replacement := &testutil.RecordingCallback{}
	f.RegisterCallbackBuilder("cb", func(*config.Config, map[string]string) (port.JobResultCallback, error) {
		return port.NoOpJobResultCallback{}, nil
	})
	f.RegisterCallbackBuilder("cb", func(*config.Config, map[string]string) (port.JobResultCallback, error) {
		return replacement, nil
	})
	f.RegisterCallbackBuilder("another", func(*config.Config, map[string]string) (port.JobResultCallback, error) {
		return port.NoOpJobResultCallback{}, nil
	})

	callbacks, err := f.CreateCallbacks(newConfigWithListeners("cb"))
	require.NoError(t, err)
	assert.Same(t, replacement, callbacks[0])
	assert.Equal(t, []string{"another", "cb"}, f.RegisteredRefs())
}
