package listener_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
	testutil "github.com/tigerroll/flclient/pkg/flclient/test"
)

func newApp(t *testing.T, cfg *config.Config, sink *testutil.CapturingSink, targets ...interface{}) *fxtest.App {
	t.Helper()
	return fxtest.New(t,
		fx.NopLogger,
		fx.Supply(cfg),
		listener.Module,
		fx.Decorate(func(port.LogSink) port.LogSink { return sink }),
		fx.Populate(targets...),
	)
}

func TestModuleDefaultsToLoggingCallback(t *testing.T) {
	sink := testutil.NewCapturingSink()
	var cb port.JobResultCallback
	var signaler *listener.JobCompletionSignaler
	app := newApp(t, config.NewConfig(), sink, &cb, &signaler)
	app.RequireStart()
	defer app.RequireStop()

	cb.OnIterationFinished("lenet", 3, 0)
	cb.OnJobFinished("lenet", 10, -1)

	assert.Equal(t, []string{
		"<FLClient> [onFlJobIterationFinished] modelName: lenet iterationSeq: 3 resultCode: 0",
		"<FLClient> [onFlJobFinished] modelName: lenet iterationCount: 10 resultCode: -1",
	}, sink.Messages())

	result, ok := signaler.Result()
	require.True(t, ok)
	assert.Equal(t, 10, result.IterationCount)
}

func TestModuleBuildsConfiguredListeners(t *testing.T) {
	sink := testutil.NewCapturingSink()
	cfg := config.NewConfig()
	cfg.FLClient.Callback.Listeners = []config.ListenerConfig{
		{Ref: "loggingJobResultCallback"},
		{Ref: "loggingJobResultCallback", Properties: map[string]string{"tag": "[second] "}},
	}
	var cb port.JobResultCallback
	app := newApp(t, cfg, sink, &cb)
	app.RequireStart()
	defer app.RequireStop()

	cb.OnJobFinished("m", 1, 0)

	assert.Equal(t, []string{
		"<FLClient> [onFlJobFinished] modelName: m iterationCount: 1 resultCode: 0",
		"[second] [onFlJobFinished] modelName: m iterationCount: 1 resultCode: 0",
	}, sink.Messages())
}

func TestModuleFailsOnUnknownRef(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FLClient.Callback.Listeners = []config.ListenerConfig{{Ref: "noSuchCallback"}}
	var cb port.JobResultCallback

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		listener.Module,
		fx.Populate(&cb),
	)

	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noSuchCallback")
	_ = app.Stop(context.Background())
}
