package listener_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
	testutil "github.com/tigerroll/flclient/pkg/flclient/test"
)

func TestCompositeForwardsToEveryChild(t *testing.T) {
	a, b := &testutil.RecordingCallback{}, &testutil.RecordingCallback{}
	composite := listener.NewCompositeJobResultCallback(a, nil, b)

	composite.OnIterationFinished("m", 1, 0)
	composite.OnJobFinished("m", 1, 0)

	assert.Equal(t, 2, composite.Len(), "nil children are dropped")
	for _, cb := range []*testutil.RecordingCallback{a, b} {
		assert.Equal(t, []model.IterationResult{{ModelName: "m", IterationSeq: 1, ResultCode: 0}}, cb.Iterations())
		assert.Equal(t, []model.JobResult{{ModelName: "m", IterationCount: 1, ResultCode: 0}}, cb.Jobs())
	}
}

func TestCompositeCallsChildrenInOrder(t *testing.T) {
	first := &testutil.MockJobResultCallback{}
	second := &testutil.MockJobResultCallback{}
	var order []string
	first.On("OnJobFinished", "m", 2, 0).Run(func(mock.Arguments) { order = append(order, "first") }).Once()
	second.On("OnJobFinished", "m", 2, 0).Run(func(mock.Arguments) { order = append(order, "second") }).Once()

	listener.NewCompositeJobResultCallback(first, second).OnJobFinished("m", 2, 0)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCompositeRecoversFromPanickingChild(t *testing.T) {
	after := &testutil.RecordingCallback{}
	composite := listener.NewCompositeJobResultCallback(testutil.PanickingCallback{}, after)

	assert.NotPanics(t, func() {
		composite.OnIterationFinished("m", 1, 0)
		composite.OnJobFinished("m", 1, 0)
	})
	assert.Len(t, after.Iterations(), 1)
	assert.Len(t, after.Jobs(), 1)
}

func TestCompositeCloseAggregatesErrors(t *testing.T) {
	ok := &testutil.ClosingCallback{}
	failing1 := &testutil.ClosingCallback{Err: errors.New("close one")}
	failing2 := &testutil.ClosingCallback{Err: errors.New("close two")}
	composite := listener.NewCompositeJobResultCallback(ok, &testutil.RecordingCallback{}, failing1, failing2)

	err := composite.Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close one")
	assert.Contains(t, err.Error(), "close two")
	assert.Equal(t, 1, ok.Closed())
	assert.Equal(t, 1, failing1.Closed())
	assert.Equal(t, 1, failing2.Closed())
}

func TestCompositeCloseWithoutClosers(t *testing.T) {
	composite := listener.NewCompositeJobResultCallback(&testutil.RecordingCallback{})
	assert.NoError(t, composite.Close())
}
