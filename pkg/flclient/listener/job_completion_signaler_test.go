package listener_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
)

func TestSignalerReleasesWaiters(t *testing.T) {
	s := listener.NewJobCompletionSignaler()

	_, ok := s.Result()
	assert.False(t, ok)

	s.OnIterationFinished("m", 1, 0)
	select {
	case <-s.Done():
		t.Fatal("iteration notifications must not complete the job")
	default:
	}

	go s.OnJobFinished("m", 5, 0)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("signaler was not released")
	}
	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, model.JobResult{ModelName: "m", IterationCount: 5, ResultCode: 0}, result)
}

func TestSignalerKeepsFirstResult(t *testing.T) {
	s := listener.NewJobCompletionSignaler()

	var wg sync.WaitGroup
	s.OnJobFinished("first", 1, 0)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.OnJobFinished("later", i, 1)
		}(i)
	}
	wg.Wait()

	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, "first", result.ModelName)
}
