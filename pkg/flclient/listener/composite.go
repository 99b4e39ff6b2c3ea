// Package listener assembles the configured JobResultCallbacks into the single
// callback handed to the job orchestrator.
package listener

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/hashicorp/go-multierror"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// CompositeJobResultCallback forwards each notification to every child, in order.
// A panicking child is logged and skipped; the remaining children are still notified.
type CompositeJobResultCallback struct {
	callbacks []port.JobResultCallback
}

// NewCompositeJobResultCallback creates a CompositeJobResultCallback. Nil children are ignored.
func NewCompositeJobResultCallback(callbacks ...port.JobResultCallback) *CompositeJobResultCallback {
	children := make([]port.JobResultCallback, 0, len(callbacks))
	for _, cb := range callbacks {
		if cb != nil {
			children = append(children, cb)
		}
	}
	return &CompositeJobResultCallback{callbacks: children}
}

// Len returns the number of children.
func (c *CompositeJobResultCallback) Len() int {
	return len(c.callbacks)
}

// OnIterationFinished notifies every child.
func (c *CompositeJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	for _, cb := range c.callbacks {
		c.safeCall("OnIterationFinished", cb, func() { cb.OnIterationFinished(modelName, iterationSeq, resultCode) })
	}
}

// OnJobFinished notifies every child.
func (c *CompositeJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	for _, cb := range c.callbacks {
		c.safeCall("OnJobFinished", cb, func() { cb.OnJobFinished(modelName, iterationCount, resultCode) })
	}
}

func (c *CompositeJobResultCallback) safeCall(method string, cb port.JobResultCallback, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Callback %T panicked in %s: %v\n%s", cb, method, r, debug.Stack())
		}
	}()
	fn()
}

// Close closes every child that implements io.Closer and returns the collected errors.
func (c *CompositeJobResultCallback) Close() error {
	var result *multierror.Error
	for _, cb := range c.callbacks {
		closer, ok := cb.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close %T: %w", cb, err))
		}
	}
	return result.ErrorOrNil()
}

var (
	_ port.JobResultCallback = (*CompositeJobResultCallback)(nil)
	_ io.Closer              = (*CompositeJobResultCallback)(nil)
)
