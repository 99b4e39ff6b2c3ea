// Package support provides the CallbackFactory, which turns the configured
// listener references into JobResultCallback instances.
package support

import (
	"sort"
	"sync"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	exception "github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const moduleName = "callback_factory"

// CallbackBuilder creates a JobResultCallback from the application configuration
// and the properties of one listener entry.
type CallbackBuilder func(cfg *config.Config, properties map[string]string) (port.JobResultCallback, error)

// CallbackFactory holds the registered CallbackBuilders.
type CallbackFactory struct {
	builders map[string]CallbackBuilder
	mu       sync.RWMutex
}

// NewCallbackFactory creates an empty CallbackFactory.
func NewCallbackFactory() *CallbackFactory {
	return &CallbackFactory{builders: make(map[string]CallbackBuilder)}
}

// RegisterCallbackBuilder registers builder under name. A later registration replaces an earlier one.
func (f *CallbackFactory) RegisterCallbackBuilder(name string, builder CallbackBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.builders[name]; exists {
		logger.Warnf("CallbackBuilder '%s' already registered. Overwriting.", name)
	}
	f.builders[name] = builder
}

// RegisteredRefs returns the registered builder names in sorted order.
func (f *CallbackFactory) RegisteredRefs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	refs := make([]string, 0, len(f.builders))
	for name := range f.builders {
		refs = append(refs, name)
	}
	sort.Strings(refs)
	return refs
}

// CreateCallbacks builds every listener configured under flclient.callback.listeners, in order.
// An unknown ref or a failing builder aborts the whole build.
func (f *CallbackFactory) CreateCallbacks(cfg *config.Config) ([]port.JobResultCallback, error) {
	listeners := cfg.FLClient.Callback.Listeners
	callbacks := make([]port.JobResultCallback, 0, len(listeners))

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range listeners {
		builder, ok := f.builders[l.Ref]
		if !ok {
			return nil, exception.NewCallbackErrorf(moduleName, "no CallbackBuilder registered for ref '%s'", l.Ref)
		}
		cb, err := builder(cfg, l.Properties)
		if err != nil {
			return nil, exception.NewCallbackErrorf(moduleName, "failed to build callback '%s'", l.Ref, err)
		}
		callbacks = append(callbacks, cb)
		logger.Debugf("CallbackFactory: built callback '%s'.", l.Ref)
	}
	return callbacks, nil
}
