package logger

import (
	"strings"

	"go.uber.org/fx/fxevent"
)

// FxLoggerAdapter routes fx lifecycle events through this package.
// Wiring progress goes to DEBUG; failures go to ERROR.
type FxLoggerAdapter struct{}

// NewFxLoggerAdapter returns the adapter installed by Module.
func NewFxLoggerAdapter() fxevent.Logger {
	return &FxLoggerAdapter{}
}

// LogEvent implements fxevent.Logger.
func (l *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		Debugf("fx: running OnStart hook %s", ShortFuncName(e.FunctionName))
	case *fxevent.OnStartExecuted:
		logHookResult("OnStart", e.FunctionName, e.Runtime.String(), e.Err)
	case *fxevent.OnStopExecuting:
		Debugf("fx: running OnStop hook %s", ShortFuncName(e.FunctionName))
	case *fxevent.OnStopExecuted:
		logHookResult("OnStop", e.FunctionName, e.Runtime.String(), e.Err)
	case *fxevent.Supplied:
		logWiring("supplied", e.TypeName, e.Err)
	case *fxevent.Provided:
		logWiring("provided", strings.Join(e.OutputTypeNames, ", "), e.Err)
	case *fxevent.Decorated:
		logWiring("decorated", strings.Join(e.OutputTypeNames, ", "), e.Err)
	case *fxevent.Invoking:
		Debugf("fx: invoking %s", ShortFuncName(e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			Errorf("fx: invoke %s failed: %v", ShortFuncName(e.FunctionName), e.Err)
		}
	case *fxevent.Stopping:
		Infof("fx: received %s, stopping.", strings.ToUpper(e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			Errorf("fx: stop failed: %v", e.Err)
		}
	case *fxevent.RollingBack:
		Errorf("fx: start failed, rolling back: %v", e.StartErr)
	case *fxevent.RolledBack:
		if e.Err != nil {
			Errorf("fx: rollback failed: %v", e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			Errorf("fx: start failed: %v", e.Err)
			return
		}
		Infof("Application started.")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			Errorf("fx: custom logger failed: %v", e.Err)
		}
	}
}

func logHookResult(phase, funcName, runtime string, err error) {
	if err != nil {
		Errorf("fx: %s hook %s failed: %v", phase, ShortFuncName(funcName), err)
		return
	}
	Debugf("fx: %s hook %s done in %s", phase, ShortFuncName(funcName), runtime)
}

func logWiring(verb, what string, err error) {
	if err != nil {
		Errorf("fx: %s %s failed: %v", verb, what, err)
		return
	}
	Debugf("fx: %s %s", verb, what)
}

// ShortFuncName trims the import path and any closure suffix from a function
// name reported by fx, e.g. "github.com/x/y/listener.NewJobResultCallback.func1"
// becomes "listener.NewJobResultCallback".
func ShortFuncName(funcName string) string {
	if idx := strings.Index(funcName, ".func"); idx != -1 {
		funcName = funcName[:idx]
	}
	if idx := strings.LastIndex(funcName, "/"); idx != -1 {
		funcName = funcName[idx+1:]
	}
	return funcName
}
