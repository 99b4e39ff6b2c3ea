// Package notification reports finished jobs to a ports.Notifier.
package notification

import (
	"context"
	"fmt"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	"github.com/tigerroll/flclient/pkg/flclient/core/ports"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// LoggingNotifier is a Notifier that only logs notifications.
// Success codes are logged at INFO, every other code at WARN.
type LoggingNotifier struct {
	successCodes map[int]struct{}
}

// NewLoggingNotifier creates a LoggingNotifier. An empty successCodes treats only 0 as success.
func NewLoggingNotifier(successCodes []int) *LoggingNotifier {
	if len(successCodes) == 0 {
		successCodes = []int{0}
	}
	codeSet := make(map[int]struct{}, len(successCodes))
	for _, c := range successCodes {
		codeSet[c] = struct{}{}
	}
	return &LoggingNotifier{successCodes: codeSet}
}

// IsSuccess reports whether resultCode is one of the configured success codes.
func (n *LoggingNotifier) IsSuccess(resultCode int) bool {
	_, ok := n.successCodes[resultCode]
	return ok
}

// NotifyJobFinished logs the job result.
func (n *LoggingNotifier) NotifyJobFinished(ctx context.Context, result *model.JobResult) {
	if result == nil {
		return
	}
	message := fmt.Sprintf(
		"Job Notification: Model '%s' finished after %d iterations with result code %d.",
		result.ModelName,
		result.IterationCount,
		result.ResultCode,
	)
	if n.IsSuccess(result.ResultCode) {
		logger.Infof("%s", message)
	} else {
		logger.Warnf("%s", message)
	}
}

var _ ports.Notifier = (*LoggingNotifier)(nil)

// NotificationCallback adapts a Notifier to port.JobResultCallback.
// Iteration notifications are ignored.
type NotificationCallback struct {
	notifier ports.Notifier
}

// NewNotificationCallback creates a NotificationCallback.
func NewNotificationCallback(notifier ports.Notifier) *NotificationCallback {
	return &NotificationCallback{notifier: notifier}
}

// OnIterationFinished does nothing.
func (c *NotificationCallback) OnIterationFinished(string, int, int) {}

// OnJobFinished forwards the job result to the Notifier.
func (c *NotificationCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.notifier.NotifyJobFinished(context.Background(), &model.JobResult{
		ModelName:      modelName,
		IterationCount: iterationCount,
		ResultCode:     resultCode,
	})
}

var _ port.JobResultCallback = (*NotificationCallback)(nil)
