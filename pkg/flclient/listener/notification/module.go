package notification

import (
	"go.uber.org/fx"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/core/ports"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// BuilderName is the listener ref of NotificationCallback.
const BuilderName = "notificationJobResultCallback"

// NewNotifier provides a LoggingNotifier configured with flclient.callback.success_codes.
func NewNotifier(cfg *config.Config) ports.Notifier {
	logger.Infof("Notification: Initializing Logging Notifier.")
	return NewLoggingNotifier(cfg.FLClient.Callback.SuccessCodes)
}

// NewNotificationCallbackBuilder creates a CallbackBuilder for NotificationCallback.
func NewNotificationCallbackBuilder(notifier ports.Notifier) support.CallbackBuilder {
	return func(
		_ *config.Config,
		_ map[string]string,
	) (port.JobResultCallback, error) {
		return NewNotificationCallback(notifier), nil
	}
}

// NotificationCallbackParams defines the dependencies that RegisterNotificationCallback receives from Fx.
type NotificationCallbackParams struct {
	fx.In
	Factory *support.CallbackFactory
	Builder support.CallbackBuilder `name:"notificationJobResultCallback"`
}

// RegisterNotificationCallback registers the notification callback builder with the CallbackFactory.
func RegisterNotificationCallback(p NotificationCallbackParams) {
	p.Factory.RegisterCallbackBuilder(BuilderName, p.Builder)
	logger.Debugf("Notification callback registered with CallbackFactory.")
}

// Module provides notification-related components.
var Module = fx.Options(
	fx.Provide(NewNotifier),
	fx.Provide(fx.Annotate(NewNotificationCallbackBuilder, fx.ResultTags(`name:"notificationJobResultCallback"`))),
	fx.Invoke(RegisterNotificationCallback),
)
