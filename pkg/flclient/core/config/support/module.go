package support

import "go.uber.org/fx"

// Module provides the CallbackFactory.
var Module = fx.Options(
	fx.Provide(NewCallbackFactory),
)
