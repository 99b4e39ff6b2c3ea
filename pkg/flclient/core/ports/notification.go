package ports

import (
	"context"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// Notifier is an abstract interface for notifying external systems about job results.
type Notifier interface {
	// NotifyJobFinished notifies about job termination (success or failure).
	NotifyJobFinished(ctx context.Context, result *model.JobResult)
}
