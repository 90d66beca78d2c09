package shared

import "context"

// Notifier pushes operational alerts to the configured channel.
// Delivery is best effort: callers log failures but never fail the
// business operation on a notification error.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}
