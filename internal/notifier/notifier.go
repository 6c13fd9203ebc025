package notifier

import "context"

// Notifier delivers a finished digest message.
type Notifier interface {
	// Name identifies the channel in logs
	Name() string
	// Notify delivers text once, without retrying
	Notify(ctx context.Context, text string) error
}
