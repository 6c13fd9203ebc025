package notifier

import (
	"context"
	"fmt"
	"io"
)

// DryRunNotifier prints what would be sent without contacting any chat API
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Name identifies the channel in logs.
func (n *DryRunNotifier) Name() string {
	return "dry-run"
}

// Notify prints the message that would be sent
func (n *DryRunNotifier) Notify(_ context.Context, text string) error {
	if _, err := fmt.Fprintf(n.out, "--- Message ---\n%s\n\n(Length: %d characters)\n", text, len(text)); err != nil {
		return fmt.Errorf("writing dry-run output: %w", err)
	}
	return nil
}
