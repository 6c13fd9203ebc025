// Package job runs one daily digest: check credentials, fetch today's
// fixtures, format them and deliver the message.
//
// A run never fails because of the network. Fetch and send failures are
// logged and recorded in the Report; only missing credentials end a run
// early with an error.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/footydigest/matchday/internal/config"
	"github.com/footydigest/matchday/internal/fixtures"
	"github.com/footydigest/matchday/internal/logger"
	"github.com/footydigest/matchday/internal/notifier"
	"github.com/footydigest/matchday/internal/telegram"
)

// Fetcher returns the fixtures scheduled on now's Africa/Lagos date.
type Fetcher interface {
	FetchToday(ctx context.Context, now time.Time) fixtures.Result
}

// WebhookResetter clears a webhook registered on the messaging bot.
type WebhookResetter interface {
	DeleteWebhook(ctx context.Context) error
}

// Report describes what a run did.
type Report struct {
	RunAt       time.Time
	Date        string
	Fetched     int
	Lines       []string
	Message     string
	Channel     string
	Attempted   bool
	Sent        bool
	AlreadySent bool
	FetchErr    error
	SendErr     error
	WebhookErr  error
}

// Runner wires the fetch, format and send stages together.
type Runner struct {
	creds   config.Credentials
	fetcher Fetcher
	primary notifier.Notifier
	webhook WebhookResetter
	extra   []notifier.Notifier
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithWebhookResetter clears the bot's webhook before sending.
func WithWebhookResetter(w WebhookResetter) Option {
	return func(r *Runner) {
		r.webhook = w
	}
}

// WithExtraNotifiers adds best-effort channels that receive the digest after the primary one.
func WithExtraNotifiers(n ...notifier.Notifier) Option {
	return func(r *Runner) {
		r.extra = append(r.extra, n...)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner.
func New(creds config.Credentials, fetcher Fetcher, primary notifier.Notifier, opts ...Option) *Runner {
	r := &Runner{
		creds:   creds,
		fetcher: fetcher,
		primary: primary,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one digest run. When alreadySent is true nothing is fetched
// or sent. The returned error is non-nil only for missing credentials, in
// which case no collaborator has been called.
func (r *Runner) Run(ctx context.Context, alreadySent bool) (Report, error) {
	report := Report{RunAt: r.now()}

	if err := r.creds.Validate(); err != nil {
		logger.Error("Missing required credentials, aborting before any request", logger.Fields{
			"missing": r.creds.Missing(),
		}, err)
		return report, err
	}

	if alreadySent {
		report.AlreadySent = true
		logger.Warn("Digest already sent or attempted in this process, skipping", nil)
		return report, nil
	}

	logger.Info("Starting digest run", nil)

	if r.webhook != nil {
		if err := r.webhook.DeleteWebhook(ctx); err != nil {
			report.WebhookErr = err
			logger.Warn("Webhook reset failed, continuing", logger.Fields{"error": err.Error()})
		} else {
			logger.Debug("Webhook reset", nil)
		}
	}

	res := r.fetcher.FetchToday(ctx, report.RunAt)
	report.Date = res.Date
	report.Fetched = len(res.Matches)
	report.FetchErr = res.Err

	report.Lines = telegram.FormatMatches(res.Matches)
	report.Message = telegram.FormatDigest(report.Lines)
	logger.Info("Digest built", logger.Fields{
		"date":      report.Date,
		"fetched":   report.Fetched,
		"formatted": len(report.Lines),
	})

	report.Channel = r.primary.Name()
	// A failed send may still have been delivered, so the attempt itself
	// counts toward the already-sent guard.
	report.Attempted = true
	if err := r.primary.Notify(ctx, report.Message); err != nil {
		report.SendErr = err
		logger.IncrCounter("digest.send_failed")
		logger.Error("Sending digest failed", logger.Fields{"channel": report.Channel}, err)
	} else {
		report.Sent = true
		logger.IncrCounter("digest.sent")
		logger.Info("Digest sent", logger.Fields{"channel": report.Channel})
	}

	for _, n := range r.extra {
		if err := n.Notify(ctx, report.Message); err != nil {
			logger.Warn("Extra channel failed", logger.Fields{"channel": n.Name(), "error": err.Error()})
			continue
		}
		logger.Info("Digest cross-posted", logger.Fields{"channel": n.Name()})
	}

	logger.Info("Digest run done", logger.Fields{"sent": report.Sent})
	return report, nil
}

// Summary returns a one-line description of the report.
func (r Report) Summary() string {
	switch {
	case r.AlreadySent:
		return "digest already sent, nothing to do"
	case r.Sent:
		return fmt.Sprintf("sent %d of %d fixtures for %s via %s", len(r.Lines), r.Fetched, r.Date, r.Channel)
	default:
		return fmt.Sprintf("digest for %s not sent via %s", r.Date, r.Channel)
	}
}
