package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/footydigest/matchday/internal/config"
)

const tweetLimit = 280

// TwitterNotifier cross-posts the digest to Twitter
type TwitterNotifier struct {
	client     *twitter.Client
	httpClient *http.Client
}

type twitterOptions struct {
	base    *http.Client
	timeout time.Duration
}

// TwitterOption configures a TwitterNotifier.
type TwitterOption func(*twitterOptions)

// WithTwitterHTTPClient sets the client whose transport carries the signed requests.
func WithTwitterHTTPClient(hc *http.Client) TwitterOption {
	return func(o *twitterOptions) {
		o.base = hc
	}
}

// WithTwitterTimeout sets the request timeout, capped at config.MaxTimeout.
func WithTwitterTimeout(d time.Duration) TwitterOption {
	return func(o *twitterOptions) {
		o.timeout = d
	}
}

// NewTwitterNotifier creates a new Twitter notifier from OAuth1 credentials.
func NewTwitterNotifier(cfg config.TwitterConfig, opts ...TwitterOption) (*TwitterNotifier, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	o := twitterOptions{timeout: config.MaxTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 || o.timeout > config.MaxTimeout {
		o.timeout = config.MaxTimeout
	}

	ctx := oauth1.NoContext
	if o.base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, o.base)
	}

	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := oauthCfg.Client(ctx, token)
	// oauth1 only borrows the base client's transport, never its timeout.
	httpClient.Timeout = o.timeout

	return &TwitterNotifier{
		client:     twitter.NewClient(httpClient),
		httpClient: httpClient,
	}, nil
}

// Name identifies the channel in logs.
func (n *TwitterNotifier) Name() string {
	return "twitter"
}

// Notify posts the digest as a single tweet. It returns when ctx is done even
// if the request is still in flight; the client timeout ends the request.
func (n *TwitterNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, _, err := n.client.Statuses.Update(formatTweet(text), nil)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("posting tweet: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("posting tweet: %w", ctx.Err())
	}
}

var markdownStripper = strings.NewReplacer(`\_`, "_", `\*`, "*", "\\`", "`", `\[`, "[", "*", "", "_", "")

// formatTweet strips Telegram Markdown and fits the digest into one tweet
func formatTweet(text string) string {
	tweet := markdownStripper.Replace(text)
	tweet += "\n\n#Football"

	r := []rune(tweet)
	if len(r) > tweetLimit {
		tweet = string(r[:tweetLimit-3]) + "..."
	}
	return tweet
}
