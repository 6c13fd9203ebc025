package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	derr "github.com/footydigest/matchday/internal/errors"
	"github.com/footydigest/matchday/internal/logger"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	// MaxTimeout bounds every Bot API call.
	MaxTimeout = 10 * time.Second
)

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different Bot API server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is still capped at MaxTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.httpClient = &cp
		}
	}
}

// WithTimeout sets the request timeout, capped at MaxTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new Telegram client. Credentials are checked when a
// request is made, not here, so a client can always be constructed.
func NewClient(botToken, chatID string, opts ...Option) *Client {
	c := &Client{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: MaxTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Timeout <= 0 || c.httpClient.Timeout > MaxTimeout {
		c.httpClient.Timeout = MaxTimeout
	}
	return c
}

// Name identifies the channel in logs.
func (c *Client) Name() string {
	return "telegram"
}

// Notify sends text to the configured chat.
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.SendMessage(ctx, text)
}

// SendMessage sends a Markdown text message to the configured chat. It does not retry.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("text", text)
	form.Set("parse_mode", tgbotapi.ModeMarkdown)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	status, err := c.do(req)
	logger.RecordTiming("telegram.send", time.Since(start))

	logger.Info("Telegram sendMessage response", logger.Fields{
		"status": status,
		"length": len(text),
	})
	return err
}

// DeleteWebhook removes any webhook registered for the bot.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	if c.botToken == "" {
		return fmt.Errorf("%w: bot token is required", derr.ErrMissingCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("deleteWebhook"), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	_, err = c.do(req)
	return err
}

func (c *Client) checkCredentials() error {
	var missing []string
	if c.botToken == "" {
		missing = append(missing, "bot token")
	}
	if c.chatID == "" {
		missing = append(missing, "chat ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", derr.ErrMissingCredential, strings.Join(missing, " and "))
	}
	return nil
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
}

// do executes req and decodes the Bot API envelope. It returns the HTTP status
// (0 when no response arrived).
func (c *Client) do(req *http.Request) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which contains the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, fmt.Errorf("%w: sending request: %v", derr.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %v", derr.ErrTransport, err)
	}

	var result tgbotapi.APIResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode != http.StatusOK {
		desc := strings.TrimSpace(string(body))
		if decodeErr == nil && result.Description != "" {
			desc = result.Description
		}
		return resp.StatusCode, fmt.Errorf("%w: telegram API error (status %d): %s", derr.ErrUpstream, resp.StatusCode, desc)
	}

	if decodeErr != nil {
		return resp.StatusCode, fmt.Errorf("%w: parsing response: %v", derr.ErrUpstream, decodeErr)
	}

	if !result.Ok {
		return resp.StatusCode, fmt.Errorf("%w: telegram API error: %s", derr.ErrUpstream, result.Description)
	}

	return resp.StatusCode, nil
}
