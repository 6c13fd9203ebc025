package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derr "github.com/footydigest/matchday/internal/errors"
	"github.com/footydigest/matchday/internal/logger"
	"github.com/footydigest/matchday/internal/match"
)

const (
	DefaultBaseURL = "https://api.football-data.org/v4"
	UserAgent      = "matchday/1.0"
	// MaxTimeout bounds every request so a hung provider cannot stall the job.
	MaxTimeout = 10 * time.Second

	authHeader   = "X-Auth-Token"
	maxBodyBytes = 4 << 20
)

// Result is the outcome of one fetch. Matches is never nil.
type Result struct {
	Date       string
	Matches    []match.Match
	StatusCode int
	Err        error
}

// Client fetches fixtures from football-data.org
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
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

// New creates a new fixtures client authenticated with token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
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

// FetchToday fetches the matches scheduled on now's Africa/Lagos date.
func (c *Client) FetchToday(ctx context.Context, now time.Time) Result {
	return c.Fetch(ctx, match.Today(now))
}

// Fetch fetches the matches scheduled on date (YYYY-MM-DD).
func (c *Client) Fetch(ctx context.Context, date string) Result {
	start := time.Now()
	res := c.fetch(ctx, date)
	logger.RecordTiming("fixtures.fetch", time.Since(start))

	fields := logger.Fields{
		"date":   res.Date,
		"status": res.StatusCode,
	}
	if res.Err != nil {
		logger.IncrCounter("fixtures.fetch_failed")
		logger.Error("Fetching fixtures failed", fields, res.Err)
		return res
	}

	fields["count"] = len(res.Matches)
	logger.SetGauge("fixtures.fetched", float64(len(res.Matches)))
	logger.Info("Fetched fixtures", fields)
	return res
}

func (c *Client) fetch(ctx context.Context, date string) Result {
	res := Result{Date: date, Matches: []match.Match{}}

	q := url.Values{}
	q.Set("dateFrom", date)
	q.Set("dateTo", date)
	endpoint := c.baseURL + "/matches?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		res.Err = fmt.Errorf("%w: creating request: %v", derr.ErrTransport, err)
		return res
	}
	req.Header.Set(authHeader, c.token)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("%w: fetching matches: %v", derr.ErrTransport, err)
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		res.Err = fmt.Errorf("%w: reading response: %v", derr.ErrTransport, err)
		return res
	}

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("%w: unexpected status %d: %s",
			derr.ErrUpstream, resp.StatusCode, summarizeBody(resp.Header.Get("Content-Type"), body))
		return res
	}

	matches, err := decodeMatches(body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Matches = matches
	return res
}

// decodeMatches extracts the "matches" array. Elements that cannot be decoded
// are dropped so one bad record does not discard the batch.
func decodeMatches(body []byte) ([]match.Match, error) {
	var envelope struct {
		Matches []json.RawMessage `json:"matches"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", derr.ErrUpstream, err)
	}

	matches := make([]match.Match, 0, len(envelope.Matches))
	for i, raw := range envelope.Matches {
		m, err := match.Decode(raw)
		if err != nil {
			logger.IncrCounter("fixtures.undecodable")
			logger.Warn("Dropping undecodable match record", logger.Fields{"index": i, "error": err.Error()})
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}
