package fixtures

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	derr "github.com/footydigest/matchday/internal/errors"
)

const sampleMatches = `{
	"filters": {"dateFrom": "2025-01-01", "dateTo": "2025-01-01"},
	"resultSet": {"count": 2},
	"matches": [
		{
			"id": 1,
			"utcDate": "2025-01-01T13:00:00Z",
			"status": "TIMED",
			"homeTeam": {"name": "Arsenal FC"},
			"awayTeam": {"name": "Chelsea FC"},
			"competition": {"name": "Premier League"}
		},
		{
			"id": 2,
			"utcDate": "2025-01-01T20:00:00Z",
			"homeTeam": {"name": "Real Madrid CF"},
			"awayTeam": {"name": "FC Barcelona"},
			"competition": {"name": "Primera Division"}
		}
	]
}`

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/matches" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("dateFrom"); got != "2025-01-01" {
			t.Errorf("dateFrom = %q, want 2025-01-01", got)
		}
		if got := r.URL.Query().Get("dateTo"); got != "2025-01-01" {
			t.Errorf("dateTo = %q, want 2025-01-01", got)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "secret-token" {
			t.Errorf("X-Auth-Token = %q, want secret-token", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleMatches))
	}))
	defer server.Close()

	c := New("secret-token", WithBaseURL(server.URL))
	res := c.Fetch(context.Background(), "2025-01-01")

	if res.Err != nil {
		t.Fatalf("Fetch() unexpected error: %v", res.Err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(res.Matches))
	}
	if res.Matches[0].HomeName() != "Arsenal FC" || res.Matches[1].AwayName() != "FC Barcelona" {
		t.Errorf("matches out of order or misdecoded: %+v", res.Matches)
	}
}

func TestFetchToday_UsesLagosDate(t *testing.T) {
	var gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("dateFrom")
		_, _ = w.Write([]byte(`{"matches": []}`))
	}))
	defer server.Close()

	c := New("token", WithBaseURL(server.URL+"/"))
	// 23:30 UTC on Dec 31 is 00:30 on Jan 1 in Lagos.
	res := c.FetchToday(context.Background(), time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC))

	if res.Err != nil {
		t.Fatalf("FetchToday() unexpected error: %v", res.Err)
	}
	if gotDate != "2025-01-01" {
		t.Errorf("dateFrom = %q, want 2025-01-01", gotDate)
	}
	if res.Date != "2025-01-01" {
		t.Errorf("Result.Date = %q, want 2025-01-01", res.Date)
	}
}

func TestFetch_MissingMatchesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultSet": {"count": 0}}`))
	}))
	defer server.Close()

	res := New("token", WithBaseURL(server.URL)).Fetch(context.Background(), "2025-01-01")
	if res.Err != nil {
		t.Fatalf("Fetch() unexpected error: %v", res.Err)
	}
	if res.Matches == nil || len(res.Matches) != 0 {
		t.Errorf("Matches = %#v, want empty non-nil slice", res.Matches)
	}
}

func TestFetch_DropsUndecodableRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matches": [
			"not-a-match",
			{"utcDate": "2025-01-01T13:00:00Z", "homeTeam": {"name": "Arsenal FC"}},
			{"utcDate": 42}
		]}`))
	}))
	defer server.Close()

	res := New("token", WithBaseURL(server.URL)).Fetch(context.Background(), "2025-01-01")
	if res.Err != nil {
		t.Fatalf("Fetch() unexpected error: %v", res.Err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(res.Matches))
	}
	if res.Matches[0].HomeName() != "Arsenal FC" {
		t.Errorf("HomeName() = %q, want Arsenal FC", res.Matches[0].HomeName())
	}
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantKind    error
		wantStatus  int
		wantMessage string
	}{
		{
			name: "forbidden with provider message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message": "The resource you are looking for is restricted.", "errorCode": 403}`))
			},
			wantKind:    derr.ErrUpstream,
			wantStatus:  http.StatusForbidden,
			wantMessage: "restricted",
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte("slow down"))
			},
			wantKind:    derr.ErrUpstream,
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "slow down",
		},
		{
			name: "gateway html page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html><head><title>502 Bad Gateway</title></head><body><h1>nginx</h1></body></html>`))
			},
			wantKind:    derr.ErrUpstream,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "502 Bad Gateway",
		},
		{
			name: "invalid JSON on 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"matches": [`))
			},
			wantKind:   derr.ErrUpstream,
			wantStatus: http.StatusOK,
		},
		{
			name: "matches is not an array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"matches": {"id": 1}}`))
			},
			wantKind:   derr.ErrUpstream,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			res := New("token", WithBaseURL(server.URL)).Fetch(context.Background(), "2025-01-01")

			if !errors.Is(res.Err, tt.wantKind) {
				t.Fatalf("Err = %v, want %v", res.Err, tt.wantKind)
			}
			if res.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", res.StatusCode, tt.wantStatus)
			}
			if res.Matches == nil || len(res.Matches) != 0 {
				t.Errorf("Matches = %#v, want empty non-nil slice", res.Matches)
			}
			if tt.wantMessage != "" && !strings.Contains(res.Err.Error(), tt.wantMessage) {
				t.Errorf("Err = %v, want it to contain %q", res.Err, tt.wantMessage)
			}
		})
	}
}

func TestFetch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	res := New("token", WithBaseURL(baseURL)).Fetch(context.Background(), "2025-01-01")

	if !errors.Is(res.Err, derr.ErrTransport) {
		t.Fatalf("Err = %v, want ErrTransport", res.Err)
	}
	if len(res.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(res.Matches))
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := New("token", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))
	res := c.Fetch(context.Background(), "2025-01-01")

	if !errors.Is(res.Err, derr.ErrTransport) {
		t.Fatalf("Err = %v, want ErrTransport", res.Err)
	}
}

func TestNew_CapsTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want time.Duration
	}{
		{"default", nil, MaxTimeout},
		{"shorter kept", []Option{WithTimeout(3 * time.Second)}, 3 * time.Second},
		{"longer capped", []Option{WithTimeout(time.Minute)}, MaxTimeout},
		{"zero replaced", []Option{WithHTTPClient(&http.Client{})}, MaxTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("token", tt.opts...)
			if c.httpClient.Timeout != tt.want {
				t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, tt.want)
			}
		})
	}
}
