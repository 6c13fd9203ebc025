package match

import (
	"errors"
	"testing"
	"time"

	derr "github.com/footydigest/matchday/internal/errors"
)

func TestParseKickoff(t *testing.T) {
	want := time.Date(2025, time.January, 1, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		utcDate string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "Z suffix",
			utcDate: "2025-01-01T13:00:00Z",
			want:    want,
		},
		{
			name:    "explicit zero offset",
			utcDate: "2025-01-01T13:00:00+00:00",
			want:    want,
		},
		{
			name:    "non-zero offset normalised to UTC",
			utcDate: "2025-01-01T14:00:00+01:00",
			want:    want,
		},
		{
			name:    "fractional seconds",
			utcDate: "2025-01-01T13:00:00.000Z",
			want:    want,
		},
		{
			name:    "no zone taken as UTC",
			utcDate: "2025-01-01T13:00:00",
			want:    want,
		},
		{
			name:    "no seconds",
			utcDate: "2025-01-01T13:00Z",
			want:    want,
		},
		{
			name:    "surrounding whitespace",
			utcDate: "  2025-01-01T13:00:00Z ",
			want:    want,
		},
		{
			name:    "empty",
			utcDate: "",
			wantErr: true,
		},
		{
			name:    "garbage",
			utcDate: "tomorrow at three",
			wantErr: true,
		},
		{
			name:    "date only",
			utcDate: "2025-01-01",
			wantErr: true,
		},
		{
			name:    "invalid month",
			utcDate: "2025-13-01T13:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKickoff(tt.utcDate)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKickoff(%q) = %v, want error", tt.utcDate, got)
				}
				if !errors.Is(err, derr.ErrMalformedRecord) {
					t.Errorf("ParseKickoff(%q) error = %v, want ErrMalformedRecord", tt.utcDate, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKickoff(%q) unexpected error: %v", tt.utcDate, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseKickoff(%q) = %v, want %v", tt.utcDate, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseKickoff(%q) location = %v, want UTC", tt.utcDate, got.Location())
			}
		})
	}
}

func TestFormatKickoff(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "afternoon",
			in:   time.Date(2025, time.January, 1, 13, 0, 0, 0, time.UTC),
			want: "2025-01-01 02:00 PM NG",
		},
		{
			name: "morning",
			in:   time.Date(2025, time.March, 9, 8, 30, 0, 0, time.UTC),
			want: "2025-03-09 09:30 AM NG",
		},
		{
			name: "noon",
			in:   time.Date(2025, time.June, 15, 11, 0, 0, 0, time.UTC),
			want: "2025-06-15 12:00 PM NG",
		},
		{
			name: "crosses midnight into next day",
			in:   time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC),
			want: "2026-01-01 12:30 AM NG",
		},
		{
			name: "northern summer has no daylight saving shift",
			in:   time.Date(2025, time.July, 20, 19, 45, 0, 0, time.UTC),
			want: "2025-07-20 08:45 PM NG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatKickoff(tt.in); got != tt.want {
				t.Errorf("FormatKickoff(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "midday UTC",
			now:  time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
			want: "2025-01-01",
		},
		{
			name: "late UTC evening is already tomorrow in Lagos",
			now:  time.Date(2024, time.December, 31, 23, 15, 0, 0, time.UTC),
			want: "2025-01-01",
		},
		{
			name: "non-UTC input location",
			now:  time.Date(2025, time.January, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*60*60)),
			want: "2025-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Today(tt.now); got != tt.want {
				t.Errorf("Today(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	_, offset := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC).In(Location()).Zone()
	if offset != 3600 {
		t.Errorf("Africa/Lagos offset = %d, want 3600", offset)
	}
}
