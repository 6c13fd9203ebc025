package match

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	derr "github.com/footydigest/matchday/internal/errors"
)

// UnknownName is shown in place of a missing team or competition name.
const UnknownName = "Unknown"

// Team is the subset of a football-data.org team object the digest uses.
type Team struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
}

// Competition is the subset of a football-data.org competition object the digest uses.
type Competition struct {
	ID   int64  `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// Match represents one element of the provider's "matches" array.
// Nested objects are pointers so that absence can be told apart from an empty value.
type Match struct {
	ID          int64        `json:"id,omitempty"`
	Status      string       `json:"status,omitempty"`
	UTCDate     string       `json:"utcDate"`
	HomeTeam    *Team        `json:"homeTeam,omitempty"`
	AwayTeam    *Team        `json:"awayTeam,omitempty"`
	Competition *Competition `json:"competition,omitempty"`
}

// Decode parses a single raw match record.
func Decode(raw json.RawMessage) (Match, error) {
	var m Match
	if err := json.Unmarshal(raw, &m); err != nil {
		return Match{}, fmt.Errorf("%w: %v", derr.ErrMalformedRecord, err)
	}
	return m, nil
}

// HomeName returns the home team name or UnknownName.
func (m Match) HomeName() string {
	if m.HomeTeam == nil {
		return UnknownName
	}
	return nameOrUnknown(m.HomeTeam.Name)
}

// AwayName returns the away team name or UnknownName.
func (m Match) AwayName() string {
	if m.AwayTeam == nil {
		return UnknownName
	}
	return nameOrUnknown(m.AwayTeam.Name)
}

// CompetitionName returns the competition name or UnknownName.
func (m Match) CompetitionName() string {
	if m.Competition == nil {
		return UnknownName
	}
	return nameOrUnknown(m.Competition.Name)
}

// Kickoff parses the record's UTC timestamp.
func (m Match) Kickoff() (time.Time, error) {
	return ParseKickoff(m.UTCDate)
}

func nameOrUnknown(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownName
	}
	return name
}
