package telegram

import (
	"fmt"
	"time"

	"github.com/footydigest/matchday/internal/logger"
	"github.com/footydigest/matchday/internal/match"
)

// MaxDigestMatches is the number of matches a digest lists.
const MaxDigestMatches = 5

// FormatMatches turns raw match records into at most MaxDigestMatches
// numbered plain-text lines, in input order. Records with a missing or
// unparseable kickoff are skipped and do not consume an ordinal.
func FormatMatches(matches []match.Match) []string {
	return formatMatches(matches, MaxDigestMatches)
}

func formatMatches(matches []match.Match, limit int) []string {
	lines := make([]string, 0, min(len(matches), limit))

	for i, m := range matches {
		if len(lines) == limit {
			break
		}

		kickoff, err := m.Kickoff()
		if err != nil {
			logger.IncrCounter("formatter.skipped")
			logger.Warn("Skipping match with invalid kickoff", logger.Fields{
				"index":    i,
				"match_id": m.ID,
				"utc_date": m.UTCDate,
				"error":    err.Error(),
			})
			continue
		}

		line := FormatMatchLine(len(lines)+1, m, kickoff)
		logger.Debug("Formatted match", logger.Fields{"line": line})
		lines = append(lines, line)
	}

	return lines
}

// FormatMatchLine renders one digest line, e.g.
// "1. Arsenal FC vs Chelsea FC (Premier League) at 2025-01-01 02:00 PM NG".
func FormatMatchLine(ordinal int, m match.Match, kickoff time.Time) string {
	return fmt.Sprintf("%d. %s vs %s (%s) at %s",
		ordinal,
		m.HomeName(),
		m.AwayName(),
		m.CompetitionName(),
		match.FormatKickoff(kickoff),
	)
}
