package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// DigestHeader opens every non-empty digest.
	DigestHeader = "*Today's Top Football Matches*"
	// NoMatchesMessage replaces the digest when no match could be formatted.
	NoMatchesMessage = "No top matches today."
)

// FormatDigest formats the plain match lines as a single Markdown message.
// Lines are escaped so names containing _, *, ` or [ reach the chat verbatim.
func FormatDigest(lines []string) string {
	if len(lines) == 0 {
		return NoMatchesMessage
	}

	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = tgbotapi.EscapeText(tgbotapi.ModeMarkdown, line)
	}
	return DigestHeader + "\n\n" + strings.Join(escaped, "\n")
}
