package fixtures

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSummaryLen = 200

// summarizeBody reduces an error response to one short line for logging.
// football-data.org answers errors with {"message": ...}; gateways in front of
// it answer with HTML pages.
func summarizeBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "(empty body)"
	}

	if strings.Contains(contentType, "json") || trimmed[0] == '{' {
		var apiErr struct {
			Message   string `json:"message"`
			ErrorCode int    `json:"errorCode"`
		}
		if err := json.Unmarshal(trimmed, &apiErr); err == nil && apiErr.Message != "" {
			return truncate(apiErr.Message)
		}
	}

	if strings.Contains(contentType, "html") || trimmed[0] == '<' {
		if text := htmlText(trimmed); text != "" {
			return truncate(text)
		}
	}

	return truncate(collapseSpace(string(trimmed)))
}

// htmlText returns the page title, or the visible body text when there is none.
func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if title := collapseSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	doc.Find("script, style").Remove()
	return collapseSpace(doc.Find("body").Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxSummaryLen {
		return s
	}
	return string(r[:maxSummaryLen-3]) + "..."
}
