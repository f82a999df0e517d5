package linklist

import (
	"net/url"
	"strings"
)

// Link is one entry in a room's link collection. Label is the heading
// line the link appeared under (colon included), or "" for links that
// appeared before any heading.
type Link struct {
	URL         string
	Label       string
	Description string
}

// ParseResult holds the outcome of parsing a links form field.
// Links are the accepted entries in source order; BadLines carries one
// message per rejected line, also in source order.
type ParseResult struct {
	Links    []Link
	BadLines []string
}

// Messages appended to a rejected line, surfaced verbatim to the user.
const (
	msgBadURL       = " Could not parse link. Try copying the link from your browser's search bar"
	msgDuplicateURL = " Duplicate urls are not accepted. Delete this line and resubmit the form"
	msgUnrecognized = " This line is not recognized as a link or label"
)

// Parse scans the raw textarea content one line at a time. A line
// ending in ":" becomes the current label for the links that follow,
// blank lines are skipped, and "[description](url)" lines become
// links. Everything else is rejected. Parsing never fails as a whole;
// every problem becomes a BadLines entry and later lines are still
// processed. No two accepted links share a URL.
func Parse(text string) ParseResult {
	var result ParseResult
	currentLabel := ""
	seenURLs := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasSuffix(line, ":"):
			currentLabel = line
		case strings.TrimSpace(line) == "":
			// skip
		case strings.HasPrefix(line, "[") && strings.Contains(line, "](") && strings.HasSuffix(line, ")"):
			sep := strings.Index(line, "](")
			description := line[1:sep]
			rawURL := line[sep+2 : len(line)-1]
			if !validURL(rawURL) {
				result.BadLines = append(result.BadLines, line+msgBadURL)
			} else if seenURLs[rawURL] {
				result.BadLines = append(result.BadLines, line+msgDuplicateURL)
			} else {
				result.Links = append(result.Links, Link{
					URL:         rawURL,
					Label:       currentLabel,
					Description: description,
				})
				seenURLs[rawURL] = true
			}
		default:
			result.BadLines = append(result.BadLines, line+msgUnrecognized)
		}
	}

	return result
}

// validURL requires a scheme, a host and a path. A bare
// "http://example.com" has no path component and is rejected; links
// copied from a browser's address bar always carry at least "/".
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && u.Path != ""
}
