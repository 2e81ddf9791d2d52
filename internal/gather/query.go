package gather

import (
	"net/url"
	"regexp"
	"strings"
)

const maxQueryLength = 100

var (
	punctPattern = regexp.MustCompile(`[^\w\s]`)
	spacePattern = regexp.MustCompile(`\s+`)
	wordPattern  = regexp.MustCompile(`\b\w+\b`)
)

// SanitizeQuery strips punctuation that trips up news-search APIs and caps
// query length.
func SanitizeQuery(query string) string {
	sanitized := punctPattern.ReplaceAllString(query, " ")
	sanitized = strings.TrimSpace(spacePattern.ReplaceAllString(sanitized, " "))
	if len(sanitized) > maxQueryLength {
		sanitized = strings.TrimSpace(sanitized[:maxQueryLength])
	}
	return sanitized
}

// AlternativeQuery reduces a query to its first few key terms, used as a
// second attempt when the full query finds nothing.
func AlternativeQuery(query string) string {
	terms := wordPattern.FindAllString(query, -1)
	switch {
	case len(terms) >= 3:
		return strings.Join(terms[:3], " ")
	case len(terms) >= 2:
		return strings.Join(terms[:2], " ")
	default:
		return query
	}
}

// NormalizeURL canonicalizes a URL for deduplication: lowercase scheme and
// host, fragment dropped, trailing slash trimmed.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	normalized := parsed.String()
	return strings.TrimSuffix(normalized, "/")
}

// Host returns the lowercase hostname of a URL, without any www prefix
func Host(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
