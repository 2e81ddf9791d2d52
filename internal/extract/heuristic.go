package extract

import (
	"regexp"
	"strings"
)

// Keywords that mark a sentence as likely carrying a checkable assertion
var claimKeywords = []string{
	"according to", "officials", "reported", "confirmed", "announced",
	"claimed", "stated", "originated", "first", "invented", "discovered",
	"killed", "died", "banned", "approved", "launched", "caused",
	"is true", "is false", "percent", "study", "research",
}

// Per-keyword confidence for heuristic extraction. Attribution markers are
// stronger signals than bare verbs.
func keywordConfidence(keyword string) float64 {
	switch keyword {
	case "according to", "officials", "confirmed", "reported":
		return 0.8
	default:
		return 0.6
	}
}

// extractHeuristic splits text into sentences and keeps the ones matching
// a claim keyword. Used when no model provider is configured and as the
// degraded path when the model reply cannot be parsed.
func extractHeuristic(text string) []modelClaim {
	sentences := splitSentences(text)

	seen := make(map[string]bool)
	var claims []modelClaim
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)

		// Questions are never claims
		if strings.HasSuffix(strings.TrimSpace(sentence), "?") {
			continue
		}

		for _, keyword := range claimKeywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(sentence))
			if !seen[key] {
				seen[key] = true
				claims = append(claims, modelClaim{
					Claim:      strings.TrimSpace(sentence),
					Confidence: keywordConfidence(keyword),
				})
			}
			break // one match per sentence
		}
	}

	return claims
}

// splitSentences breaks text on sentence terminators, keeping only
// fragments long enough to carry an assertion.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(current.String()); len(s) >= 20 && len(s) <= 500 {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); len(s) >= 20 && len(s) <= 500 {
		sentences = append(sentences, s)
	}

	return sentences
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// FallbackQuery derives a short search query from claim text when the
// model did not supply one: the first few key terms, stopwords dropped.
func FallbackQuery(claimText string) string {
	stopwords := map[string]bool{
		"the": true, "a": true, "an": true, "is": true, "are": true,
		"was": true, "were": true, "to": true, "of": true, "in": true,
		"on": true, "at": true, "and": true, "or": true, "that": true,
		"this": true, "it": true, "has": true, "have": true, "been": true,
	}

	var terms []string
	for _, w := range wordPattern.FindAllString(claimText, -1) {
		if stopwords[strings.ToLower(w)] {
			continue
		}
		terms = append(terms, w)
		if len(terms) == 5 {
			break
		}
	}

	if len(terms) == 0 {
		return claimText
	}
	return strings.Join(terms, " ")
}
