package translate

import (
	"regexp"
	"strings"
	"unicode"
)

var nonASCIIPattern = regexp.MustCompile(`[^\x00-\x7F]`)

// ContainsNonEnglish reports whether text carries any non-ASCII characters.
// Same coarse signal the scraping side uses to decide whether a post needs
// the translator at all.
func ContainsNonEnglish(text string) bool {
	return nonASCIIPattern.MatchString(text)
}

// Sentences containing at least one non-ASCII run, up to a terminator.
var foreignSentencePattern = regexp.MustCompile(`[^.!?]*[^\x00-\x7F]+[^.!?]*[.!?]`)

// ExtractNonEnglishSentences returns the sentences of text that contain
// foreign characters. Trailing foreign text without a sentence terminator
// is included as a final fragment.
func ExtractNonEnglishSentences(text string) []string {
	sentences := foreignSentencePattern.FindAllString(text, -1)

	remaining := foreignSentencePattern.ReplaceAllString(text, "")
	if ContainsNonEnglish(remaining) {
		sentences = append(sentences, strings.TrimSpace(remaining))
	}

	return sentences
}

// DetectLanguage makes a cheap script-range guess at the language of text.
// Pure-ASCII text is assumed to be the working language; recognized scripts
// map to a representative language code; anything else is "unknown". The
// translation service's own detection is authoritative, this only feeds
// the short-circuit decision.
func DetectLanguage(text string) string {
	if !ContainsNonEnglish(text) {
		return "en"
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			return "hi"
		case unicode.Is(unicode.Bengali, r):
			return "bn"
		case unicode.Is(unicode.Tamil, r):
			return "ta"
		case unicode.Is(unicode.Telugu, r):
			return "te"
		case unicode.Is(unicode.Gujarati, r):
			return "gu"
		case unicode.Is(unicode.Gurmukhi, r):
			return "pa"
		case unicode.Is(unicode.Kannada, r):
			return "kn"
		case unicode.Is(unicode.Malayalam, r):
			return "ml"
		case unicode.Is(unicode.Arabic, r):
			return "ar"
		case unicode.Is(unicode.Cyrillic, r):
			return "ru"
		case unicode.Is(unicode.Han, r):
			return "zh"
		}
	}

	return "unknown"
}
