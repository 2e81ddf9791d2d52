package translate

import (
	"context"
	"errors"
	"strings"
)

// ErrUnsupportedLanguage signals a language the service cannot translate.
// Permanent: the claim becomes unverifiable instead of being retried.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Result is a completed translation
type Result struct {
	Text             string // Working-language text
	DetectedLanguage string // Language the service detected for the input
}

// Translator is the translation-service boundary. The caller owns the
// already-working-language short-circuit; implementations are only ever
// invoked for text that actually needs translating.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang string) (*Result, error)
}

// TranslateMixed translates a text that may interleave working-language and
// foreign sentences. Foreign sentences are translated individually and
// spliced back in place, so surrounding working-language prose survives
// untouched. Fully working-language text is returned as-is without a
// service call.
func TranslateMixed(ctx context.Context, tr Translator, text, sourceLang string) (*Result, error) {
	if !ContainsNonEnglish(text) {
		return &Result{Text: text, DetectedLanguage: "en"}, nil
	}
	if tr == nil {
		return nil, ErrUnsupportedLanguage
	}

	sentences := ExtractNonEnglishSentences(text)
	if len(sentences) == 0 {
		// Foreign characters but no extractable sentences: translate whole text
		return tr.Translate(ctx, text, sourceLang)
	}

	translated := text
	detected := ""
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		res, err := tr.Translate(ctx, sentence, sourceLang)
		if err != nil {
			return nil, err
		}
		translated = strings.Replace(translated, sentence, res.Text, 1)
		if detected == "" {
			detected = res.DetectedLanguage
		}
	}

	if detected == "" {
		detected = sourceLang
	}
	return &Result{Text: translated, DetectedLanguage: detected}, nil
}
