package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// recordingTranslator translates by wrapping the input, recording each call
type recordingTranslator struct {
	calls []string
	err   error
}

func (t *recordingTranslator) Translate(ctx context.Context, text, sourceLang string) (*Result, error) {
	t.calls = append(t.calls, text)
	if t.err != nil {
		return nil, t.err
	}
	return &Result{Text: "(translated)", DetectedLanguage: "hi"}, nil
}

func TestTranslateMixed_AllEnglishShortCircuit(t *testing.T) {
	tr := &recordingTranslator{}

	res, err := TranslateMixed(context.Background(), tr, "fully english text.", "unknown")
	if err != nil {
		t.Fatalf("TranslateMixed failed: %v", err)
	}

	if len(tr.calls) != 0 {
		t.Errorf("translator called for English text: %v", tr.calls)
	}
	if res.Text != "fully english text." {
		t.Errorf("text changed: %q", res.Text)
	}
	if res.DetectedLanguage != "en" {
		t.Errorf("detected = %q, want en", res.DetectedLanguage)
	}
}

func TestTranslateMixed_SplicesForeignSentences(t *testing.T) {
	tr := &recordingTranslator{}
	text := "English intro. यह हिंदी है. English outro."

	res, err := TranslateMixed(context.Background(), tr, text, "hi")
	if err != nil {
		t.Fatalf("TranslateMixed failed: %v", err)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("expected 1 translation call, got %d: %v", len(tr.calls), tr.calls)
	}
	if !strings.Contains(res.Text, "English intro.") || !strings.Contains(res.Text, "English outro.") {
		t.Errorf("English prose not preserved: %q", res.Text)
	}
	if ContainsNonEnglish(res.Text) {
		t.Errorf("foreign text survived splicing: %q", res.Text)
	}
	if res.DetectedLanguage != "hi" {
		t.Errorf("detected = %q, want hi", res.DetectedLanguage)
	}
}

func TestTranslateMixed_ErrorPropagates(t *testing.T) {
	wantErr := errors.New("service down")
	tr := &recordingTranslator{err: wantErr}

	_, err := TranslateMixed(context.Background(), tr, "यह विफल होगा.", "hi")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected translator error, got %v", err)
	}
}

func TestTranslateMixed_NilTranslator(t *testing.T) {
	_, err := TranslateMixed(context.Background(), nil, "यह हिंदी है.", "hi")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage without a translator, got %v", err)
	}

	// English text needs no translator at all
	res, err := TranslateMixed(context.Background(), nil, "english only", "en")
	if err != nil || res.Text != "english only" {
		t.Errorf("English text should pass through: %v, %+v", err, res)
	}
}
