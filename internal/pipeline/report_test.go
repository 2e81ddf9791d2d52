package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

func sampleResult() *RunResult {
	return &RunResult{
		Summary: model.RunSummary{
			RunID:           "run-1",
			Topic:           "mpox",
			Limit:           25,
			StartedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			CompletedAt:     time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC),
			ItemsFetched:    1,
			ClaimsExtracted: 1,
			ClaimIDs:        []string{"p1-c1"},
		},
		Claims: []model.Claim{
			{ID: "p1-c1", ItemID: "p1", Text: "claim", Language: "en", Confidence: 0.9,
				SearchQuery: "claim query https://example.com/?a=1&b=2"},
		},
		Evidence: []model.ClaimEvidence{
			{ClaimID: "p1-c1", Evidence: []model.Evidence{}},
		},
		Verdicts: []model.Verdict{
			{ClaimID: "p1-c1", Label: model.LabelTrue, CitedEvidenceIDs: []string{}, Confidence: 0.8},
		},
	}
}

func TestReportWriter_WritesAllArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	w := NewReportWriter(dir)

	if err := w.Write(sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for _, name := range []string{ClaimsFile, EvidenceFile, VerdictsFile, SummaryFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
		if !json.Valid(data) {
			t.Errorf("%s is not valid JSON", name)
		}
	}
}

func TestReportWriter_NoHTMLEscaping(t *testing.T) {
	dir := t.TempDir()
	if err := NewReportWriter(dir).Write(sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ClaimsFile))
	if err != nil {
		t.Fatalf("read claims: %v", err)
	}

	if strings.Contains(string(data), `&`) {
		t.Error("URLs should not be HTML-escaped in artifacts")
	}
	if !strings.Contains(string(data), "a=1&b=2") {
		t.Error("query string mangled in artifact")
	}
}

func TestReportWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	if err := NewReportWriter(dir).Write(result); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, VerdictsFile))
	if err != nil {
		t.Fatalf("read verdicts: %v", err)
	}

	var verdicts []model.Verdict
	if err := json.Unmarshal(data, &verdicts); err != nil {
		t.Fatalf("decode verdicts: %v", err)
	}
	if len(verdicts) != 1 || verdicts[0].Label != model.LabelTrue {
		t.Errorf("round-tripped verdicts = %+v", verdicts)
	}
}
