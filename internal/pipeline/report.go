package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/claimlens/claimlens/internal/model"
)

// Artifact file names, fixed so downstream tooling can join on them.
const (
	ClaimsFile   = "verified_claims.json"
	EvidenceFile = "fact_check_results.json"
	VerdictsFile = "fact_check_classification_results.json"
	SummaryFile  = "run_summary.json"
)

// ReportWriter persists one run's artifacts under a results directory and
// prints a human summary to stdout. The three claim-keyed artifacts are
// encoded deterministically; run_summary.json carries the run id and wall
// clock and is the only file expected to differ between identical runs.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a writer rooted at dir
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Write stores all four artifacts, creating the directory if needed
func (w *ReportWriter) Write(result *RunResult) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	files := []struct {
		name string
		data interface{}
	}{
		{ClaimsFile, result.Claims},
		{EvidenceFile, result.Evidence},
		{VerdictsFile, result.Verdicts},
		{SummaryFile, result.Summary},
	}

	for _, f := range files {
		if err := w.writeJSON(f.name, f.data); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeJSON(name string, data interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// RenderSummary prints a compact run report to stdout
func (w *ReportWriter) RenderSummary(result *RunResult) {
	s := result.Summary

	fmt.Printf("\nRun %s  topic=%q\n", s.RunID, s.Topic)
	fmt.Printf("  items fetched:    %d\n", s.ItemsFetched)
	fmt.Printf("  claims extracted: %d\n", s.ClaimsExtracted)
	fmt.Printf("  translated:       %d\n", s.Translated)

	if len(s.VerdictsByLabel) > 0 {
		fmt.Println("  verdicts:")
		for _, label := range []model.Label{model.LabelTrue, model.LabelFalse, model.LabelUnverifiable} {
			if n := s.VerdictsByLabel[label]; n > 0 {
				fmt.Printf("    %-13s %d\n", label, n)
			}
		}
	}

	if len(s.SkippedByReason) > 0 {
		reasons := make([]string, 0, len(s.SkippedByReason))
		for r := range s.SkippedByReason {
			reasons = append(reasons, string(r))
		}
		sort.Strings(reasons)
		fmt.Println("  skipped:")
		for _, r := range reasons {
			fmt.Printf("    %-24s %d\n", r, s.SkippedByReason[model.SkipReason(r)])
		}
	}

	if len(s.StageFailures) > 0 {
		stages := make([]string, 0, len(s.StageFailures))
		for st := range s.StageFailures {
			stages = append(stages, st)
		}
		sort.Strings(stages)
		fmt.Println("  stage failures:")
		for _, st := range stages {
			fmt.Printf("    %-24s %d\n", st, s.StageFailures[st])
		}
	}

	fmt.Printf("  results dir:      %s\n", w.dir)
}
