package classify

import (
	"encoding/json"
	"strings"
)

// parsedVerdict is the structured response expected from the model
type parsedVerdict struct {
	Label            string   `json:"label"`
	Rationale        string   `json:"rationale"`
	CitedEvidenceIDs []string `json:"cited_evidence_ids"`
	Confidence       float64  `json:"confidence"`
}

// parseResponse extracts a verdict from raw model output. It tries the
// structured JSON form first, then falls back to scanning the prose for an
// explicit TRUE/FALSE statement (reasoning models often wrap their answer
// in text).
func parseResponse(text string) (*parsedVerdict, bool) {
	if v, ok := parseJSON(text); ok {
		return v, true
	}
	return parseLoose(text)
}

// parseJSON decodes the expected JSON object, tolerating code fences and
// surrounding prose.
func parseJSON(text string) (*parsedVerdict, bool) {
	candidate := strings.TrimSpace(text)

	if strings.HasPrefix(candidate, "```") {
		candidate = strings.TrimPrefix(candidate, "```json")
		candidate = strings.TrimPrefix(candidate, "```")
		candidate = strings.TrimSuffix(strings.TrimSpace(candidate), "```")
		candidate = strings.TrimSpace(candidate)
	}

	// Narrow to the outermost object if the model added prose around it
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate = candidate[start : end+1]

	var v parsedVerdict
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	if v.Label == "" {
		return nil, false
	}
	return &v, true
}

// parseLoose scans prose for an explicit verdict, handling negated forms
// like "not false" before committing to a label.
func parseLoose(text string) (*parsedVerdict, bool) {
	lower := strings.ToLower(text)

	label := ""
	switch {
	case strings.Contains(lower, "unverifiable"):
		label = "UNVERIFIABLE"
	case strings.Contains(lower, "false"):
		if strings.Contains(lower, "not false") || strings.Contains(lower, "isn't false") {
			label = "TRUE"
		} else {
			label = "FALSE"
		}
	case strings.Contains(lower, "true"):
		if strings.Contains(lower, "not true") || strings.Contains(lower, "isn't true") {
			label = "FALSE"
		} else {
			label = "TRUE"
		}
	default:
		return nil, false
	}

	return &parsedVerdict{
		Label:     label,
		Rationale: strings.TrimSpace(text),
	}, true
}
