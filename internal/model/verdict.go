package model

import "strings"

// Label is the verification outcome for a claim
type Label string

const (
	LabelTrue         Label = "TRUE"
	LabelFalse        Label = "FALSE"
	LabelUnverifiable Label = "UNVERIFIABLE"
)

// CoerceLabel maps arbitrary model output to the closed label set.
// Anything outside the enumeration becomes UNVERIFIABLE.
func CoerceLabel(s string) Label {
	switch l := Label(strings.ToUpper(strings.TrimSpace(s))); l {
	case LabelTrue, LabelFalse, LabelUnverifiable:
		return l
	default:
		return LabelUnverifiable
	}
}

// Verdict is the final classification of a claim. Exactly one per claim
// that completes the pipeline; immutable after creation.
type Verdict struct {
	ClaimID          string     `json:"claim_id"`
	Label            Label      `json:"label"`
	Rationale        string     `json:"rationale,omitempty"`
	CitedEvidenceIDs []string   `json:"cited_evidence_ids"`
	Confidence       float64    `json:"confidence"`       // Model confidence in [0,1]
	Reason           SkipReason `json:"reason,omitempty"` // Set when the verdict records a failure outcome
}
