package model

import "time"

// RunSummary aggregates one pipeline invocation.
// Written alongside the three claim-keyed artifacts; unlike them it carries
// a random run id and a completion timestamp, so it is not byte-stable.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	Topic       string    `json:"topic"`
	Limit       int       `json:"limit"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	ItemsFetched    int      `json:"items_fetched"`
	ClaimsExtracted int      `json:"claims_extracted"`
	ClaimIDs        []string `json:"claim_ids"` // Ordered list of processed claims

	Translated      int                `json:"translated"`
	SkippedByReason map[SkipReason]int `json:"skipped_by_reason,omitempty"`
	VerdictsByLabel map[Label]int      `json:"verdicts_by_label,omitempty"`
	StageFailures   map[string]int     `json:"stage_failures,omitempty"` // Retried-then-failed counts per stage

	SkippedItems []SkippedItem `json:"skipped_items,omitempty"`
}

// ClaimEvidence is one row of fact_check_results.json: all evidence
// gathered for a single claim, joinable by claim id.
type ClaimEvidence struct {
	ClaimID  string     `json:"claim_id"`
	Evidence []Evidence `json:"evidence"`
}
