package pipeline

import "github.com/claimlens/claimlens/internal/model"

// State is a claim's position in the verification pipeline. Transitions
// are strictly forward; SKIPPED is reachable from any non-terminal state
// and, like VERDICT_READY, is terminal.
type State string

const (
	StateExtracted         State = "EXTRACTED"
	StateTranslating       State = "TRANSLATING"
	StateTranslated        State = "TRANSLATED"
	StateGatheringEvidence State = "GATHERING_EVIDENCE"
	StateEvidenceReady     State = "EVIDENCE_READY"
	StateClassifying       State = "CLASSIFYING"
	StateVerdictReady      State = "VERDICT_READY"
	StateSkipped           State = "SKIPPED"
)

// stageOrder gives each forward state its position in the sequence
var stageOrder = map[State]int{
	StateExtracted:         0,
	StateTranslating:       1,
	StateTranslated:        2,
	StateGatheringEvidence: 3,
	StateEvidenceReady:     4,
	StateClassifying:       5,
	StateVerdictReady:      6,
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s == StateVerdictReady || s == StateSkipped
}

// CanTransition reports whether moving from s to next is legal
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateSkipped {
		return true
	}
	from, okFrom := stageOrder[s]
	to, okTo := stageOrder[next]
	return okFrom && okTo && to == from+1
}

// claimTrack carries one claim through the pipeline, enforcing legal
// transitions as it goes.
type claimTrack struct {
	claim      model.Claim
	state      State
	evidence   []model.Evidence
	verdict    *model.Verdict
	skipReason model.SkipReason
	skipDetail string

	translated   bool // a translation call actually ran and succeeded
	gatherFailed bool // evidence search hard-failed after retries
}

func newClaimTrack(claim model.Claim) *claimTrack {
	return &claimTrack{claim: claim, state: StateExtracted}
}

// advance moves the track forward one stage. Illegal transitions panic:
// they are programming errors in the orchestrator, not runtime conditions.
func (t *claimTrack) advance(next State) {
	if !t.state.CanTransition(next) {
		panic("illegal claim state transition: " + string(t.state) + " -> " + string(next))
	}
	t.state = next
}

// skip terminates the track with a reason code
func (t *claimTrack) skip(reason model.SkipReason, detail string) {
	if t.state.Terminal() {
		return
	}
	t.state = StateSkipped
	t.skipReason = reason
	t.skipDetail = detail
}

// GetError satisfies worker.Result; claim-level failures are recorded as
// skip reasons, never bubbled as job errors.
func (t *claimTrack) GetError() error { return nil }
