package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

// Classifier turns a claim plus its gathered evidence into a verdict.
// With no evidence it returns UNVERIFIABLE without touching the model:
// there is nothing to reason over, and the outcome is fixed.
type Classifier struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewClassifier creates a verdict classifier
func NewClassifier(provider llm.Provider, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{provider: provider, logger: logger}
}

// Classify produces exactly one verdict for the claim. Model parse
// failures are retried once with a stricter prompt and then collapse to
// UNVERIFIABLE; they never surface as errors. Provider transport failures
// do surface, classified for the shared retry policy.
func (c *Classifier) Classify(ctx context.Context, claim model.Claim, evidence []model.Evidence) (*model.Verdict, error) {
	if len(evidence) == 0 {
		return &model.Verdict{
			ClaimID:          claim.ID,
			Label:            model.LabelUnverifiable,
			Rationale:        "No evidence could be gathered for this claim.",
			CitedEvidenceIDs: []string{},
			Confidence:       0,
		}, nil
	}

	verdict, ok, err := c.attempt(ctx, claim, evidence, false)
	if err != nil {
		return nil, err
	}
	if ok {
		return verdict, nil
	}

	c.logger.Debug("classification response unparseable, retrying with strict prompt",
		zap.String("claim", claim.ID))

	verdict, ok, err = c.attempt(ctx, claim, evidence, true)
	if err != nil {
		return nil, err
	}
	if ok {
		return verdict, nil
	}

	return &model.Verdict{
		ClaimID:          claim.ID,
		Label:            model.LabelUnverifiable,
		Rationale:        "The model response could not be parsed into a verdict.",
		CitedEvidenceIDs: []string{},
		Confidence:       0,
		Reason:           model.SkipParseError,
	}, nil
}

// attempt runs one generate-and-parse round. ok is false when the response
// did not yield a usable verdict.
func (c *Classifier) attempt(ctx context.Context, claim model.Claim, evidence []model.Evidence, strict bool) (*model.Verdict, bool, error) {
	system := classificationSystemPrompt
	if strict {
		system = strictSystemPrompt
	}

	resp, err := c.provider.Generate(ctx, llm.GenerateRequest{
		System:      system,
		Prompt:      BuildPrompt(claim, evidence),
		Temperature: 0.1,
	})
	if err != nil {
		return nil, false, err
	}

	parsed, ok := parseResponse(resp.Text)
	if !ok {
		return nil, false, nil
	}

	return &model.Verdict{
		ClaimID:          claim.ID,
		Label:            model.CoerceLabel(parsed.Label),
		Rationale:        parsed.Rationale,
		CitedEvidenceIDs: validCitations(parsed.CitedEvidenceIDs, evidence),
		Confidence:       clamp01(parsed.Confidence),
	}, true, nil
}

// validCitations keeps only ids that refer to evidence actually shown to
// the model; an empty or fully invalid list falls back to citing all of it.
func validCitations(cited []string, evidence []model.Evidence) []string {
	known := make(map[string]bool, len(evidence))
	for _, e := range evidence {
		known[e.ID] = true
	}

	var valid []string
	for _, id := range cited {
		if known[id] {
			valid = append(valid, id)
		}
	}

	if len(valid) == 0 {
		valid = make([]string, 0, len(evidence))
		for _, e := range evidence {
			valid = append(valid, e.ID)
		}
	}
	return valid
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
