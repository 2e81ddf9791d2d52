package classify

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

const classificationSystemPrompt = `You are a fact-checking assistant. Analyze the claim against the provided evidence and decide whether it is TRUE, FALSE, or UNVERIFIABLE.
Base your verdict only on the evidence shown; if the evidence is insufficient or contradictory without resolution, answer UNVERIFIABLE.
Respond with a JSON object only:
{"label": "TRUE|FALSE|UNVERIFIABLE", "rationale": "<2-4 sentences>", "cited_evidence_ids": ["<id>", ...], "confidence": <0.0-1.0>}`

const strictSystemPrompt = `You are a fact-checking assistant. Respond with EXACTLY one JSON object and nothing else - no reasoning outside the JSON, no code fences, no extra text.
The object must have these keys: "label" (one of "TRUE", "FALSE", "UNVERIFIABLE"), "rationale" (string), "cited_evidence_ids" (array of evidence id strings), "confidence" (number 0-1).`

// Rough token budget for the evidence section of the prompt, using the
// chars/4 approximation. Keeps the combined prompt inside small-model
// context windows.
const evidenceTokenBudget = 6000

// BuildPrompt renders the claim and evidence into the user prompt.
// Evidence is numbered by id so citations can be validated on the way back.
func BuildPrompt(claim model.Claim, evidence []model.Evidence) string {
	var b strings.Builder

	claimText := claim.TranslatedText
	if claimText == "" {
		claimText = claim.Text
	}

	fmt.Fprintf(&b, "Claim: %s\n\nEvidence:\n", claimText)

	perItem := evidenceTokenBudget
	if len(evidence) > 0 {
		perItem = evidenceTokenBudget / len(evidence)
	}

	for _, e := range evidence {
		body := e.Content
		if body == "" {
			body = e.Snippet
		}
		body = truncateTokens(body, perItem)

		fmt.Fprintf(&b, "--- [%s] (%s tier) ---\nSource: %s\nTitle: %s\n%s\n\n",
			e.ID, e.Tier, e.SourceName, e.Title, body)
	}

	b.WriteString("Classify the claim against this evidence.")
	return b.String()
}

// truncateTokens caps text at approximately maxTokens using the chars/4
// estimate, cutting on a word boundary.
func truncateTokens(text string, maxTokens int) string {
	maxChars := maxTokens * 4
	if len(text) <= maxChars {
		return text
	}

	cut := text[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
