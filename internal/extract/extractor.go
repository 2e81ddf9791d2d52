package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/translate"
)

const extractionSystemPrompt = `You identify verifiable factual claims in social-media posts.
A claim is a discrete assertion about the world that could be checked against news sources.
Exclude opinions, questions, jokes, and personal anecdotes.
Respond with a JSON array only, no prose. Each element:
{"claim": "<assertion in the post's own language>", "confidence": <0.0-1.0>, "search_query": "<short English news-search query>"}
Return [] when the post contains no checkable claims.`

// Extractor turns raw post text into candidate factual claims.
// With a model provider configured, claim-worthiness is judged by the model;
// without one it falls back to a keyword heuristic. Claims below the
// configured confidence floor are discarded here, not downstream.
type Extractor struct {
	provider      llm.Provider
	minConfidence float64
}

// NewExtractor creates a claim extractor. provider may be nil.
func NewExtractor(provider llm.Provider, minConfidence float64) *Extractor {
	return &Extractor{
		provider:      provider,
		minConfidence: minConfidence,
	}
}

// modelClaim is one element of the model's JSON response
type modelClaim struct {
	Claim       string  `json:"claim"`
	Confidence  float64 `json:"confidence"`
	SearchQuery string  `json:"search_query"`
}

// Extract returns the claims found in item, in a stable order with
// deterministic ids. Empty or whitespace-only text yields no claims and
// no error. A provider failure is returned classified for the shared
// retry policy; the caller skips the item once retries are exhausted.
func (e *Extractor) Extract(ctx context.Context, item model.RawItem) ([]model.Claim, error) {
	text := strings.TrimSpace(item.Text)
	if text == "" {
		return []model.Claim{}, nil
	}

	var candidates []modelClaim
	if e.provider != nil {
		parsed, err := e.extractWithModel(ctx, text)
		if err != nil {
			return nil, err
		}
		candidates = parsed
	} else {
		candidates = extractHeuristic(text)
	}

	claims := make([]model.Claim, 0, len(candidates))
	for _, cand := range candidates {
		claimText := strings.TrimSpace(cand.Claim)
		if claimText == "" || cand.Confidence < e.minConfidence {
			continue
		}

		query := strings.TrimSpace(cand.SearchQuery)
		if query == "" {
			query = FallbackQuery(claimText)
		}

		claims = append(claims, model.Claim{
			ID:          fmt.Sprintf("%s-c%d", item.ID, len(claims)+1),
			ItemID:      item.ID,
			Text:        claimText,
			Language:    claimLanguage(item, claimText),
			Confidence:  clamp01(cand.Confidence),
			SearchQuery: query,
		})
	}

	return claims, nil
}

// extractWithModel asks the provider for claims and parses its JSON reply.
// Unparseable output degrades to the heuristic rather than failing the item.
func (e *Extractor) extractWithModel(ctx context.Context, text string) ([]modelClaim, error) {
	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System:      extractionSystemPrompt,
		Prompt:      text,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	raw := stripCodeFence(resp.Text)

	var parsed []modelClaim
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return extractHeuristic(text), nil
	}
	return parsed, nil
}

// claimLanguage prefers the item's declared language and falls back to
// script detection on the claim text itself.
func claimLanguage(item model.RawItem, claimText string) string {
	if item.Language != "" && item.Language != "unknown" {
		return item.Language
	}
	return translate.DetectLanguage(claimText)
}

// stripCodeFence removes a markdown code fence if the model wrapped its
// JSON in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
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
