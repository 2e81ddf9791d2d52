package model

import "time"

// Evidence represents a retrieved source snippet supporting or refuting a claim.
// Evidence records are append-only: never mutated after insertion.
type Evidence struct {
	ID          string    `json:"id"`                    // Deterministic: "<claim-id>-eN" by retrieval order
	ClaimID     string    `json:"claim_id"`              // Claim this evidence was gathered for
	URL         string    `json:"url"`                   // Article URL
	SourceName  string    `json:"source_name,omitempty"` // Publisher name
	Title       string    `json:"title,omitempty"`       // Article title
	Snippet     string    `json:"snippet,omitempty"`     // Description or lead paragraph
	Content     string    `json:"content,omitempty"`     // Full article text when retrievable
	PublishedAt string    `json:"published_at,omitempty"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Tier        TrustTier `json:"tier"` // Which search tier produced it
}

// TrustTier classifies where evidence came from
type TrustTier string

const (
	TierTrusted TrustTier = "trusted"     // Curated trusted-source list
	TierGeneral TrustTier = "general_web" // General web search fallback
)
