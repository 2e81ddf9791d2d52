package model

// Claim represents a factual assertion extracted from a source item
type Claim struct {
	ID             string  `json:"id"`                        // Deterministic: "<item-id>-cN" by extraction order
	ItemID         string  `json:"item_id"`                   // Origin RawItem
	Text           string  `json:"text"`                      // Claim text in the original language
	TranslatedText string  `json:"translated_text,omitempty"` // Working-language text; set exactly once
	Language       string  `json:"language,omitempty"`        // Language of Text
	Confidence     float64 `json:"confidence"`                // Extraction confidence in [0,1]
	SearchQuery    string  `json:"search_query,omitempty"`    // Suggested evidence search query
}

// SkipReason is a machine-readable code explaining why a claim or item
// never reached a verdict.
type SkipReason string

const (
	SkipExtractionUnavailable  SkipReason = "extraction_unavailable"
	SkipTranslationUnsupported SkipReason = "translation_unsupported"
	SkipTranslationFailed      SkipReason = "translation_failed"
	SkipClassificationFailed   SkipReason = "classification_failed"
	SkipEvidenceUnavailable    SkipReason = "evidence_unavailable"
	SkipParseError             SkipReason = "classification_parse_error"
	SkipTimeout                SkipReason = "timeout"
)

// SkippedItem records a RawItem that was dropped before extraction produced
// any claims. Skips are always reported, never silent.
type SkippedItem struct {
	ItemID string     `json:"item_id"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}
