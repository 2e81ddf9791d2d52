package model

import "time"

// RawItem is a single discussion post as returned by a source connector,
// before any claim extraction has run.
type RawItem struct {
	ID        string    `json:"id"`                  // Connector-native post id
	Text      string    `json:"text"`                // Post body (title folded in by the connector)
	Language  string    `json:"language,omitempty"`  // "unknown" until detection runs
	Author    string    `json:"author,omitempty"`
	Permalink string    `json:"permalink,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Source    string    `json:"source"` // Connector name, e.g. "reddit"
}
