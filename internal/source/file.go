package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
)

// FileConnector replays a previously scraped JSON dump, for offline runs
// and reproducible testing. Records follow the scraper layout: a list of
// objects carrying at least url and selftext.
type FileConnector struct {
	path string
}

// NewFileConnector creates a connector over the dump at path
func NewFileConnector(path string) *FileConnector {
	return &FileConnector{path: path}
}

// Name returns the connector name
func (c *FileConnector) Name() string { return "file" }

type dumpRecord struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SelfText  string `json:"selftext"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Subreddit string `json:"subreddit"`
}

// Search loads the dump and returns up to limit records. The topic is
// ignored: the dump already represents one scraped query.
func (c *FileConnector) Search(ctx context.Context, topic string, limit int) ([]model.RawItem, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fault.Permanentf("read dump: %w", err)
	}

	var records []dumpRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fault.Permanentf("decode dump: %w", err)
	}

	items := make([]model.RawItem, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(rec.SelfText)
		if text == "" {
			continue
		}

		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("dump-%d", i)
		}
		lang := rec.Language
		if lang == "" {
			lang = "unknown"
		}

		items = append(items, model.RawItem{
			ID:        id,
			Text:      text,
			Language:  lang,
			Author:    rec.Author,
			Permalink: rec.URL,
			Source:    c.Name(),
		})

		if limit > 0 && len(items) >= limit {
			break
		}
	}

	return items, nil
}
