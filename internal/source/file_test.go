package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestFileConnector(t *testing.T) {
	path := writeDump(t, `[
		{"id": "a1", "url": "https://reddit.com/a1", "selftext": "First post body.", "author": "u1", "language": "en"},
		{"url": "https://reddit.com/a2", "selftext": "Post without an id.", "author": "u2"},
		{"id": "a3", "selftext": "", "author": "u3"}
	]`)

	c := NewFileConnector(path)

	items, err := c.Search(context.Background(), "ignored topic", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items (empty selftext skipped), got %d", len(items))
	}
	if items[0].ID != "a1" || items[0].Language != "en" {
		t.Errorf("first item = %+v", items[0])
	}

	// Records without an id get a positional one; missing language defaults
	if items[1].ID != "dump-1" {
		t.Errorf("generated id = %q, want dump-1", items[1].ID)
	}
	if items[1].Language != "unknown" {
		t.Errorf("default language = %q, want unknown", items[1].Language)
	}
}

func TestFileConnector_Limit(t *testing.T) {
	path := writeDump(t, `[
		{"id": "a", "selftext": "Post one body."},
		{"id": "b", "selftext": "Post two body."},
		{"id": "c", "selftext": "Post three body."}
	]`)

	items, err := NewFileConnector(path).Search(context.Background(), "t", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected limit of 2, got %d", len(items))
	}
}

func TestFileConnector_MissingFile(t *testing.T) {
	c := NewFileConnector(filepath.Join(t.TempDir(), "nope.json"))

	_, err := c.Search(context.Background(), "t", 0)
	if err == nil {
		t.Fatal("expected error for missing dump")
	}
}
