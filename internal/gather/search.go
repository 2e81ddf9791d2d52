package gather

import "context"

// Article is one result from a news-search API, before it becomes Evidence
type Article struct {
	Title       string
	Description string
	URL         string
	SourceName  string
	PublishedAt string
	Content     string
}

// NewsSearcher is the web-search sub-boundary of evidence gathering
type NewsSearcher interface {
	// Name identifies the backing API, used for cache keys and logs
	Name() string

	// Search returns up to limit articles for the query
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}
