package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

const defaultRedditBaseURL = "https://www.reddit.com"

// RedditClient fetches discussion posts from Reddit's public JSON search
// endpoint. Posts without body text (link-only submissions) are skipped.
type RedditClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// RedditOption configures a RedditClient
type RedditOption func(*RedditClient)

// WithRedditBaseURL overrides the API base URL
func WithRedditBaseURL(base string) RedditOption {
	return func(c *RedditClient) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewRedditClient creates a Reddit search client
func NewRedditClient(cfg model.HTTPConfig, opts ...RedditOption) *RedditClient {
	c := &RedditClient{
		baseURL: defaultRedditBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the connector name
func (c *RedditClient) Name() string { return "reddit" }

// Reddit listing structures (public JSON API)
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
}

// Search queries the public search endpoint for the topic
func (c *RedditClient) Search(ctx context.Context, topic string, limit int) ([]model.RawItem, error) {
	if limit <= 0 {
		limit = 25
	}

	q := url.Values{}
	q.Set("q", topic)
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("sort", "relevance")
	q.Set("raw_json", "1")

	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fault.Permanentf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Transientf("reddit search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fault.Fatal(fmt.Errorf("%w: HTTP %d", ErrAuth, resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fault.Transientf("reddit rate limited: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fault.Transientf("reddit server error: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fault.Permanentf("reddit search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fault.Transientf("read body: %w", err)
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fault.Permanentf("decode listing: %w", err)
	}

	items := make([]model.RawItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		text := strings.TrimSpace(post.SelfText)
		if post.ID == "" || text == "" {
			continue
		}
		items = append(items, model.RawItem{
			ID:        post.ID,
			Text:      text,
			Language:  "unknown",
			Author:    post.Author,
			Permalink: c.baseURL + post.Permalink,
			CreatedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
			Source:    c.Name(),
		})
	}

	return items, nil
}
