package gather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
	"github.com/claimlens/claimlens/internal/worker"
)

// GNewsClient queries the gnews.io search API
type GNewsClient struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// NewGNewsClient creates a GNews search client
func NewGNewsClient(baseURL, apiKey, language string, httpCfg model.HTTPConfig, limiter *worker.Limiter) *GNewsClient {
	return &GNewsClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		limiter: limiter,
	}
}

// Name identifies the backing API
func (c *GNewsClient) Name() string { return "gnews" }

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries the GNews search endpoint
func (c *GNewsClient) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fault.Permanentf("gnews API key not configured")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("token", c.apiKey)
	params.Set("lang", c.language)
	params.Set("max", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fault.Permanentf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Transientf("gnews search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Transientf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fault.Permanentf("gnews auth failed: HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fault.Transientf("gnews rate limited: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fault.Transientf("gnews server error: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fault.Permanentf("gnews: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed gnewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fault.Permanentf("decode response: %w", err)
	}

	articles := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.URL == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			PublishedAt: a.PublishedAt,
			Content:     a.Content,
		})
	}

	return articles, nil
}
