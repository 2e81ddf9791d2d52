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

// NewsAPIClient queries the newsapi.org everything endpoint. With a
// domains list set it serves as the trusted tier: results come only from
// the curated sources.
type NewsAPIClient struct {
	baseURL    string
	apiKey     string
	language   string
	domains    []string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// NewNewsAPIClient creates a NewsAPI client. domains may be nil for
// unrestricted search.
func NewNewsAPIClient(baseURL, apiKey, language string, domains []string, httpCfg model.HTTPConfig, limiter *worker.Limiter) *NewsAPIClient {
	return &NewsAPIClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		domains:  domains,
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
func (c *NewsAPIClient) Name() string {
	if len(c.domains) > 0 {
		return "newsapi-trusted"
	}
	return "newsapi"
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// Search queries the everything endpoint
func (c *NewsAPIClient) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fault.Permanentf("newsapi key not configured")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", c.apiKey)
	params.Set("language", c.language)
	params.Set("pageSize", fmt.Sprintf("%d", limit))
	params.Set("sortBy", "relevancy")
	if len(c.domains) > 0 {
		params.Set("domains", strings.Join(c.domains, ","))
	}

	reqURL := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fault.Permanentf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Transientf("newsapi search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Transientf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fault.Permanentf("newsapi auth failed: HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fault.Transientf("newsapi rate limited: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fault.Transientf("newsapi server error: HTTP %d", resp.StatusCode)
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fault.Permanentf("decode response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fault.Permanentf("newsapi error %s: %s", parsed.Code, parsed.Message)
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
