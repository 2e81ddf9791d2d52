package gather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
	"github.com/claimlens/claimlens/internal/worker"
)

const maxArticleChars = 20_000

// ArticleFetcher retrieves full article bodies to enrich evidence snippets.
// It honors robots.txt, skips known-hostile domains and caps body size.
// Failures here are soft: evidence keeps its API snippet.
type ArticleFetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	userAgent  string
	maxBytes   int64
	blocked    map[string]bool
	cacheTTL   time.Duration
}

// NewArticleFetcher creates an article-content fetcher
func NewArticleFetcher(httpCfg model.HTTPConfig, blockedDomains []string, limiter *worker.Limiter, store cache.Cache, cacheTTL time.Duration) *ArticleFetcher {
	blocked := make(map[string]bool, len(blockedDomains))
	for _, d := range blockedDomains {
		blocked[strings.ToLower(d)] = true
	}

	if store == nil {
		store = cache.Nop{}
	}

	return &ArticleFetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:   limiter,
		cache:     store,
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		blocked:   blocked,
		cacheTTL:  cacheTTL,
	}
}

// Fetch returns the readable text of the article at rawURL, or "" when the
// article is blocked, disallowed, or unreadable.
func (f *ArticleFetcher) Fetch(ctx context.Context, rawURL string) string {
	if f.blocked[Host(rawURL)] {
		return ""
	}

	key := cache.Key("article:" + NormalizeURL(rawURL))
	if body, found := f.cache.Get(key); found {
		return string(body)
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil || !allowed {
		return ""
	}
	if crawlDelay > 0 {
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(crawlDelay):
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return ""
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return ""
	}

	content := ExtractReadableText(string(body))
	if content != "" {
		_ = f.cache.Set(key, []byte(content), f.cacheTTL)
	}
	return content
}

// ExtractReadableText pulls visible prose out of an HTML document,
// preferring article and paragraph elements and skipping script/style/nav
// chrome. Output is capped; evidence only needs enough text to classify
// against.
func ExtractReadableText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside":
				return
			case "p":
				text := strings.TrimSpace(collectText(n))
				if len(text) > 10 {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	content := strings.Join(paragraphs, " ")
	content = strings.Join(strings.Fields(content), " ")
	if len(content) > maxArticleChars {
		content = content[:maxArticleChars]
	}
	return content
}

func collectText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}
