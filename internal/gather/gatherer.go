package gather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
)

const contentFetchConcurrency = 4

// Gatherer collects evidence for a claim: the curated trusted tier is
// consulted first, the general web only when trusted hits fall short.
// Both tiers failing hard surfaces a classified error for the retry
// policy; both tiers finding nothing is a valid empty result.
type Gatherer struct {
	trusted  NewsSearcher
	general  NewsSearcher
	fetcher  *ArticleFetcher // nil disables full-content retrieval
	store    cache.Cache
	perTier  int
	minHits  int
	cacheTTL time.Duration
	logger   *zap.Logger

	now func() time.Time // injectable clock
}

// NewGatherer creates an evidence gatherer
func NewGatherer(trusted, general NewsSearcher, fetcher *ArticleFetcher, store cache.Cache, evidenceCfg model.EvidenceConfig, trustedCfg model.TrustedConfig, cacheTTL time.Duration, logger *zap.Logger) *Gatherer {
	if store == nil {
		store = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	perTier := evidenceCfg.PerTier
	if perTier <= 0 {
		perTier = 5
	}

	return &Gatherer{
		trusted:  trusted,
		general:  general,
		fetcher:  fetcher,
		store:    store,
		perTier:  perTier,
		minHits:  trustedCfg.MinHits,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the evidence timestamp source; tests pin it for
// reproducible artifacts.
func (g *Gatherer) SetClock(now func() time.Time) {
	g.now = now
}

// Gather returns the evidence found for claim, deduplicated by normalized
// URL, at most perTier items per trust tier.
func (g *Gatherer) Gather(ctx context.Context, claim model.Claim) ([]model.Evidence, error) {
	query := claim.SearchQuery
	if query == "" {
		query = claim.TranslatedText
	}
	if query == "" {
		query = claim.Text
	}
	query = SanitizeQuery(query)

	trustedArts, generalArts, err := g.searchTiers(ctx, query)
	if err != nil {
		return nil, err
	}

	// Nothing found: one more attempt with a reduced key-term query
	if len(trustedArts) == 0 && len(generalArts) == 0 {
		if alt := AlternativeQuery(query); alt != query {
			g.logger.Debug("no results, trying alternative query",
				zap.String("claim", claim.ID), zap.String("query", alt))
			trustedArts, generalArts, err = g.searchTiers(ctx, alt)
			if err != nil {
				return nil, err
			}
		}
	}

	evidence := g.assemble(claim, trustedArts, generalArts)
	g.fetchContent(ctx, evidence)

	return evidence, nil
}

// searchTiers runs the trusted search and, when it under-delivers, the
// general fallback. A single tier failing hard is tolerated as long as the
// other answered; both failing propagates the first error.
func (g *Gatherer) searchTiers(ctx context.Context, query string) (trusted, general []Article, err error) {
	trusted, trustedErr := g.search(ctx, g.trusted, query)
	if trustedErr != nil {
		g.logger.Warn("trusted-tier search failed", zap.String("query", query), zap.Error(trustedErr))
	}

	if len(trusted) >= g.minHits && trustedErr == nil {
		return trusted, nil, nil
	}

	general, generalErr := g.search(ctx, g.general, query)
	if generalErr != nil {
		g.logger.Warn("fallback search failed", zap.String("query", query), zap.Error(generalErr))
	}

	if trustedErr != nil && generalErr != nil {
		return nil, nil, trustedErr
	}

	return trusted, general, nil
}

// search queries one tier through the response cache
func (g *Gatherer) search(ctx context.Context, searcher NewsSearcher, query string) ([]Article, error) {
	if searcher == nil {
		return nil, nil
	}

	key := cache.Key(fmt.Sprintf("search:%s:%s:%d", searcher.Name(), query, g.perTier))
	if data, found := g.store.Get(key); found {
		var cached []Article
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	articles, err := searcher.Search(ctx, query, g.perTier)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(articles); err == nil {
		_ = g.store.Set(key, data, g.cacheTTL)
	}

	return articles, nil
}

// assemble converts articles to Evidence records: trusted tier first,
// normalized-URL dedupe across tiers, per-tier caps, deterministic ids.
func (g *Gatherer) assemble(claim model.Claim, trusted, general []Article) []model.Evidence {
	retrievedAt := g.now().UTC()
	seen := make(map[string]bool)
	evidence := make([]model.Evidence, 0, len(trusted)+len(general))

	appendTier := func(articles []Article, tier model.TrustTier) {
		count := 0
		for _, a := range articles {
			if count >= g.perTier {
				break
			}
			norm := NormalizeURL(a.URL)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			count++

			evidence = append(evidence, model.Evidence{
				ID:          fmt.Sprintf("%s-e%d", claim.ID, len(evidence)+1),
				ClaimID:     claim.ID,
				URL:         a.URL,
				SourceName:  a.SourceName,
				Title:       a.Title,
				Snippet:     a.Description,
				Content:     a.Content,
				PublishedAt: a.PublishedAt,
				RetrievedAt: retrievedAt,
				Tier:        tier,
			})
		}
	}

	appendTier(trusted, model.TierTrusted)
	appendTier(general, model.TierGeneral)

	return evidence
}

// fetchContent fills in full article bodies for evidence whose API snippet
// is all we have. Fetch failures leave the snippet in place.
func (g *Gatherer) fetchContent(ctx context.Context, evidence []model.Evidence) {
	if g.fetcher == nil {
		return
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(contentFetchConcurrency)

	for i := range evidence {
		if len(evidence[i].Content) > 500 {
			continue
		}
		i := i
		eg.Go(func() error {
			if content := g.fetcher.Fetch(egCtx, evidence[i].URL); content != "" {
				evidence[i].Content = content
			}
			return nil
		})
	}

	_ = eg.Wait()
}
