package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
	"github.com/claimlens/claimlens/internal/translate"
	"github.com/claimlens/claimlens/internal/worker"
)

// ClaimExtractor turns a raw item into candidate claims
type ClaimExtractor interface {
	Extract(ctx context.Context, item model.RawItem) ([]model.Claim, error)
}

// EvidenceGatherer collects evidence for a claim
type EvidenceGatherer interface {
	Gather(ctx context.Context, claim model.Claim) ([]model.Evidence, error)
}

// VerdictClassifier produces a verdict from a claim and its evidence
type VerdictClassifier interface {
	Classify(ctx context.Context, claim model.Claim, evidence []model.Evidence) (*model.Verdict, error)
}

// Pipeline orchestrates a complete verification run: search, extraction,
// translation, evidence gathering and classification, with one shared
// retry policy around every external boundary. Claims are processed
// independently up to the configured worker limit; one claim's failure
// never blocks another.
type Pipeline struct {
	searcher   source.Searcher
	extractor  ClaimExtractor
	translator translate.Translator
	gatherer   EvidenceGatherer
	classifier VerdictClassifier
	retry      *RetryPolicy
	config     *model.Config
	logger     *zap.Logger

	now      func() time.Time // injectable clock
	newRunID func() string

	mu            sync.Mutex
	stageFailures map[string]int
}

// New creates a pipeline over the given boundaries and configuration
func New(searcher source.Searcher, extractor ClaimExtractor, translator translate.Translator, gatherer EvidenceGatherer, classifier VerdictClassifier, cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		searcher:      searcher,
		extractor:     extractor,
		translator:    translator,
		gatherer:      gatherer,
		classifier:    classifier,
		retry:         NewRetryPolicy(cfg.Retry),
		config:        cfg,
		logger:        logger,
		now:           time.Now,
		newRunID:      uuid.NewString,
		stageFailures: make(map[string]int),
	}
}

// SetClock overrides the summary timestamp source (tests)
func (p *Pipeline) SetClock(now func() time.Time) { p.now = now }

// SetRunIDFunc overrides run-id generation (tests)
func (p *Pipeline) SetRunIDFunc(fn func() string) { p.newRunID = fn }

// RunResult aggregates everything one run produced. The three artifact
// slices are sorted by claim id, so identical inputs and external
// responses yield identical artifacts.
type RunResult struct {
	Summary  model.RunSummary
	Claims   []model.Claim
	Evidence []model.ClaimEvidence
	Verdicts []model.Verdict
}

// Run executes one batch run over the topic. Only fatal failures (source
// auth, search exhaustion) return an error; everything else is accounted
// for in the result.
func (p *Pipeline) Run(ctx context.Context, topic string) (*RunResult, error) {
	startedAt := p.now().UTC()

	if p.config.Output.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Output.Deadline)
		defer cancel()
	}

	limit := p.config.Source.Limit

	var items []model.RawItem
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		found, err := p.searcher.Search(ctx, topic, limit)
		if err != nil {
			return err
		}
		items = found
		return nil
	})
	if err != nil {
		if errors.Is(err, source.ErrAuth) {
			return nil, fmt.Errorf("source authentication: %w", err)
		}
		return nil, fmt.Errorf("source search: %w", err)
	}

	p.logger.Info("items fetched", zap.String("topic", topic), zap.Int("count", len(items)))

	tracks, skippedItems := p.extractAll(ctx, items)

	pool := worker.NewPool(ctx, p.config.Concurrency.Workers)
	pool.Start()
	for _, t := range tracks {
		pool.Submit(&claimJob{pipeline: p, track: t})
	}
	pool.Wait()

	// Anything the deadline cut off is force-skipped, never dropped
	for _, t := range tracks {
		if !t.state.Terminal() {
			t.skip(model.SkipTimeout, "run deadline exceeded")
		}
	}

	result := p.assemble(topic, limit, startedAt, items, tracks, skippedItems)
	return result, nil
}

// VerifyClaim runs a single ad-hoc claim through translation, evidence
// gathering and classification, bypassing source search and extraction.
func (p *Pipeline) VerifyClaim(ctx context.Context, text string) (*model.Verdict, []model.Evidence, error) {
	if p.config.Output.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Output.Deadline)
		defer cancel()
	}

	t := newClaimTrack(model.Claim{
		ID:         "adhoc-c1",
		ItemID:     "adhoc",
		Text:       text,
		Language:   translate.DetectLanguage(text),
		Confidence: 1,
	})
	p.processClaim(ctx, t)

	if t.state == StateSkipped {
		return nil, t.evidence, fmt.Errorf("claim skipped (%s): %s", t.skipReason, t.skipDetail)
	}
	return t.verdict, t.evidence, nil
}

// extractAll runs claim extraction over every item. An item whose
// extraction fails after retries is recorded as skipped; the run goes on.
func (p *Pipeline) extractAll(ctx context.Context, items []model.RawItem) ([]*claimTrack, []model.SkippedItem) {
	var tracks []*claimTrack
	var skipped []model.SkippedItem

	for _, item := range items {
		var claims []model.Claim
		err := p.retry.Do(ctx, func(ctx context.Context) error {
			found, err := p.extractor.Extract(ctx, item)
			if err != nil {
				return err
			}
			claims = found
			return nil
		})
		if err != nil {
			p.recordStageFailure("extract")
			p.logger.Warn("extraction failed, skipping item",
				zap.String("item", item.ID), zap.Error(err))
			skipped = append(skipped, model.SkippedItem{
				ItemID: item.ID,
				Reason: model.SkipExtractionUnavailable,
				Detail: err.Error(),
			})
			continue
		}

		for _, claim := range claims {
			tracks = append(tracks, newClaimTrack(claim))
		}
	}

	return tracks, skipped
}

// claimJob drives one claim through its stage sequence on a pool worker
type claimJob struct {
	pipeline *Pipeline
	track    *claimTrack
}

// Execute satisfies worker.Job
func (j *claimJob) Execute(ctx context.Context) worker.Result {
	if ctx.Err() != nil {
		j.track.skip(model.SkipTimeout, "run deadline exceeded")
		return j.track
	}
	j.pipeline.processClaim(ctx, j.track)
	return j.track
}

// processClaim advances one claim from EXTRACTED to a terminal state.
// Stages are strictly sequential per claim; the only suspension points
// are the external boundary calls, each wrapped in the retry policy.
func (p *Pipeline) processClaim(ctx context.Context, t *claimTrack) {
	if !p.translateStage(ctx, t) {
		return
	}
	if !p.gatherStage(ctx, t) {
		return
	}
	p.classifyStage(ctx, t)
}

// translateStage normalizes the claim to the working language, setting
// TranslatedText exactly once. Claims already in the working language
// never reach the translator.
func (p *Pipeline) translateStage(ctx context.Context, t *claimTrack) bool {
	claim := &t.claim
	t.advance(StateTranslating)

	if claim.Language == p.config.WorkingLanguage || !translate.ContainsNonEnglish(claim.Text) {
		claim.TranslatedText = claim.Text
		t.advance(StateTranslated)
		return true
	}

	var res *translate.Result
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		r, err := translate.TranslateMixed(ctx, p.translator, claim.Text, claim.Language)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		p.recordStageFailure("translate")
		if ctx.Err() != nil {
			t.skip(model.SkipTimeout, "run deadline exceeded")
		} else if errors.Is(err, translate.ErrUnsupportedLanguage) {
			t.skip(model.SkipTranslationUnsupported, err.Error())
		} else {
			t.skip(model.SkipTranslationFailed, err.Error())
		}
		return false
	}

	claim.TranslatedText = res.Text
	if res.DetectedLanguage != "" {
		claim.Language = res.DetectedLanguage
	}
	t.translated = true
	t.advance(StateTranslated)
	return true
}

// gatherStage collects evidence. A hard failure after retries degrades to
// an empty evidence set: the claim stays in the pipeline and classifies
// as unverifiable, with the failure recorded on the verdict.
func (p *Pipeline) gatherStage(ctx context.Context, t *claimTrack) bool {
	t.advance(StateGatheringEvidence)

	var evidence []model.Evidence
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		found, err := p.gatherer.Gather(ctx, t.claim)
		if err != nil {
			return err
		}
		evidence = found
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			t.skip(model.SkipTimeout, "run deadline exceeded")
			return false
		}
		p.recordStageFailure("gather")
		p.logger.Warn("evidence gathering failed",
			zap.String("claim", t.claim.ID), zap.Error(err))
		t.gatherFailed = true
		evidence = nil
	}

	t.evidence = evidence
	t.advance(StateEvidenceReady)
	return true
}

// classifyStage produces the verdict
func (p *Pipeline) classifyStage(ctx context.Context, t *claimTrack) {
	t.advance(StateClassifying)

	var verdict *model.Verdict
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		v, err := p.classifier.Classify(ctx, t.claim, t.evidence)
		if err != nil {
			return err
		}
		verdict = v
		return nil
	})
	if err != nil {
		p.recordStageFailure("classify")
		if ctx.Err() != nil {
			t.skip(model.SkipTimeout, "run deadline exceeded")
		} else {
			t.skip(model.SkipClassificationFailed, err.Error())
		}
		return
	}

	if t.gatherFailed && verdict.Label == model.LabelUnverifiable && verdict.Reason == "" {
		verdict.Reason = model.SkipEvidenceUnavailable
	}

	t.verdict = verdict
	t.advance(StateVerdictReady)
}

func (p *Pipeline) recordStageFailure(stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stageFailures[stage]++
}

// assemble sorts everything by claim id and builds the run aggregates.
// Skipped claims appear in the classification artifact as explicit
// UNVERIFIABLE rows carrying their reason code; no claim is dropped.
func (p *Pipeline) assemble(topic string, limit int, startedAt time.Time, items []model.RawItem, tracks []*claimTrack, skippedItems []model.SkippedItem) *RunResult {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].claim.ID < tracks[j].claim.ID
	})

	summary := model.RunSummary{
		RunID:           p.newRunID(),
		Topic:           topic,
		Limit:           limit,
		StartedAt:       startedAt,
		CompletedAt:     p.now().UTC(),
		ItemsFetched:    len(items),
		ClaimsExtracted: len(tracks),
		SkippedByReason: make(map[model.SkipReason]int),
		VerdictsByLabel: make(map[model.Label]int),
		StageFailures:   make(map[string]int),
		SkippedItems:    skippedItems,
	}

	p.mu.Lock()
	for stage, n := range p.stageFailures {
		summary.StageFailures[stage] = n
	}
	p.mu.Unlock()

	for _, s := range skippedItems {
		summary.SkippedByReason[s.Reason]++
	}

	result := &RunResult{
		Claims:   make([]model.Claim, 0, len(tracks)),
		Evidence: make([]model.ClaimEvidence, 0, len(tracks)),
		Verdicts: make([]model.Verdict, 0, len(tracks)),
	}

	for _, t := range tracks {
		summary.ClaimIDs = append(summary.ClaimIDs, t.claim.ID)
		result.Claims = append(result.Claims, t.claim)

		evidence := t.evidence
		if evidence == nil {
			evidence = []model.Evidence{}
		}
		result.Evidence = append(result.Evidence, model.ClaimEvidence{
			ClaimID:  t.claim.ID,
			Evidence: evidence,
		})

		if t.translated {
			summary.Translated++
		}

		switch t.state {
		case StateVerdictReady:
			result.Verdicts = append(result.Verdicts, *t.verdict)
			summary.VerdictsByLabel[t.verdict.Label]++
		case StateSkipped:
			summary.SkippedByReason[t.skipReason]++
			result.Verdicts = append(result.Verdicts, model.Verdict{
				ClaimID:          t.claim.ID,
				Label:            model.LabelUnverifiable,
				Rationale:        fmt.Sprintf("Claim skipped: %s", t.skipReason),
				CitedEvidenceIDs: []string{},
				Confidence:       0,
				Reason:           t.skipReason,
			})
		}
	}

	result.Summary = summary
	return result
}
