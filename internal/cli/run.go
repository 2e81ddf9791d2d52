package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/gather"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/logging"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/source"
	"github.com/claimlens/claimlens/internal/translate"
	"github.com/claimlens/claimlens/internal/worker"
)

var (
	runLimit      int
	runConnector  string
	runSourceFile string
	runResultsDir string
	runDeadline   time.Duration
	runWorkers    int
	runNoCache    bool
	runNoFetch    bool
	runLLM        string
	runLLMModel   string
	runLanguage   string
	runMinConf    float64
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <topic>",
	Short: "Run the full verification pipeline for a topic",
	Long: `Run searches the configured source for discussion threads about the
topic, extracts factual claims from every thread, translates non-English
claims, gathers evidence per claim from trusted and general news
sources, and classifies each claim.

Four artifacts are written to the results directory:
  verified_claims.json                     extracted claims
  fact_check_results.json                  evidence per claim
  fact_check_classification_results.json   verdicts
  run_summary.json                         run accounting

Example:
  claimlens run "mpox outbreak"
  claimlens run "election fraud" --limit 50 --workers 8
  claimlens run "vaccine" --source file --source-file scraped.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runLimit, "limit", 25, "max discussion items to fetch")
	runCmd.Flags().StringVar(&runConnector, "source", "reddit", "source connector (reddit, file)")
	runCmd.Flags().StringVar(&runSourceFile, "source-file", "", "scraped JSON dump for the file connector")
	runCmd.Flags().StringVar(&runResultsDir, "results", "results", "results directory")
	runCmd.Flags().DurationVar(&runDeadline, "deadline", 10*time.Minute, "overall run deadline")
	runCmd.Flags().IntVar(&runWorkers, "workers", 4, "concurrent claim workers")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "disable search/article cache")
	runCmd.Flags().BoolVar(&runNoFetch, "no-fetch", false, "skip fetching full article bodies")
	runCmd.Flags().StringVar(&runLLM, "llm-provider", "openai", "LLM provider (openai, ollama)")
	runCmd.Flags().StringVar(&runLLMModel, "llm-model", "gpt-4o-mini", "LLM model name")
	runCmd.Flags().StringVar(&runLanguage, "lang", "en", "working language for claims and search")
	runCmd.Flags().Float64Var(&runMinConf, "min-confidence", 0.5, "minimum extraction confidence to keep a claim")
}

func runRun(cmd *cobra.Command, args []string) error {
	topic := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override file and env
	cfg.Source.Limit = runLimit
	cfg.Source.Connector = runConnector
	if runSourceFile != "" {
		cfg.Source.File = runSourceFile
	}
	cfg.Output.ResultsDir = runResultsDir
	cfg.Output.Deadline = runDeadline
	cfg.Output.Verbose = verbose
	cfg.Concurrency.Workers = runWorkers
	if runNoCache {
		cfg.Cache.Enabled = false
	}
	if runNoFetch {
		cfg.Evidence.FetchContent = false
	}
	cfg.LLM.Provider = runLLM
	cfg.LLM.Model = runLLMModel
	cfg.WorkingLanguage = runLanguage
	cfg.MinConfidence = runMinConf

	logger, err := logging.New(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.Run(context.Background(), topic)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	writer := pipeline.NewReportWriter(cfg.Output.ResultsDir)
	if err := writer.Write(result); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	writer.RenderSummary(result)

	return nil
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if viper.ConfigFileUsed() != "" {
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Secrets come from the environment only
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.Evidence.GNewsAPIKey = v
	}
	if v := os.Getenv("NEWSAPI_KEY"); v != "" {
		cfg.Evidence.NewsAPIKey = v
	}
	if v := os.Getenv("TRANSLATE_BASE_URL"); v != "" {
		cfg.Translate.BaseURL = v
	}

	return cfg, nil
}

// buildPipeline wires every component from the configuration
func buildPipeline(cfg *model.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	var searcher source.Searcher
	switch cfg.Source.Connector {
	case "reddit":
		var opts []source.RedditOption
		if cfg.Source.BaseURL != "" {
			opts = append(opts, source.WithRedditBaseURL(cfg.Source.BaseURL))
		}
		searcher = source.NewRedditClient(cfg.HTTP, opts...)
	case "file":
		if cfg.Source.File == "" {
			return nil, fmt.Errorf("file connector requires --source-file")
		}
		searcher = source.NewFileConnector(cfg.Source.File)
	default:
		return nil, fmt.Errorf("unknown source connector: %q", cfg.Source.Connector)
	}

	provider, err := newLLMProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("classification requires an LLM provider; set --llm-provider")
	}

	var store cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL)
		}
	}

	extractor := extract.NewExtractor(provider, cfg.MinConfidence)

	var translator translate.Translator
	if cfg.Translate.BaseURL != "" {
		translator = translate.NewHTTPClient(cfg.Translate, cfg.HTTP, cfg.WorkingLanguage)
	}

	gatherer := buildGatherer(cfg, store, logger)

	classifier := classify.NewClassifier(provider, logger)

	return pipeline.New(searcher, extractor, translator, gatherer, classifier, cfg, logger), nil
}

// newLLMProvider resolves API keys from the environment
func newLLMProvider(cfg *model.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			cfg.LLM.BaseURL = v
		}
	}

	return llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy))
}

// buildGatherer wires the two search tiers, the rate limiter and the
// article fetcher
func buildGatherer(cfg *model.Config, store cache.Cache, logger *zap.Logger) *gather.Gatherer {
	limiter := newSharedLimiter(cfg)

	trusted := gather.NewNewsAPIClient(
		cfg.Evidence.NewsAPIBaseURL, cfg.Evidence.NewsAPIKey,
		cfg.WorkingLanguage, cfg.Trusted.Sources, cfg.HTTP, limiter)
	general := gather.NewGNewsClient(
		cfg.Evidence.GNewsBaseURL, cfg.Evidence.GNewsAPIKey,
		cfg.WorkingLanguage, cfg.HTTP, limiter)

	var fetcher *gather.ArticleFetcher
	if cfg.Evidence.FetchContent {
		fetcher = gather.NewArticleFetcher(cfg.HTTP, cfg.Evidence.BlockedDomains, limiter, store, cfg.Cache.DiskTTL)
	}

	return gather.NewGatherer(trusted, general, fetcher, store,
		cfg.Evidence, cfg.Trusted, cfg.Cache.MemoryTTL, logger)
}

func newSharedLimiter(cfg *model.Config) *worker.Limiter {
	return worker.NewLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
}
