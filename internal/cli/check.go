package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/logging"
)

var (
	checkDeadline time.Duration
	checkLLM      string
	checkLLMModel string
	checkNoFetch  bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim",
	Long: `Check runs one claim through translation, evidence gathering and
classification, printing the verdict and the evidence it cites.

Example:
  claimlens check "The WHO declared mpox a global emergency in 2024"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkDeadline, "deadline", 2*time.Minute, "verification deadline")
	checkCmd.Flags().StringVar(&checkLLM, "llm-provider", "openai", "LLM provider (openai, ollama)")
	checkCmd.Flags().StringVar(&checkLLMModel, "llm-model", "gpt-4o-mini", "LLM model name")
	checkCmd.Flags().BoolVar(&checkNoFetch, "no-fetch", false, "skip fetching full article bodies")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.Deadline = checkDeadline
	cfg.Output.Verbose = verbose
	cfg.LLM.Provider = checkLLM
	cfg.LLM.Model = checkLLMModel
	if checkNoFetch {
		cfg.Evidence.FetchContent = false
	}

	logger, err := logging.New(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	verdict, evidence, err := p.VerifyClaim(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	fmt.Printf("\nVerdict: %s  (confidence %.2f)\n", verdict.Label, verdict.Confidence)
	fmt.Printf("Rationale: %s\n", verdict.Rationale)

	if len(evidence) > 0 {
		cited := make(map[string]bool, len(verdict.CitedEvidenceIDs))
		for _, id := range verdict.CitedEvidenceIDs {
			cited[id] = true
		}
		fmt.Println("\nEvidence:")
		for _, e := range evidence {
			mark := " "
			if cited[e.ID] {
				mark = "*"
			}
			fmt.Printf("  %s [%s] %s\n      %s\n", mark, e.Tier, e.Title, e.URL)
		}
		fmt.Println("\n  * cited by the verdict")
	}

	return nil
}
