package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record an accept/reject outcome for a previously surfaced record",
	Run: func(cmd *cobra.Command, _ []string) {
		feedback(cmd)
	},
}

type feedbackOutput struct {
	Ref            string   `json:"ref"`
	Outcome        string   `json:"outcome"`
	AdjustedTokens []string `json:"adjusted_tokens"`
	RulesetFile    string   `json:"ruleset_file"`
}

func init() {
	rootCmd.AddCommand(feedbackCmd)

	feedbackCmd.Flags().String("ref", "", "record reference as printed by rank/search, e.g. certificates/cert-ml-001")
	feedbackCmd.Flags().StringP("query", "q", "", "the query the record was surfaced for")
	feedbackCmd.Flags().Bool("accept", false, "the record was a good match for the query")
	feedbackCmd.Flags().Bool("reject", false, "the record was a bad match for the query")
}

// feedback adjusts the ruleset weights for the tokens shared between the
// query and the referenced record, then writes the ruleset back.
func feedback(cmd *cobra.Command) {
	logger, config, store, rules := setup()

	ref, _ := cmd.Flags().GetString("ref")
	query, _ := cmd.Flags().GetString("query")
	accept, _ := cmd.Flags().GetBool("accept")
	reject, _ := cmd.Flags().GetBool("reject")

	if strings.TrimSpace(ref) == "" {
		logger.Fatal("record reference is required", zap.String("hint", "pass --ref collection/id"))
	}

	if strings.TrimSpace(query) == "" {
		logger.Fatal("query is required", zap.String("hint", "pass the query the record was ranked against"))
	}

	if accept == reject {
		logger.Fatal("exactly one of --accept and --reject is required")
	}

	if config.RulesetFile == "" {
		logger.Fatal("ruleset-file must be configured for feedback")
	}

	record := store.FindByRef(ref)
	if record == nil {
		logger.Fatal("record not found", zap.String("ref", ref))
	}

	adjusted := rules.ApplyFeedback(query, record, accept, config.feedbackStep())

	if len(adjusted) == 0 {
		logger.Warn("record shares no token with the query, nothing to adjust",
			zap.String("ref", ref),
		)
	}

	if err := rules.SaveTo(config.RulesetFile); err != nil {
		logger.Fatal("saving ruleset", zap.Error(err))
	}

	outcome := "rejected"
	if accept {
		outcome = "accepted"
	}

	logger.Info("applied feedback",
		zap.String("record", ref),
		zap.String("outcome", outcome),
		zap.Strings("adjusted_tokens", adjusted),
	)

	printJSON(&feedbackOutput{
		Ref:            ref,
		Outcome:        outcome,
		AdjustedTokens: adjusted,
		RulesetFile:    config.RulesetFile,
	})
}
