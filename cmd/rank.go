package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alynch/portfolio-matcher/internal/filtering"
	"github.com/alynch/portfolio-matcher/internal/matching"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptAccept = "Accept"
	PromptReject = "Reject"
	PromptSkip   = "Skip"
	PromptQuit   = "Quit review"
)

var errReviewDone = errors.New("review finished")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank portfolio records against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

type rankOutput struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []*matching.Result `json:"results"`
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("query", "q", "", "job description text to rank against")
	rankCmd.Flags().String("query-file", "", "file containing the job description")
	rankCmd.Flags().StringP("collection", "c", "", "limit ranking to a single collection")
	rankCmd.Flags().BoolP("include-all", "a", false, "include records that match no query token")
	rankCmd.Flags().Float64("min-score", 0, "drop results below this score")
	rankCmd.Flags().BoolP("review", "r", false, "review results interactively and feed accept/reject outcomes back into the ruleset")
}

// rank is the job matching command: score every record against the query,
// merge across collections, filter, and optionally review.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config, store, rules := setup()

	query, err := resolveQuery(cmd)
	if err != nil {
		logger.Fatal("resolving query", zap.Error(err))
	}

	if strings.TrimSpace(query) == "" {
		logger.Info("empty query, nothing to rank")
		printJSON(&rankOutput{Query: query, Results: []*matching.Result{}})
		return
	}

	logger.Info("ranking records", zap.String("query_preview", previewQuery(query)))

	includeAll, _ := cmd.Flags().GetBool("include-all")
	if !cmd.Flags().Changed("include-all") && config.Matcher != nil {
		includeAll = config.Matcher.IncludeAll
	}

	results := rankAll(store, query, rules, includeAll)

	results, err = runRankFilters(ctx, cmd, config, query, results, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if review, _ := cmd.Flags().GetBool("review"); review {
		if err := reviewResults(config, query, results, rules, logger); err != nil {
			logger.Fatal("review failed", zap.Error(err))
		}
	}

	printJSON(&rankOutput{Query: query, Count: results.Len(), Results: results.Items})
}

func resolveQuery(cmd *cobra.Command) (string, error) {
	query, _ := cmd.Flags().GetString("query")
	if query != "" {
		return query, nil
	}

	path, _ := cmd.Flags().GetString("query-file")
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading query file: %w", err)
	}

	return string(data), nil
}

func previewQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 80 {
		query = query[:80] + "..."
	}
	return query
}

func runRankFilters(ctx context.Context, cmd *cobra.Command, config *Config, query string, results *matching.Results, logger *zap.Logger) (*matching.Results, error) {
	collection, _ := cmd.Flags().GetString("collection")
	// An explicit --min-score, including 0, wins over the config value.
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	if !cmd.Flags().Changed("min-score") && config.Matcher != nil {
		minScore = config.Matcher.MinScore
	}

	cfg := &filtering.Config{
		Collection: collection,
		MinScore:   minScore,
	}

	deps := filtering.Deps{
		Logger: logger,
		Query:  query,
	}

	steps := []filtering.Filter{
		filtering.NewCollection(),
		filtering.NewMinScore(),
		filtering.NewAIFit(),
	}

	if config.AI != nil && config.AI.Enabled {
		cfg.AI = &filtering.AIConfig{
			Enabled:         true,
			Provider:        config.AI.Provider,
			MinimumFitScore: config.AI.MinimumFitScore,
		}
		if config.AI.Gemini != nil {
			cfg.AI.Gemini = &filtering.GeminiConfig{
				Model:        config.AI.Gemini.Model,
				MaxLogLength: config.AI.Gemini.MaxLogLength,
			}
		}

		matcher, err := newAIMatcher(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping AI filter", zap.Error(err))
			filtering.DisableByName(steps, "ai_fit", err.Error())
		} else {
			deps.Matcher = matcher
		}
	}

	return filtering.Run(ctx, cfg, deps, steps, results)
}

// reviewResults walks the ranked list interactively, applying accept/reject
// outcomes to the ruleset and writing it back at the end.
func reviewResults(config *Config, query string, results *matching.Results, rules *matching.RuleSet, logger *zap.Logger) error {
	if results.Len() == 0 {
		logger.Info("nothing to review")
		return nil
	}

	if config.RulesetFile == "" {
		return fmt.Errorf("ruleset-file must be configured for review mode")
	}

	changed := false
	for _, result := range results.Items {
		label := fmt.Sprintf("%s %q score=%.1f", result.Ref, result.Record.Title, result.Score)

		prompt := promptui.Select{
			Label: label,
			Items: []string{PromptAccept, PromptReject, PromptSkip, PromptQuit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleReviewAction(action, query, result, rules, config.feedbackStep(), logger); err != nil {
			if errors.Is(err, errReviewDone) {
				break
			}
			return err
		}

		if action == PromptAccept || action == PromptReject {
			changed = true
		}
	}

	if !changed {
		return nil
	}

	if err := rules.SaveTo(config.RulesetFile); err != nil {
		return fmt.Errorf("saving ruleset: %w", err)
	}

	logger.Info("ruleset updated",
		zap.String("path", config.RulesetFile),
		zap.Int("tokens", rules.Len()),
	)

	return nil
}

func handleReviewAction(action, query string, result *matching.Result, rules *matching.RuleSet, step float64, logger *zap.Logger) error {
	switch action {
	case PromptAccept, PromptReject:
		accepted := action == PromptAccept
		adjusted := rules.ApplyFeedback(query, result.Record, accepted, step)
		logger.Info("applied feedback",
			zap.String("record", result.Ref),
			zap.Bool("accepted", accepted),
			zap.Strings("adjusted_tokens", adjusted),
		)
		return nil
	case PromptSkip:
		return nil
	case PromptQuit:
		logger.Info("review stopped", zap.String("reason", "quit requested"))
		return errReviewDone
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
