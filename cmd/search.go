package cmd

import (
	"context"
	"strings"

	"github.com/alynch/portfolio-matcher/internal/filtering"
	"github.com/alynch/portfolio-matcher/internal/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search across all portfolio collections",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		search(cmd, args[0])
	},
}

type searchOutput struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []*matching.Result `json:"results"`
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("collection", "c", "", "limit search to a single collection")
	searchCmd.Flags().String("issuer", "", "keep only records from this issuer")
	searchCmd.Flags().String("id", "", "keep only the record with this id")
}

// search is the universal search command: every collection is ranked with
// the shared ruleset and the merged list is narrowed by the result filters.
func search(cmd *cobra.Command, query string) {
	ctx := context.Background()

	logger, _, store, rules := setup()

	if strings.TrimSpace(query) == "" {
		logger.Info("empty query, nothing to search")
		printJSON(&searchOutput{Query: query, Results: []*matching.Result{}})
		return
	}

	logger.Info("searching records", zap.String("query", query))

	results := rankAll(store, query, rules, false)

	collection, _ := cmd.Flags().GetString("collection")
	issuer, _ := cmd.Flags().GetString("issuer")
	id, _ := cmd.Flags().GetString("id")

	cfg := &filtering.Config{
		Collection: collection,
		Issuer:     issuer,
		ID:         id,
	}

	steps := []filtering.Filter{
		filtering.NewCollection(),
		filtering.NewIssuer(),
		filtering.NewID(),
	}

	results, err := filtering.Run(ctx, cfg, filtering.Deps{Logger: logger, Query: query}, steps, results)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	printJSON(&searchOutput{Query: query, Count: results.Len(), Results: results.Items})
}
