package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/alynch/portfolio-matcher/internal/logger"
	"github.com/alynch/portfolio-matcher/internal/matching"
	"github.com/alynch/portfolio-matcher/internal/portfolio"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// printJSON writes structured command output to stdout. Logs go to stderr,
// so stdout stays parseable.
func printJSON(v any) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encoding output: %v", err)
	}

	fmt.Println(string(pretty))
}

// setup builds the logger, config, record store and ruleset every data
// command starts from. Failures here are fatal: without sources there is
// nothing to do.
func setup() (*zap.Logger, *Config, *portfolio.Store, *matching.RuleSet) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := portfolio.Load(config.Sources, l)
	if err != nil {
		l.Fatal("loading record sources", zap.Error(err))
	}

	l.Info("loaded portfolio records",
		zap.Int("collections", len(store.Collections)),
		zap.Int("records", store.Len()),
	)

	rules := matching.NewRuleSet()
	if config.RulesetFile != "" {
		rules, err = matching.LoadRuleSet(config.RulesetFile)
		if err != nil {
			l.Fatal("loading ruleset", zap.Error(err))
		}

		l.Debug("loaded ruleset",
			zap.String("path", config.RulesetFile),
			zap.Int("tokens", rules.Len()),
		)
	}

	return l, config, store, rules
}

// rankAll runs the matcher once per collection with the shared ruleset and
// merges the per-collection results into one ranked list.
func rankAll(store *portfolio.Store, query string, rules *matching.RuleSet, includeAll bool) *matching.Results {
	perCollection := make([]*matching.Results, 0, len(store.Collections))
	for _, collection := range store.Collections {
		perCollection = append(perCollection, matching.Rank(collection.Records, query, rules, includeAll))
	}

	return matching.Merge(perCollection...)
}
