package portfolio

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// readSource opens a single YAML source file with its own viper instance.
// A missing or unparseable file is fatal for the whole invocation.
func readSource(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading source file %q: %w", path, err)
	}

	return v, nil
}

// decodeEntries decodes a YAML sequence of loose maps into typed entries.
// Elements that fail to decode are skipped with a warning, never fatal.
func decodeEntries[T any](raw any, logger *zap.Logger, collection, section string) []T {
	if raw == nil {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		if logger != nil {
			logger.Warn("skipping section with unexpected shape",
				zap.String("collection", collection),
				zap.String("section", section),
			)
		}
		return nil
	}

	entries := make([]T, 0, len(items))
	for idx, item := range items {
		var entry T
		if err := mapstructure.Decode(item, &entry); err != nil {
			if logger != nil {
				logger.Warn("skipping malformed entry",
					zap.String("collection", collection),
					zap.String("section", section),
					zap.Int("index", idx),
					zap.Error(err),
				)
			}
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// untitled reports whether an entry lacks a usable title. Such records are
// malformed per the data contract and are skipped with a warning.
func untitled(logger *zap.Logger, collection, section string, idx int, title string) bool {
	if strings.TrimSpace(title) != "" {
		return false
	}

	if logger != nil {
		logger.Warn("skipping record without a title",
			zap.String("collection", collection),
			zap.String("section", section),
			zap.Int("index", idx),
		)
	}

	return true
}
