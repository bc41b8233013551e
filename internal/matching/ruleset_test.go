package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alynch/portfolio-matcher/internal/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetDefaultWeight(t *testing.T) {
	t.Parallel()

	rules := NewRuleSet()
	assert.Equal(t, DefaultWeight, rules.Weight("python"))

	rules.set("python", 2.5)
	assert.Equal(t, 2.5, rules.Weight("python"))
	assert.Equal(t, DefaultWeight, rules.Weight("unlisted"))
}

func TestLoadRuleSetMissingFile(t *testing.T) {
	t.Parallel()

	rules, err := LoadRuleSet(filepath.Join(t.TempDir(), "ruleset.json"))

	require.NoError(t, err)
	assert.Zero(t, rules.Len())
}

func TestLoadRuleSetEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ruleset.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rules, err := LoadRuleSet(path)

	require.NoError(t, err)
	assert.Zero(t, rules.Len())
}

func TestLoadRuleSetMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ruleset.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadRuleSet(path)

	assert.Error(t, err)
}

func TestRuleSetSaveAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ruleset.json")

	rules := NewRuleSet()
	rules.set("python", 2)
	rules.set("ml", 0)

	require.NoError(t, rules.SaveTo(path))

	reloaded, err := LoadRuleSet(path)
	require.NoError(t, err)

	assert.Equal(t, 2, reloaded.Len())
	assert.Equal(t, 2.0, reloaded.Weight("python"))
	assert.Equal(t, 0.0, reloaded.Weight("ml"))
	assert.Equal(t, []string{"ml", "python"}, reloaded.Tokens())
}

func TestApplyFeedbackAccept(t *testing.T) {
	t.Parallel()

	record := &portfolio.Record{ID: "1", Collection: "resume", Title: "AI Engineer", Keywords: []string{"python", "ml"}}

	rules := NewRuleSet()
	adjusted := rules.ApplyFeedback("python ml role", record, true, 0)

	assert.Equal(t, []string{"ml", "python"}, adjusted)
	assert.Equal(t, 2.0, rules.Weight("python"))
	assert.Equal(t, 2.0, rules.Weight("ml"))
	// Tokens the record does not share with the query stay untouched.
	assert.Equal(t, DefaultWeight, rules.Weight("role"))
}

func TestApplyFeedbackRejectClampsAtZero(t *testing.T) {
	t.Parallel()

	record := &portfolio.Record{ID: "1", Collection: "resume", Title: "AI Engineer", Keywords: []string{"python", "ml"}}
	query := "python ml role"

	rules := NewRuleSet()
	adjusted := rules.ApplyFeedback(query, record, false, 0)

	assert.Equal(t, []string{"ml", "python"}, adjusted)
	assert.Equal(t, 0.0, rules.Weight("python"))
	assert.Equal(t, 0.0, rules.Weight("ml"))

	// Rejecting again never goes negative.
	rules.ApplyFeedback(query, record, false, 0)
	assert.Equal(t, 0.0, rules.Weight("python"))
	assert.Equal(t, 0.0, rules.Weight("ml"))

	// The same query now scores the record at zero, excluding it.
	results := Rank([]*portfolio.Record{record}, query, rules, false)
	assert.Zero(t, results.Len())

	results = Rank([]*portfolio.Record{record}, query, rules, true)
	require.Equal(t, 1, results.Len())
	assert.Equal(t, 0.0, results.Items[0].Score)
}

func TestApplyFeedbackCustomStep(t *testing.T) {
	t.Parallel()

	record := &portfolio.Record{ID: "1", Collection: "resume", Title: "Engineer", Keywords: []string{"python"}}

	rules := NewRuleSet()
	rules.ApplyFeedback("python", record, true, 0.5)

	assert.Equal(t, 1.5, rules.Weight("python"))
}

func TestApplyFeedbackNoSharedTokens(t *testing.T) {
	t.Parallel()

	record := &portfolio.Record{ID: "1", Collection: "resume", Title: "Barista", Keywords: []string{"coffee"}}

	rules := NewRuleSet()
	adjusted := rules.ApplyFeedback("python", record, true, 0)

	assert.Empty(t, adjusted)
	assert.Zero(t, rules.Len())
}
