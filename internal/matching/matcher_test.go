package matching

import (
	"testing"

	"github.com/alynch/portfolio-matcher/internal/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("Senior ML/AI Engineer (Python, Go)")

	for _, want := range []string{"senior", "ml", "ai", "engineer", "python", "go"} {
		assert.Contains(t, tokens, want)
	}
	assert.Len(t, tokens, 6)

	assert.Empty(t, Tokenize("   \t\n"))
	assert.Empty(t, Tokenize("!!! --- ..."))
}

func TestRankScoresSharedTokens(t *testing.T) {
	t.Parallel()

	records := []*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "AI Engineer", Keywords: []string{"python", "ml"}},
		{ID: "2", Collection: "resume", Title: "Barista", Keywords: []string{"coffee"}},
	}

	results := Rank(records, "python ml role", NewRuleSet(), false)

	require.Equal(t, 1, results.Len())
	assert.Equal(t, "resume/1", results.Items[0].Ref)
	assert.Equal(t, 2.0, results.Items[0].Score)
	assert.Equal(t, []string{"ml", "python"}, results.Items[0].Matched)
}

func TestRankExcludesZeroScoresByDefault(t *testing.T) {
	t.Parallel()

	records := []*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "Barista", Keywords: []string{"coffee"}},
	}

	results := Rank(records, "python", NewRuleSet(), false)
	assert.Zero(t, results.Len())

	results = Rank(records, "python", NewRuleSet(), true)
	require.Equal(t, 1, results.Len())
	assert.Zero(t, results.Items[0].Score)
	assert.Empty(t, results.Items[0].Matched)
}

func TestRankEmptyQueryYieldsEmptyResults(t *testing.T) {
	t.Parallel()

	records := []*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "AI Engineer"},
	}

	for _, query := range []string{"", "   ", "\t\n"} {
		results := Rank(records, query, NewRuleSet(), true)
		assert.Zero(t, results.Len())
	}
}

func TestRankUsesRulesetWeights(t *testing.T) {
	t.Parallel()

	records := []*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "Engineer", Keywords: []string{"python", "etl"}},
	}

	rules := NewRuleSet()
	rules.set("python", 3)
	rules.set("etl", 0)

	results := Rank(records, "python etl", rules, false)

	require.Equal(t, 1, results.Len())
	// python weighted 3, etl pushed to zero, engineer not in query.
	assert.Equal(t, 3.0, results.Items[0].Score)
	assert.Equal(t, []string{"etl", "python"}, results.Items[0].Matched)
}

func TestRankOrderingIsStable(t *testing.T) {
	t.Parallel()

	records := []*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "Data Engineer", Keywords: []string{"python"}},
		{ID: "2", Collection: "resume", Title: "ML Engineer", Keywords: []string{"python"}},
		{ID: "3", Collection: "resume", Title: "Platform Engineer", Keywords: []string{"python", "go"}},
	}

	for range 5 {
		results := Rank(records, "python go engineer", NewRuleSet(), false)

		require.Equal(t, 3, results.Len())
		// Record 3 matches three tokens; 1 and 2 tie and keep input order.
		assert.Equal(t, "resume/3", results.Items[0].Ref)
		assert.Equal(t, "resume/1", results.Items[1].Ref)
		assert.Equal(t, "resume/2", results.Items[2].Ref)
	}
}

func TestMergeBreaksTiesByCollectionOrder(t *testing.T) {
	t.Parallel()

	rules := NewRuleSet()

	resume := Rank([]*portfolio.Record{
		{ID: "1", Collection: "resume", Title: "Engineer", Keywords: []string{"python"}},
	}, "python coursera", rules, false)

	certificates := Rank([]*portfolio.Record{
		{ID: "c1", Collection: "certificates", Title: "Coursera ML", Issuer: "Coursera"},
	}, "python coursera", rules, false)

	merged := Merge(resume, certificates)

	require.Equal(t, 2, merged.Len())
	assert.Equal(t, "resume/1", merged.Items[0].Ref)
	assert.Equal(t, "certificates/c1", merged.Items[1].Ref)

	// Reversed argument order flips the tie-break.
	merged = Merge(certificates, resume)
	assert.Equal(t, "certificates/c1", merged.Items[0].Ref)
	assert.Equal(t, "resume/1", merged.Items[1].Ref)
}

func TestResultsKeepField(t *testing.T) {
	t.Parallel()

	results := &Results{Items: []*Result{
		{Ref: "resume/1", Record: &portfolio.Record{ID: "1", Collection: "resume"}},
		{Ref: "certificates/c1", Record: &portfolio.Record{ID: "c1", Collection: "certificates"}},
		{Ref: "resume/2", Record: &portfolio.Record{ID: "2", Collection: "resume"}},
	}}

	dropped := results.KeepField(portfolio.RecordCollectionField, "resume")

	assert.Equal(t, []string{"certificates/c1"}, dropped)
	assert.Equal(t, []string{"resume/1", "resume/2"}, results.Refs())
}

func TestResultsKeepIssuer(t *testing.T) {
	t.Parallel()

	results := &Results{Items: []*Result{
		{Ref: "certificates/c1", Record: &portfolio.Record{ID: "c1", Issuer: "DeepLearning.AI"}},
		{Ref: "certificates/c2", Record: &portfolio.Record{ID: "c2", Issuer: "Google"}},
	}}

	dropped := results.KeepIssuer("deeplearning")

	assert.Equal(t, []string{"certificates/c2"}, dropped)
	assert.Equal(t, []string{"certificates/c1"}, results.Refs())
}

func TestResultsKeepMinScore(t *testing.T) {
	t.Parallel()

	results := &Results{Items: []*Result{
		{Ref: "resume/1", Record: &portfolio.Record{ID: "1"}, Score: 3},
		{Ref: "resume/2", Record: &portfolio.Record{ID: "2"}, Score: 1},
	}}

	dropped := results.KeepMinScore(2)

	assert.Equal(t, []string{"resume/2"}, dropped)
	assert.Equal(t, []string{"resume/1"}, results.Refs())
}
