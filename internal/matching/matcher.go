package matching

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alynch/portfolio-matcher/internal/ai"
	"github.com/alynch/portfolio-matcher/internal/portfolio"
)

// Result is a scored reference to a record for a given query.
type Result struct {
	Ref     string            `json:"ref"`
	Record  *portfolio.Record `json:"record"`
	Score   float64           `json:"score"`
	Matched []string          `json:"matched_keywords,omitempty"`
	AI      *ai.FitAssessment `json:"ai,omitempty"`
}

// Results is an ordered list of match results, best first.
type Results struct {
	Items []*Result `json:"items"`
}

// Tokenize normalizes free text into a unique token set: lowercased, split
// on non-alphanumeric boundaries.
func Tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		tokens[field] = struct{}{}
	}

	return tokens
}

// Rank scores the records against the query and returns them ordered by
// score descending. Ties preserve the input order. Records scoring zero,
// either sharing no token with the query or matching only zero-weighted
// tokens, are dropped unless includeAll is set. An empty or whitespace-only
// query yields an empty result set.
func Rank(records []*portfolio.Record, query string, rules *RuleSet, includeAll bool) *Results {
	results := &Results{}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return results
	}

	for _, record := range records {
		score, matched := scoreRecord(queryTokens, record, rules)
		if score == 0 && !includeAll {
			continue
		}

		results.Items = append(results.Items, &Result{
			Ref:     record.Ref(),
			Record:  record,
			Score:   score,
			Matched: matched,
		})
	}

	results.sortByScore()

	return results
}

// Merge combines per-collection results into one ranked list. Scores are
// directly comparable since every collection shares the same ruleset; ties
// break on the order the result lists are passed in, then source order.
func Merge(results ...*Results) *Results {
	merged := &Results{}
	for _, r := range results {
		merged.Items = append(merged.Items, r.Items...)
	}
	merged.sortByScore()
	return merged
}

func scoreRecord(queryTokens map[string]struct{}, record *portfolio.Record, rules *RuleSet) (float64, []string) {
	var score float64
	var matched []string

	for token := range Tokenize(record.SearchText()) {
		if _, ok := queryTokens[token]; !ok {
			continue
		}
		score += rules.Weight(token)
		matched = append(matched, token)
	}

	sort.Strings(matched)

	return score, matched
}

func (r *Results) sortByScore() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].Score > r.Items[j].Score
	})
}

func (r *Results) Len() int {
	return len(r.Items)
}

func (r *Results) FindByRef(ref string) *Result {
	for _, result := range r.Items {
		if result.Ref == ref {
			return result
		}
	}
	return nil
}

func (r *Results) Refs() []string {
	refs := make([]string, 0, len(r.Items))
	for _, result := range r.Items {
		refs = append(refs, result.Ref)
	}
	return refs
}

// KeepField drops every result whose record field differs from want,
// preserving order. It returns the refs of the dropped results.
func (r *Results) KeepField(name, want string) []string {
	var dropped []string

	kept := r.Items[:0]
	for _, result := range r.Items {
		if result.Record.GetStringField(name) == want {
			kept = append(kept, result)
			continue
		}
		dropped = append(dropped, result.Ref)
	}
	r.Items = kept

	return dropped
}

// KeepIssuer drops every result whose issuer does not contain the given
// issuer, compared case-insensitively. Preserves order.
func (r *Results) KeepIssuer(issuer string) []string {
	var dropped []string

	want := strings.ToLower(issuer)
	kept := r.Items[:0]
	for _, result := range r.Items {
		if strings.Contains(strings.ToLower(result.Record.Issuer), want) {
			kept = append(kept, result)
			continue
		}
		dropped = append(dropped, result.Ref)
	}
	r.Items = kept

	return dropped
}

// KeepMinScore drops every result scoring below min, preserving order.
func (r *Results) KeepMinScore(min float64) []string {
	var dropped []string

	kept := r.Items[:0]
	for _, result := range r.Items {
		if result.Score >= min {
			kept = append(kept, result)
			continue
		}
		dropped = append(dropped, result.Ref)
	}
	r.Items = kept

	return dropped
}
