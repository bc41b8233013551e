package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alynch/portfolio-matcher/internal/portfolio"
)

const (
	// DefaultWeight is used for every token the ruleset does not list.
	DefaultWeight = 1.0
	// DefaultFeedbackStep is the per-token weight adjustment of one
	// accept/reject outcome.
	DefaultFeedbackStep = 1.0
)

// RuleSet maps tokens to scoring weights. It is explicit state: loaded by
// the caller, passed into ranking and feedback, and persisted by the caller
// when a run mutated it.
type RuleSet struct {
	weights map[string]float64
}

func NewRuleSet() *RuleSet {
	return &RuleSet{weights: make(map[string]float64)}
}

// LoadRuleSet reads a ruleset file (a flat token to weight JSON object).
// A missing or empty file yields an empty ruleset: the file is this tool's
// own output and appears after the first feedback write. A file that exists
// but cannot be parsed is an error.
func LoadRuleSet(path string) (*RuleSet, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewRuleSet(), nil
		}
		return nil, fmt.Errorf("opening ruleset file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return NewRuleSet(), nil
	}

	rules := NewRuleSet()
	if err := json.NewDecoder(file).Decode(&rules.weights); err != nil {
		return nil, fmt.Errorf("parsing ruleset file %q: %w", path, err)
	}

	return rules, nil
}

// SaveTo writes the ruleset back as indented JSON. The write goes through a
// temp file in the same directory and a rename, so readers never observe a
// partial file.
func (rs *RuleSet) SaveTo(path string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".ruleset-*.json")
	if err != nil {
		return err
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs.weights); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Weight returns the scoring weight for a token, falling back to the
// default for unlisted tokens.
func (rs *RuleSet) Weight(token string) float64 {
	if rs == nil || rs.weights == nil {
		return DefaultWeight
	}
	if weight, ok := rs.weights[token]; ok {
		return weight
	}
	return DefaultWeight
}

func (rs *RuleSet) Len() int {
	return len(rs.weights)
}

// Tokens returns the listed tokens in sorted order.
func (rs *RuleSet) Tokens() []string {
	tokens := make([]string, 0, len(rs.weights))
	for token := range rs.weights {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

func (rs *RuleSet) set(token string, weight float64) {
	if rs.weights == nil {
		rs.weights = make(map[string]float64)
	}
	rs.weights[token] = weight
}

// ApplyFeedback adjusts the weight of every token shared between the query
// and the record: up by step when the record was accepted, down when it was
// rejected, never below zero. It returns the adjusted tokens in sorted
// order.
func (rs *RuleSet) ApplyFeedback(query string, record *portfolio.Record, accepted bool, step float64) []string {
	if step <= 0 {
		step = DefaultFeedbackStep
	}

	queryTokens := Tokenize(query)

	var adjusted []string
	for token := range Tokenize(record.SearchText()) {
		if _, ok := queryTokens[token]; !ok {
			continue
		}

		weight := rs.Weight(token)
		if accepted {
			weight += step
		} else {
			weight -= step
		}
		if weight < 0 {
			weight = 0
		}

		rs.set(token, weight)
		adjusted = append(adjusted, token)
	}

	sort.Strings(adjusted)

	return adjusted
}
