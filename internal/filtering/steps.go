package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alynch/portfolio-matcher/internal/ai"
	"github.com/alynch/portfolio-matcher/internal/matching"
	"github.com/alynch/portfolio-matcher/internal/portfolio"
)

type collectionFilter struct {
	collection string
}

// NewCollection creates a filter that keeps results from a single collection.
func NewCollection() Filter {
	return &collectionFilter{}
}

func (f *collectionFilter) Name() string { return "collection" }

func (f *collectionFilter) Disable(string) {}

func (f *collectionFilter) IsEnabled() bool { return true }

func (f *collectionFilter) Validate(cfg *Config) error {
	f.collection = ""
	if cfg != nil {
		f.collection = strings.TrimSpace(cfg.Collection)
	}
	if f.collection == "" {
		return nil
	}

	switch f.collection {
	case portfolio.CollectionResume, portfolio.CollectionCertificates, portfolio.CollectionProjects:
		return nil
	default:
		return fmt.Errorf("unknown collection: %s", f.collection)
	}
}

func (f *collectionFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()
	if f.collection == "" {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.KeepField(portfolio.RecordCollectionField, f.collection)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("keeping results from a single collection",
			zap.String("collection", f.collection),
			zap.Strings("dropped_results", dropped),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *collectionFilter) Status() Status {
	details := map[string]string{}
	if f.collection != "" {
		details["collection"] = f.collection
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type issuerFilter struct {
	issuer string
}

// NewIssuer creates a filter that keeps results whose issuer matches.
func NewIssuer() Filter {
	return &issuerFilter{}
}

func (f *issuerFilter) Name() string { return "issuer" }

func (f *issuerFilter) Disable(string) {}

func (f *issuerFilter) IsEnabled() bool { return true }

func (f *issuerFilter) Validate(cfg *Config) error {
	f.issuer = ""
	if cfg != nil {
		f.issuer = strings.TrimSpace(cfg.Issuer)
	}
	return nil
}

func (f *issuerFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()
	if f.issuer == "" {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.KeepIssuer(f.issuer)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("keeping results by issuer",
			zap.String("issuer", f.issuer),
			zap.Strings("dropped_results", dropped),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *issuerFilter) Status() Status {
	details := map[string]string{}
	if f.issuer != "" {
		details["issuer"] = f.issuer
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type idFilter struct {
	id string
}

// NewID creates a filter that keeps a single result by record id.
func NewID() Filter {
	return &idFilter{}
}

func (f *idFilter) Name() string { return "id" }

func (f *idFilter) Disable(string) {}

func (f *idFilter) IsEnabled() bool { return true }

func (f *idFilter) Validate(cfg *Config) error {
	f.id = ""
	if cfg != nil {
		f.id = strings.TrimSpace(cfg.ID)
	}
	return nil
}

func (f *idFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()
	if f.id == "" {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.KeepField(portfolio.RecordIDField, f.id)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("keeping results by record id",
			zap.String("id", f.id),
			zap.Strings("dropped_results", dropped),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

type minScoreFilter struct {
	min float64
}

// NewMinScore creates a filter that drops results below a score threshold.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(string) {}

func (f *minScoreFilter) IsEnabled() bool { return true }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.min = 0
	if cfg != nil {
		if cfg.MinScore < 0 {
			return fmt.Errorf("minimum score must not be negative")
		}
		f.min = cfg.MinScore
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()
	if f.min == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.KeepMinScore(f.min)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping results below minimum score",
			zap.Float64("min_score", f.min),
			zap.Strings("dropped_results", dropped),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	details := map[string]string{}
	if f.min > 0 {
		details["min_score"] = strconv.FormatFloat(f.min, 'f', -1, 64)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type aiFitFilter struct {
	disabled bool
	reason   string
	config   *AIConfig
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit() Filter {
	return &aiFitFilter{}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	if !f.IsEnabled() {
		return nil
	}
	if cfg == nil || cfg.AI == nil || !cfg.AI.Enabled {
		return nil
	}
	if cfg.AI.Gemini == nil {
		return fmt.Errorf("gemini configuration is required when ai filter is enabled")
	}
	return nil
}

func (f *aiFitFilter) Apply(ctx context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()
	if f.config == nil || !f.config.Enabled {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}
	if deps.Matcher == nil {
		if deps.Logger != nil {
			deps.Logger.Info("ai matcher is not configured; skipping ai_fit filter")
		}
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	kept := make([]*matching.Result, 0, initial)
	for _, result := range r.Items {
		assessment, err := deps.Matcher.Evaluate(ctx, deps.Query, result.Record)
		if err != nil {
			if deps.Logger != nil {
				deps.Logger.Warn("AI evaluation failed",
					zap.String("record", result.Ref),
					zap.Error(err),
				)
			}
			result.AI = &ai.FitAssessment{Error: err.Error()}
			kept = append(kept, result)
			continue
		}

		if !assessment.Fit {
			if deps.Logger != nil {
				deps.Logger.Info("result rejected by AI provider",
					zap.String("record", result.Ref),
					zap.Float64("ai_score", assessment.Score),
					zap.String("reason", assessment.Reason),
				)
			}
			continue
		}

		if deps.Logger != nil {
			deps.Logger.Info("result approved by AI",
				zap.String("record", result.Ref),
				zap.Float64("ai_score", assessment.Score),
			)
		}

		result.AI = assessment
		kept = append(kept, result)
	}

	r.Items = kept

	return r, Step{Initial: initial, Dropped: initial - r.Len(), Left: r.Len()}, nil
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Gemini != nil {
			details["model"] = f.config.Gemini.Model
			details["max_log_length"] = strconv.Itoa(f.config.Gemini.MaxLogLength)
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
