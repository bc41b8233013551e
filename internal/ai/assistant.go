package ai

import (
	"context"

	"github.com/alynch/portfolio-matcher/internal/portfolio"
)

// FitAssessment is a model's judgement of how well a record fits a query.
type FitAssessment struct {
	Fit    bool    `json:"fit"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
	Error  string  `json:"error,omitempty"`
	Raw    string  `json:"-"`
}

// Matcher evaluates a portfolio record against a free-text query.
type Matcher interface {
	Evaluate(ctx context.Context, query string, record *portfolio.Record) (*FitAssessment, error)
}
