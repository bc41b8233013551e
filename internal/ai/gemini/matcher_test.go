package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alynch/portfolio-matcher/internal/portfolio"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRecord() *portfolio.Record {
	return &portfolio.Record{
		ID:         "cert-ml-001",
		Collection: portfolio.CollectionCertificates,
		Title:      "Machine Learning Specialization",
		Issuer:     "DeepLearning.AI",
	}
}

func TestMatcherEvaluate(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.9, "reason": "Matches skills"}`}
	matcher := NewMatcher(stub, 0.5, 0, zap.NewNop())

	assessment, err := matcher.Evaluate(context.Background(), "machine learning engineer", testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit {
		t.Fatalf("expected fit to be true")
	}

	if assessment.Score != 0.9 {
		t.Fatalf("expected score 0.9, got %v", assessment.Score)
	}

	if assessment.Reason == "" {
		t.Fatalf("expected reason to be populated")
	}

	if assessment.Raw == "" {
		t.Fatalf("expected raw response to be kept")
	}

	if !strings.Contains(stub.lastPrompt, "machine learning engineer") {
		t.Fatalf("expected query in prompt")
	}

	if !strings.Contains(stub.lastPrompt, "Machine Learning Specialization") {
		t.Fatalf("expected record payload in prompt")
	}
}

func TestMatcherEvaluateScoreThreshold(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.3, "reason": "weak match"}`}
	matcher := NewMatcher(stub, 0.5, 0, zap.NewNop())

	assessment, err := matcher.Evaluate(context.Background(), "python", testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Fit {
		t.Fatalf("expected fit to be false below threshold")
	}
}

func TestMatcherEvaluateFencedResponse(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"fit\": true, \"score\": \"0.8\", \"reason\": \"ok\"}\n```"}
	matcher := NewMatcher(stub, 0, 0, zap.NewNop())

	assessment, err := matcher.Evaluate(context.Background(), "python", testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit || assessment.Score != 0.8 {
		t.Fatalf("unexpected assessment: %+v", assessment)
	}
}

func TestMatcherEvaluateMalformedResponse(t *testing.T) {
	stub := &stubGenerator{response: "sorry, I cannot help with that"}
	matcher := NewMatcher(stub, 0, 0, zap.NewNop())

	if _, err := matcher.Evaluate(context.Background(), "python", testRecord()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMatcherEvaluateGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	matcher := NewMatcher(stub, 0, 0, zap.NewNop())

	if _, err := matcher.Evaluate(context.Background(), "python", testRecord()); err == nil {
		t.Fatalf("expected generator error to propagate")
	}
}

func TestMatcherEvaluateRequiresInputs(t *testing.T) {
	matcher := NewMatcher(&stubGenerator{}, 0, 0, zap.NewNop())

	if _, err := matcher.Evaluate(context.Background(), "  ", testRecord()); err == nil {
		t.Fatalf("expected error for empty query")
	}

	if _, err := matcher.Evaluate(context.Background(), "python", nil); err == nil {
		t.Fatalf("expected error for nil record")
	}
}
