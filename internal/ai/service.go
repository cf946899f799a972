package ai

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openfma/fma/internal/category"
)

// ErrEmptyPrompt rejects plan generation without user input.
var ErrEmptyPrompt = errors.New("user prompt cannot be empty")

const completionTemperature = 0.1

// Service exposes the planner's AI flows on top of the fallback runner.
type Service struct {
	runner *Runner
	model  string
}

func NewService(runner *Runner, model string) *Service {
	return &Service{runner: runner, model: model}
}

// GeneratePlan asks the model for a full plan XML document for the target
// year. The caller is expected to sanitize and validate the result.
func (s *Service) GeneratePlan(ctx context.Context, userPrompt string, targetYear int) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", ErrEmptyPrompt
	}

	prompt := strings.NewReplacer(
		"{TARGET_YEAR}", strconv.Itoa(targetYear),
		"{USER_PROMPT_INPUT}", userPrompt,
	).Replace(planSystemPrompt)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating plan: %w", err)
	}

	return content, nil
}

// Categorize asks the model to map item labels onto category ids and returns
// the raw JSON answer. Shape validation is the caller's concern.
func (s *Service) Categorize(ctx context.Context, labels []string, income, expense []category.Definition) (string, error) {
	prompt := strings.NewReplacer(
		"{PLAN_DATA}", strings.Join(labels, "\n"),
		"{INCOME_ONLY_CATEGORIES}", catalogLines(income),
		"{EXPENSE_ONLY_CATEGORIES}", catalogLines(expense),
	).Replace(categorizeSystemPrompt)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("categorizing items: %w", err)
	}

	return content, nil
}

func (s *Service) Models(ctx context.Context) ([]Model, error) {
	return s.runner.ListModels(ctx)
}

func (s *Service) complete(ctx context.Context, systemPrompt string) (string, error) {
	content, err := s.runner.Completion(ctx, []Message{
		{Role: "system", Content: systemPrompt},
	}, CompletionOptions{Model: s.model, Temperature: completionTemperature})
	if err != nil {
		return "", err
	}

	return stripFences(content), nil
}

func catalogLines(cats []category.Definition) string {
	lines := make([]string, 0, len(cats))
	for _, c := range cats {
		lines = append(lines, c.ID+": "+c.Label())
	}

	return strings.Join(lines, "\n")
}
