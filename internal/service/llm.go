package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/sanitizer"
)

// InvalidFormatMessage is shown to users when the AI output cannot be recovered.
const InvalidFormatMessage = "Sorry, the AI returned an invalid format. Please try again."

const logSnippetLen = 300

type promptForgetter interface {
	Forget(ctx context.Context, prompt string) error
}

// LLMService sends prompts to the text generator and turns the replies into typed values.
type LLMService struct {
	generator ai.TextGenerator
	sanitizer *sanitizer.Sanitizer
}

func NewLLMService(generator ai.TextGenerator, s *sanitizer.Sanitizer) *LLMService {
	if s == nil {
		s = sanitizer.New()
	}
	return &LLMService{
		generator: generator,
		sanitizer: s,
	}
}

// Complete runs prompt and decodes the sanitized reply into v. kind names the
// request in logs and errors.
func (s *LLMService) Complete(ctx context.Context, kind, prompt string, v interface{}) error {
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLMService] %s generation failed: %v", kind, err)
		return fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	if err := s.sanitizer.Decode(raw, v); err != nil {
		log.Printf("[LLMService] invalid %s response: %q", kind, truncate(raw, logSnippetLen))
		s.forget(ctx, kind, prompt)
		return fmt.Errorf("%w: %w", ErrInvalidAIFormat, err)
	}
	return nil
}

// Text runs prompt and returns the reply as plain text, without code fences
// or markdown emphasis and heading marks.
func (s *LLMService) Text(ctx context.Context, kind, prompt string) (string, error) {
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLMService] %s generation failed: %v", kind, err)
		return "", fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	text := strings.TrimSpace(markdownMarks.Replace(sanitizer.StripFences(raw)))
	if text == "" {
		log.Printf("[LLMService] empty %s response: %q", kind, truncate(raw, logSnippetLen))
		s.forget(ctx, kind, prompt)
		return "", fmt.Errorf("%w: %w", ErrInvalidAIFormat, ai.ErrEmptyResponse)
	}
	return text, nil
}

var markdownMarks = strings.NewReplacer("*", "", "#", "")

// forget drops a cached reply so a retry asks the provider again.
func (s *LLMService) forget(ctx context.Context, kind, prompt string) {
	f, ok := s.generator.(promptForgetter)
	if !ok {
		return
	}
	if err := f.Forget(ctx, prompt); err != nil {
		log.Printf("[LLMService] failed to drop cached %s response: %v", kind, err)
	}
}

// EstimateMacros asks for an approximate macronutrient breakdown of ingredients.
func (s *LLMService) EstimateMacros(ctx context.Context, ingredients []string) (*model.Macros, error) {
	var macros model.Macros
	if err := s.Complete(ctx, "macros", ai.MacrosPrompt(ingredients), &macros); err != nil {
		return nil, err
	}
	return &macros, nil
}

// AnalyzeNutrition returns the structured nutrition summary for ingredients.
func (s *LLMService) AnalyzeNutrition(ctx context.Context, ingredients string) (*model.NutritionSummary, error) {
	if strings.TrimSpace(ingredients) == "" {
		return nil, fmt.Errorf("%w: ingredients are required", ErrInvalidInput)
	}
	summary := model.NutritionSummary{
		Vitamins: []string{},
		Benefits: []string{},
		Concerns: []string{},
	}
	if err := s.Complete(ctx, "nutrition analysis", ai.NutritionPrompt(ingredients), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
