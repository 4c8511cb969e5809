// Package ai wraps the external text-generation and embedding providers.
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/pageza/recipe-finder/backend/internal/cache"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from AI provider")

// TextGenerator produces free-form text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CachingGenerator memoizes generator responses keyed by prompt hash.
type CachingGenerator struct {
	next  TextGenerator
	cache cache.Cache
}

// NewCachingGenerator wraps next with c.
func NewCachingGenerator(next TextGenerator, c cache.Cache) *CachingGenerator {
	return &CachingGenerator{next: next, cache: c}
}

// PromptKey returns the cache key used for prompt.
func PromptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "prompt:" + hex.EncodeToString(sum[:])
}

func (g *CachingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := PromptKey(prompt)
	if data, ok, err := g.cache.Get(ctx, key); err != nil {
		log.Printf("[Cache] AI response lookup failed: %v", err)
	} else if ok {
		return string(data), nil
	}

	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := g.cache.Set(ctx, key, []byte(text)); err != nil {
		log.Printf("[Cache] failed to store AI response: %v", err)
	}
	return text, nil
}

// Forget drops the cached response for prompt, so a retry reaches the provider.
func (g *CachingGenerator) Forget(ctx context.Context, prompt string) error {
	if err := g.cache.Delete(ctx, PromptKey(prompt)); err != nil {
		return fmt.Errorf("failed to invalidate AI response: %w", err)
	}
	return nil
}
