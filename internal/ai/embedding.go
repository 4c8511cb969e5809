package ai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// EmbeddingDimensions matches the recipes.embedding vector column.
const EmbeddingDimensions = 768

// Embedder turns text into a fixed-size vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HashEmbedder is a deterministic bag-of-words embedder used when no
// embedding provider is configured.
type HashEmbedder struct{}

func (HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, EmbeddingDimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		sum := h.Sum32()
		idx := sum % EmbeddingDimensions
		if sum&(1<<31) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	normalize(vec)
	return vec, nil
}

func normalize(vec []float32) {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
}

// fitDimensions truncates or zero-pads v to EmbeddingDimensions.
func fitDimensions(v []float32) []float32 {
	if len(v) == EmbeddingDimensions {
		return v
	}
	out := make([]float32, EmbeddingDimensions)
	copy(out, v)
	return out
}
