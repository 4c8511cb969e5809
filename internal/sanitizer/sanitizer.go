// Package sanitizer turns loosely structured text returned by a generative
// text API into a syntactically valid JSON document.
package sanitizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrExtractionFailed is returned when no JSON boundary is found or every
// parse and repair attempt failed.
var ErrExtractionFailed = errors.New("no valid JSON object found in AI response")

var (
	trailingCommaBracket = regexp.MustCompile(`,[ \t\r\n]*]`)
	trailingCommaBrace   = regexp.MustCompile(`,[ \t\r\n]*}`)
	doubleBraceBlock     = regexp.MustCompile(`(?s)\{\{.*\}\}`)
	codeFence            = regexp.MustCompile("```[a-zA-Z]*\\n|```")
)

// Sanitizer extracts JSON from AI responses. The zero value is ready to use.
type Sanitizer struct {
	deepRepair bool
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithDeepRepair enables a final jsonrepair pass over the brace-bounded
// candidate once the regular stages have failed.
func WithDeepRepair() Option {
	return func(s *Sanitizer) {
		s.deepRepair = true
	}
}

// New creates a Sanitizer with the given options.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSanitizer = New()

// ExtractJSON extracts a JSON object from raw using the default Sanitizer.
func ExtractJSON(raw string) (string, error) {
	return defaultSanitizer.Extract(raw)
}

// Decode extracts a JSON object from raw and decodes it into a T.
func Decode[T any](raw string) (T, error) {
	var out T
	err := defaultSanitizer.Decode(raw, &out)
	return out, err
}

// Extract returns the JSON object contained in raw, or ErrExtractionFailed.
//
// The span from the first '{' to the last '}' is tried first, with trailing
// commas removed. If that does not parse, a block delimited by doubled braces
// is searched for and given the same treatment.
func (s *Sanitizer) Extract(raw string) (string, error) {
	candidate, bounded := boundingSpan(raw)
	if bounded {
		if out, ok := validate(candidate); ok {
			return out, nil
		}
	}

	if block := doubleBraceBlock.FindString(raw); block != "" {
		if out, ok := validate(block); ok {
			return out, nil
		}
		if out, ok := validate(collapseDoubledBraces(block)); ok {
			return out, nil
		}
	}

	if s.deepRepair && bounded {
		if repaired, err := jsonrepair.JSONRepair(candidate); err == nil && isObject(repaired) {
			return repaired, nil
		}
	}

	return "", ErrExtractionFailed
}

// Decode extracts the JSON object contained in raw and unmarshals it into v.
func (s *Sanitizer) Decode(raw string, v any) error {
	out, err := s.Extract(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return nil
}

// RemoveTrailingCommas drops commas that directly precede a closing bracket
// or brace, tolerating whitespace in between.
func RemoveTrailingCommas(s string) string {
	s = trailingCommaBracket.ReplaceAllString(s, "]")
	return trailingCommaBrace.ReplaceAllString(s, "}")
}

// StripFences removes markdown code fences from free-form AI output.
func StripFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}

func boundingSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// validate accepts candidate as is when it is already valid, otherwise
// tries again after trailing comma repair.
func validate(candidate string) (string, bool) {
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}
	repaired := RemoveTrailingCommas(candidate)
	if json.Valid([]byte(repaired)) {
		return repaired, true
	}
	return "", false
}

// collapseDoubledBraces drops the outer brace of each end of a block that
// starts with "{{" and ends with "}}". Inner braces are left alone.
func collapseDoubledBraces(s string) string {
	if len(s) < 4 || !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return s
	}
	return s[1 : len(s)-1]
}

func isObject(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}
