// Package ai defines the provider-neutral text generation contract used by
// the extraction, interview and suggestion components.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Generator produces model completions. GenerateJSON asks the provider for a
// JSON response; callers still run the output through Structured because
// models occasionally wrap payloads in markdown fences anyway.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// ExtractJSON strips markdown code fences around a JSON payload.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// Structured requests a JSON completion and decodes it into T.
func Structured[T any](ctx context.Context, gen Generator, prompt string) (*T, error) {
	raw, err := gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return Decode[T](raw)
}

// Decode parses a model response into T, tolerating markdown fences.
func Decode[T any](raw string) (*T, error) {
	cleaned := ExtractJSON(raw)
	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return &out, nil
}
