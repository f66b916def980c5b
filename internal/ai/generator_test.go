package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		"```json\n{\"a\": 1}\n```",
		"```\n{\"a\": 1}\n```",
		"  \n```json\n{\"a\": 1}\n```\n  ",
		"`{\"a\": 1}`",
	}

	for _, input := range inputs {
		assert.Equal(t, `{"a": 1}`, ExtractJSON(input))
	}
}

type stubGenerator struct {
	response string
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func (s *stubGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func TestStructured(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	gen := &stubGenerator{response: "```json\n{\"name\": \"x\", \"count\": 3}\n```"}
	decoded, err := Structured[payload](context.Background(), gen, "prompt")
	require.NoError(t, err)
	assert.Equal(t, &payload{Name: "x", Count: 3}, decoded)
	assert.Equal(t, "prompt", gen.prompt)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	type payload struct{}

	_, err := Decode[payload]("not json at all")
	assert.Error(t, err)
}
