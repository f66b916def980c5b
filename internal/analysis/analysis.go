// Package analysis extracts structured records from raw markdown: job
// postings, training postings and interview transcripts. Each concern has an
// AI-backed implementation and a deterministic mock used when no generator is
// configured.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

// JobAnalyzer turns one job posting file into a structured record.
type JobAnalyzer interface {
	Analyze(ctx context.Context, path string) (*referential.Job, error)
}

// TrainingAnalyzer turns one training posting file into a structured record.
type TrainingAnalyzer interface {
	Analyze(ctx context.Context, path string) (*referential.Training, error)
}

// PersonaAnalyzer infers a persona profile from its interview transcripts.
// A manual intent override short-circuits the age and intent inference.
type PersonaAnalyzer interface {
	Analyze(ctx context.Context, id string, transcripts []string, manual *referential.ManualIntent) (*referential.Persona, error)
}

// NewJobAnalyzer returns the AI analyzer, or the mock when gen is nil.
func NewJobAnalyzer(gen ai.Generator, logger *zap.Logger) JobAnalyzer {
	if gen == nil {
		return &mockJobAnalyzer{logger: logger}
	}
	return &aiJobAnalyzer{gen: gen, logger: logger}
}

// NewTrainingAnalyzer returns the AI analyzer, or the mock when gen is nil.
func NewTrainingAnalyzer(gen ai.Generator, logger *zap.Logger) TrainingAnalyzer {
	if gen == nil {
		return &mockTrainingAnalyzer{logger: logger}
	}
	return &aiTrainingAnalyzer{gen: gen, logger: logger}
}

// NewPersonaAnalyzer returns the AI analyzer, or the mock when gen is nil.
// Jobs are needed to constrain the city inference to cities that exist.
func NewPersonaAnalyzer(gen ai.Generator, jobs []*referential.Job, logger *zap.Logger) PersonaAnalyzer {
	if gen == nil {
		return &mockPersonaAnalyzer{logger: logger}
	}
	return &aiPersonaAnalyzer{gen: gen, jobs: jobs, logger: logger}
}

// formatCodes renders a code taxonomy as prompt lines, ascending by code.
func formatCodes(m map[int]string, skipZero bool) string {
	codes := make([]int, 0, len(m))
	for code := range m {
		if skipZero && code == 0 {
			continue
		}
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var b strings.Builder
	for _, code := range codes {
		fmt.Fprintf(&b, "%q: %s\n", fmt.Sprint(code), m[code])
	}
	return b.String()
}
