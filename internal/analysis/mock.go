package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/referential"
)

// Mock analyzers produce deterministic records without any model calls. They
// keep the rest of the pipeline runnable offline.

var mockCities = []string{
	"Recife",
	"São Paulo",
	"Rio de Janeiro",
	"Porto Alegre",
	"Belo Horizonte",
	"Brasília",
	"Salvador",
	"Fortaleza",
	"Curitiba",
}

type mockJobAnalyzer struct {
	logger *zap.Logger
}

func (a *mockJobAnalyzer) Analyze(_ context.Context, path string) (*referential.Job, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job posting: %w", err)
	}

	id := stem(path)
	a.logger.Debug("mock analyzing job posting", zap.String("job", id))

	lower := strings.ToLower(string(content))
	var city *string
	for _, candidate := range mockCities {
		if strings.Contains(lower, strings.ToLower(candidate)) {
			c := candidate
			city = &c
			break
		}
	}
	if city == nil && !strings.Contains(lower, "remote") {
		return nil, fmt.Errorf("location not found in job posting %s", id)
	}

	education := 3
	return &referential.Job{
		ID:             id,
		City:           city,
		Remote:         city == nil,
		Domain:         1,
		EducationLevel: &education,
		Languages:      []string{"pt"},
		Experience:     2,
		Description:    "Mock job description",
		Skills:         []referential.JobSkill{},
	}, nil
}

type mockTrainingAnalyzer struct {
	logger *zap.Logger
}

func (a *mockTrainingAnalyzer) Analyze(_ context.Context, path string) (*referential.Training, error) {
	id := stem(path)
	a.logger.Debug("mock analyzing training posting", zap.String("training", id))

	number, err := referential.TrainingNumber(id)
	if err != nil {
		return nil, err
	}

	online := number%2 == 0
	var city *string
	if !online {
		c := mockCities[number%len(mockCities)]
		city = &c
	}

	return &referential.Training{
		ID:                id,
		City:              city,
		Online:            online,
		Locale:            "en-US",
		DurationWeeks:     4,
		Certification:     true,
		Domain:            2,
		SkillsDescription: "Mock skills description",
		LevelChange:       referential.TrainingLevelChange(number),
		TargetJob:         "Data Analyst",
	}, nil
}

type mockPersonaAnalyzer struct {
	logger *zap.Logger
}

func (a *mockPersonaAnalyzer) Analyze(_ context.Context, id string, _ []string, _ *referential.ManualIntent) (*referential.Persona, error) {
	a.logger.Debug("mock analyzing persona", zap.String("persona", id))

	city := "MockCity"
	return &referential.Persona{ID: id, Age: 30, City: &city}, nil
}
