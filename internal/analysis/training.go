package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

type aiTrainingAnalyzer struct {
	gen    ai.Generator
	logger *zap.Logger
}

type trainingInfo struct {
	City              *string `json:"city"`
	Online            bool    `json:"online"`
	Locale            string  `json:"locale"`
	DurationWeeks     int     `json:"duration_weeks"`
	Certification     bool    `json:"certification"`
	Domain            int     `json:"domain"`
	SkillsDescription string  `json:"skills_description"`
	TargetJob         string  `json:"target_job"`
}

func trainingPrompt(content, levelChange string) string {
	var b strings.Builder
	b.WriteString(`You are given training descriptions for a Brazilian audience.
Provide concise and accurate information based on the provided description.
IMPORTANT: Always write your text in English, regardless of the description language.

Respond with a single JSON object with these fields:
- "city" (string or null): City where the training is held, null if not mentioned.
  Remote is not a city; if the training is fully remote this field is null.
  "Brasil" and "Brazil" are not valid cities and should be null as well.
- "online" (boolean): whether the training can be attended online (false if not mentioned).
- "locale" (string): locale of the training (default "en-US").
- "duration_weeks" (integer): duration of the training in weeks (default 0).
- "certification" (boolean): whether the training offers certification (default false).
- "domain" (integer): domain or field of the training. Possible values are:
`)
	b.WriteString(formatCodes(referential.Domains, false))
	b.WriteString(`- "skills_description" (string): the skills this training aims to teach or improve.
  List skills relevant to the training content; avoid generic terms like 'Communication' or 'Management'.
  The level change is already known from another field, so focus on the skills themselves.
- "target_job" (string): the type of job the training prepares for (e.g. Data Scientist, Web Developer).
  When the job is generic, include the domain so it is clear what kind of job it is,
  for example "Data Analyst in Finance" instead of just "Data Analyst".

# Training Metadata
- This training improves a set of skills from ` + levelChange + `.
- Only list skills relevant to this level change, not all skills mentioned in the description.

# Training Description

`)
	b.WriteString(content)
	return b.String()
}

func (a *aiTrainingAnalyzer) Analyze(ctx context.Context, path string) (*referential.Training, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training posting: %w", err)
	}

	id := stem(path)
	number, err := referential.TrainingNumber(id)
	if err != nil {
		return nil, err
	}
	levelChange := referential.TrainingLevelChange(number)

	a.logger.Debug("analyzing training posting", zap.String("training", id))

	info, err := ai.Structured[trainingInfo](ctx, a.gen, trainingPrompt(string(content), levelChange))
	if err != nil {
		return nil, fmt.Errorf("analyze training %s: %w", id, err)
	}

	return &referential.Training{
		ID:                id,
		City:              info.City,
		Online:            info.Online,
		Locale:            info.Locale,
		DurationWeeks:     info.DurationWeeks,
		Certification:     info.Certification,
		Domain:            info.Domain,
		SkillsDescription: info.SkillsDescription,
		LevelChange:       levelChange,
		TargetJob:         info.TargetJob,
	}, nil
}
