package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

type aiJobAnalyzer struct {
	gen    ai.Generator
	logger *zap.Logger
}

type jobInfo struct {
	City           *string               `json:"city"`
	Remote         bool                  `json:"remote"`
	Domain         int                   `json:"domain"`
	EducationLevel *int                  `json:"education_level"`
	Languages      []string              `json:"languages"`
	Experience     int                   `json:"experience"`
	Description    string                `json:"description"`
	Skills         []referential.JobSkill `json:"skills"`
}

func jobPrompt(content string) string {
	var b strings.Builder
	b.WriteString(`You are given job descriptions for a Brazilian job board.
Provide concise and accurate information based on the provided description.
IMPORTANT: Always write your text in English, regardless of the job description language.

Respond with a single JSON object with these fields:
- "city" (string or null): City where the job is located, null if not mentioned.
  Remote is not a city; if the job is fully remote this field is null.
  "Brasil" and "Brazil" are not valid cities and should be null as well.
- "remote" (boolean): whether the job can be attended remotely (false if not mentioned).
- "domain" (integer): domain or field of the job. Possible values are:
`)
	b.WriteString(formatCodes(referential.Domains, false))
	b.WriteString(`- "education_level" (integer or null): Brazilian education level associated with the job (1 to 12), null if not mentioned. Possible values are:
`)
	b.WriteString(formatCodes(referential.EducationLevels, false))
	b.WriteString(`- "languages" (array of strings): required languages as 2-letter ISO codes (empty if not mentioned).
- "experience" (integer): required experience in years (0 if not mentioned).
- "description" (string): short description of the job (main responsibilities and tasks).
- "skills" (array of objects): expected skills with required levels. Each object has:
  - "skill" (string): a specific skill in English (e.g. Programming, Data Analysis).
    Avoid generic terms like 'Communication' or 'Management'.
  - "level" (integer): the required skill level. Possible values are:
`)
	b.WriteString(formatCodes(referential.SkillLevels, true))
	b.WriteString(`  - "required" (boolean): whether the skill is required (true) or just desired (false).

Job description:

`)
	b.WriteString(content)
	return b.String()
}

func (a *aiJobAnalyzer) Analyze(ctx context.Context, path string) (*referential.Job, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job posting: %w", err)
	}

	id := stem(path)
	a.logger.Debug("analyzing job posting", zap.String("job", id))

	info, err := ai.Structured[jobInfo](ctx, a.gen, jobPrompt(string(content)))
	if err != nil {
		return nil, fmt.Errorf("analyze job %s: %w", id, err)
	}

	if info.Languages == nil {
		info.Languages = []string{}
	}
	if info.Skills == nil {
		info.Skills = []referential.JobSkill{}
	}

	return &referential.Job{
		ID:             id,
		City:           info.City,
		Remote:         info.Remote,
		Domain:         info.Domain,
		EducationLevel: info.EducationLevel,
		Languages:      info.Languages,
		Experience:     info.Experience,
		Description:    info.Description,
		Skills:         info.Skills,
	}, nil
}

// stem strips the directory and extension from a posting path.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
