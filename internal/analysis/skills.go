package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

// trainingsPerSkill groups the catalog into skills: consecutive trainings
// cover the same skill at ascending levels.
const trainingsPerSkill = 3

const skillTaxonomyPrompt = `You are an expert career coach and skills taxonomy builder.
Given a list of trainings (in ascending requirement level), you will aggregate skills they teach into a skills taxonomy (i.e. a single skill)
`

type skillTaxonomy struct {
	// The name of the aggregated skill, in title-case, in English. The skill
	// is not tied to a specific experience level, so no "Advanced", "Expert",
	// etc. in the name.
	Name string `json:"name"`
	// A comma-separated list of jobs the skill is related to, if applicable.
	// Jobs in English and in title-case (e.g. Data Scientist, Software
	// Engineer).
	Jobs *string `json:"jobs"`
}

// SkillBuilder aggregates analyzed trainings into the skills taxonomy.
type SkillBuilder struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewSkillBuilder returns the taxonomy builder. A nil generator yields the
// offline variant with deterministic names.
func NewSkillBuilder(gen ai.Generator, logger *zap.Logger) *SkillBuilder {
	return &SkillBuilder{gen: gen, logger: logger}
}

// Build groups the catalog three trainings at a time and names each group.
// Training ids are positional (tr0, tr1, ...), so the grouping follows the
// catalog order rather than the analysis order.
func (b *SkillBuilder) Build(ctx context.Context, trainings []*referential.Training) ([]*referential.Skill, error) {
	byID := make(map[string]*referential.Training, len(trainings))
	for _, tr := range trainings {
		byID[tr.ID] = tr
	}

	var skills []*referential.Skill
	for i := 0; i < len(trainings); i += trainingsPerSkill {
		ids := make([]string, 0, trainingsPerSkill)
		group := make([]*referential.Training, 0, trainingsPerSkill)
		for j := i; j < i+trainingsPerSkill; j++ {
			id := referential.TrainingID(j)
			ids = append(ids, id)
			if tr, ok := byID[id]; ok {
				group = append(group, tr)
			}
		}

		taxonomy, err := b.name(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("build taxonomy for %v: %w", ids, err)
		}

		skill := &referential.Skill{
			ID:        i/trainingsPerSkill + 1,
			Name:      taxonomy.Name,
			Jobs:      taxonomy.Jobs,
			Trainings: ids,
		}
		b.logger.Info("skill aggregated",
			zap.Int("id", skill.ID),
			zap.String("name", skill.Name),
			zap.Strings("trainings", ids),
		)
		skills = append(skills, skill)
	}
	return skills, nil
}

func (b *SkillBuilder) name(ctx context.Context, group []*referential.Training) (*skillTaxonomy, error) {
	if b.gen == nil {
		return mockTaxonomy(group), nil
	}

	var lines strings.Builder
	for _, tr := range group {
		fmt.Fprintf(&lines, "- Training ID: %s, Skills Description: %s, Target Job: %s\n",
			tr.ID, tr.SkillsDescription, tr.TargetJob)
	}

	prompt := fmt.Sprintf(`%s
Given the following trainings, extract and aggregate the skills they teach into a single skill
%s
Respond with a single JSON object with these fields:
- "name" (string): the name of the aggregated skill, in title-case, in English. The skill is not tied to a specific experience level, so do not include "Advanced", "Expert", etc. in the name.
- "jobs" (string or null): a comma-separated list of jobs the skill is related to, if applicable. Jobs should be in English and in title-case (e.g. Data Scientist, Software Engineer).
`, skillTaxonomyPrompt, lines.String())

	return ai.Structured[skillTaxonomy](ctx, b.gen, prompt)
}

func mockTaxonomy(group []*referential.Training) *skillTaxonomy {
	if len(group) == 0 {
		return &skillTaxonomy{Name: "Unknown Skill"}
	}
	first := group[0]
	name := strings.TrimSpace(first.SkillsDescription)
	if name == "" {
		name = "Skill For " + first.ID
	}
	jobs := first.TargetJob
	taxonomy := &skillTaxonomy{Name: name}
	if jobs != "" {
		taxonomy.Jobs = &jobs
	}
	return taxonomy
}
