// Package resolver turns an analyzed persona into its suggestion result. Hard
// constraints (location, education, experience) run as a filter cascade; the
// surviving candidates go through model-backed shortlists.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

// Resolver resolves suggestions against the full referential.
type Resolver interface {
	Resolve(ctx context.Context, persona *referential.Persona, interviewContent string) (*suggestion.Result, error)
}

// New returns the AI resolver, or the deterministic mock when gen is nil.
func New(gen ai.Generator, jobs []*referential.Job, trainings []*referential.Training, logger *zap.Logger) Resolver {
	if gen == nil {
		return &mockResolver{}
	}
	return &aiResolver{gen: gen, jobs: jobs, trainings: trainings, logger: logger}
}

type aiResolver struct {
	gen       ai.Generator
	jobs      []*referential.Job
	trainings []*referential.Training
	logger    *zap.Logger
}

const advisorPrompt = `You are an expert career advisor specializing in job and training recommendations.
You will be provided with information about a person's background, interests, and skill levels.
Based on this information, you will suggest suitable job opportunities and training programs that align with the person's career goals.
All people you assist are looking to improve their career prospects and skill sets, and are based in Brazil.
`

func (r *aiResolver) Resolve(ctx context.Context, persona *referential.Persona, _ string) (*suggestion.Result, error) {
	switch {
	case persona.Age < 16:
		return suggestion.Awareness(persona.ID, suggestion.ItemsTooYoung), nil
	case persona.Intent != nil && *persona.Intent == referential.IntentAwareness:
		return suggestion.Awareness(persona.ID, suggestion.ItemsInfo), nil
	case persona.Intent != nil && *persona.Intent == referential.IntentOnlyTrainings:
		return r.recommendTrainingsOnly(ctx, persona)
	default:
		return r.recommendJobsAndTrainings(ctx, persona)
	}
}

// recommendTrainingsOnly shortlists trainings per related domain, then runs a
// final reduce pass over the union.
func (r *aiResolver) recommendTrainingsOnly(ctx context.Context, persona *referential.Persona) (*suggestion.Result, error) {
	related := referential.RelatedDomains(persona.Domain)

	var collected []string
	for _, domain := range related {
		var candidates []*referential.Training
		for _, training := range r.trainings {
			if training.Domain == domain {
				candidates = append(candidates, training)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		differentDomain := persona.Domain == nil || *persona.Domain != domain
		ids, err := r.standaloneLearnings(ctx, persona, candidates, differentDomain)
		if err != nil {
			return nil, err
		}
		r.logger.Info("trainings shortlisted for domain",
			zap.String("persona", persona.ID),
			zap.Int("domain", domain),
			zap.Int("count", len(ids)),
		)
		collected = append(collected, ids...)
	}

	var union []*referential.Training
	for _, training := range r.trainings {
		for _, id := range collected {
			if training.ID == id {
				union = append(union, training)
				break
			}
		}
	}

	final, err := r.standaloneLearnings(ctx, persona, union, false)
	if err != nil {
		return nil, err
	}
	r.logger.Info("trainings after final reduce pass",
		zap.String("persona", persona.ID),
		zap.Int("count", len(final)),
	)
	return suggestion.TrainingsOnly(persona.ID, final), nil
}

func (r *aiResolver) recommendJobsAndTrainings(ctx context.Context, persona *referential.Persona) (*suggestion.Result, error) {
	steps := []Filter{
		&locationFilter{persona: persona},
		&educationFilter{persona: persona},
		&experienceFilter{persona: persona},
	}
	survivors, err := runFilters(ctx, r.logger.With(zap.String("persona", persona.ID)), steps, r.jobs)
	if err != nil {
		return nil, err
	}
	if len(survivors) == 0 {
		return suggestion.JobsAndTrainings(persona.ID, nil), nil
	}

	picked, err := r.recommendJobs(ctx, persona, survivors)
	if err != nil {
		return nil, err
	}

	jobSuggestions := make([]suggestion.JobSuggestion, 0, len(picked))
	for _, job := range picked {
		trainings, err := r.trainingsForJob(ctx, persona, job)
		if err != nil {
			return nil, err
		}
		jobSuggestions = append(jobSuggestions, suggestion.JobSuggestion{
			JobID:              job.ID,
			SuggestedTrainings: trainings,
		})
	}
	return suggestion.JobsAndTrainings(persona.ID, jobSuggestions), nil
}

// recommendJobs shortlists the surviving jobs with the model. Candidates are
// restricted to the persona's related domains, falling back to all survivors
// when the restriction would empty the list.
func (r *aiResolver) recommendJobs(ctx context.Context, persona *referential.Persona, jobs []*referential.Job) ([]*referential.Job, error) {
	related := referential.RelatedDomains(persona.Domain)
	candidates := make([]*referential.Job, 0, len(jobs))
	for _, job := range jobs {
		for _, domain := range related {
			if job.Domain == domain {
				candidates = append(candidates, job)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = jobs
	}

	var descriptions strings.Builder
	ids := make([]string, 0, len(candidates))
	for _, job := range candidates {
		ids = append(ids, fmt.Sprintf("%q", job.ID))
		fmt.Fprintf(&descriptions, "- %q: (Domain %s) %s\n", job.ID, referential.Domains[job.Domain], job.Description)
	}

	prompt := advisorPrompt + `
Consider the person's interests, background, and skill levels when making your recommendations.
---
Person's job wishes: ` + deref(persona.JobDescription) + `
Current skills: ` + deref(persona.CurrentSkills) + `
---
Available jobs:
` + descriptions.String() + `
Respond with a single JSON object: {"recommended_jobs": [<job ids>]}.
Choose among the following job IDs the most relevant jobs that would suit the person's career goals:
` + strings.Join(ids, ", ")

	type jobsModel struct {
		RecommendedJobs []string `json:"recommended_jobs"`
	}
	out, err := ai.Structured[jobsModel](ctx, r.gen, prompt)
	if err != nil {
		return nil, fmt.Errorf("shortlist jobs: %w", err)
	}

	picked := make([]*referential.Job, 0, len(out.RecommendedJobs))
	for _, job := range jobs {
		for _, id := range out.RecommendedJobs {
			if job.ID == id {
				picked = append(picked, job)
				break
			}
		}
	}
	return picked, nil
}

// trainingsForJob shortlists trainings that close the gap between the
// persona's skills and one job's required skills.
func (r *aiResolver) trainingsForJob(ctx context.Context, persona *referential.Persona, job *referential.Job) ([]string, error) {
	related := referential.RelatedDomains(persona.Domain)
	var candidates []*referential.Training
	for _, training := range r.trainings {
		for _, domain := range related {
			if training.Domain == domain {
				candidates = append(candidates, training)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}

	var requirements []string
	for _, skill := range job.RequiredSkills() {
		requirements = append(requirements, fmt.Sprintf("%s (%s, level %d)", skill.Skill, referential.SkillLevels[skill.Level], skill.Level))
	}

	ids := make([]string, 0, len(candidates))
	for _, training := range candidates {
		ids = append(ids, fmt.Sprintf("%q", training.ID))
	}

	prompt := advisorPrompt + `
Consider the person's interests, background, and skill levels when making your recommendations.
---
Skills that the person has: ` + deref(persona.CurrentSkills) + `
Skills required for the job: ` + strings.Join(requirements, ", ") + `
Learning interests: ` + deref(persona.TrainingDescription) + `
---
Available trainings:
` + describeTrainings(candidates) + `
---
IMPORTANT:
Only recommend trainings that correspond to skills required for the job.
If the person does not have the required skill level, recommend trainings to help them reach the required level.
It can be several trainings for the same skill if needed.
If the person is not interested in any of the trainings, return an empty list.
Do not include unrelated trainings.
Do not omit required trainings.
Keep the list concise and complete.
Respond with a single JSON object: {"recommended_learnings": [<training ids>]}.
Choose among the following training IDs: ` + strings.Join(ids, ", ")

	type learningsModel struct {
		RecommendedLearnings []string `json:"recommended_learnings"`
	}
	out, err := ai.Structured[learningsModel](ctx, r.gen, prompt)
	if err != nil {
		return nil, fmt.Errorf("shortlist trainings for job %s: %w", job.ID, err)
	}
	return keepOffered(out.RecommendedLearnings, candidates), nil
}

// standaloneLearnings shortlists trainings for a persona independent of any
// job, honoring the one-level-at-a-time rule.
func (r *aiResolver) standaloneLearnings(ctx context.Context, persona *referential.Persona, candidates []*referential.Training, differentDomain bool) ([]string, error) {
	if len(candidates) == 0 {
		return []string{}, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, training := range candidates {
		ids = append(ids, fmt.Sprintf("%q", training.ID))
	}

	growthMark, newMark := "", ""
	if persona.GrowthSkills != nil {
		growthMark = "IMPORTANT "
	}
	if persona.NewSkills != nil {
		newMark = "IMPORTANT "
	}
	domainNote := ""
	if differentDomain {
		domainNote = "Trainings are from a different domain than the person's main interest, so be mindful of that.\n"
	}

	prompt := advisorPrompt + `
Consider the person's interests, background, and skill levels when making your recommendations.
---
TRAINING REQUEST:
- Skills that the person has: ` + deref(persona.CurrentSkills) + `
- ` + growthMark + `Skills that the person wants to improve: ` + deref(persona.GrowthSkills) + `
- ` + newMark + `Skills that the person wants to acquire: ` + deref(persona.NewSkills) + `
- Learning interests: ` + deref(persona.TrainingDescription) + `
---
AVAILABLE TRAININGS:
` + describeTrainings(candidates) + `
---
SKILL LEVELS:
` + skillLevelLines() + `---
RULES:
If the person is not interested in any of the trainings, return an empty list.
Recommend only the next level above the current one.
If the persona has no prior level, recommend only Básico (level 1) trainings.
Do not suggest multiple levels at once.
The person should match the skills required for the training. If they have a higher level, they should not attend the training.
Skills improved by the training should match the person's growth or new skills.
` + domainNote + `
Respond with a single JSON object: {"recommended_learnings": [<training ids>]}.
Choose among the following training IDs: ` + strings.Join(ids, ", ")

	type learningsModel struct {
		RecommendedLearnings []string `json:"recommended_learnings"`
	}
	out, err := ai.Structured[learningsModel](ctx, r.gen, prompt)
	if err != nil {
		return nil, fmt.Errorf("shortlist standalone trainings: %w", err)
	}
	return keepOffered(out.RecommendedLearnings, candidates), nil
}

func describeTrainings(trainings []*referential.Training) string {
	var b strings.Builder
	for _, training := range trainings {
		fmt.Fprintf(&b, "- %q:\n", training.ID)
		fmt.Fprintf(&b, "    Target jobs: %s\n", training.TargetJob)
		fmt.Fprintf(&b, "    Skills improved by training (%s): %s\n", training.LevelChange, training.SkillsDescription)
	}
	return b.String()
}

func skillLevelLines() string {
	var b strings.Builder
	for level := 0; level <= 3; level++ {
		fmt.Fprintf(&b, "%q: %s\n", fmt.Sprint(level), referential.SkillLevels[level])
	}
	return b.String()
}

// keepOffered drops any model-invented id that was not actually offered and
// collapses repeated ids, keeping the first occurrence order.
func keepOffered(picked []string, offered []*referential.Training) []string {
	kept := make([]string, 0, len(picked))
	seen := make(map[string]bool, len(picked))
	for _, id := range picked {
		if seen[id] {
			continue
		}
		for _, training := range offered {
			if training.ID == id {
				kept = append(kept, id)
				seen[id] = true
				break
			}
		}
	}
	return kept
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type mockResolver struct{}

// Resolve fans the persona out over the three variants deterministically from
// the transcript length, mirroring nothing real. Offline use only.
func (m *mockResolver) Resolve(_ context.Context, persona *referential.Persona, interviewContent string) (*suggestion.Result, error) {
	n := len(interviewContent)
	switch n % 3 {
	case 0:
		if n%2 == 0 {
			return suggestion.Awareness(persona.ID, suggestion.ItemsInfo), nil
		}
		return suggestion.Awareness(persona.ID, suggestion.ItemsTooYoung), nil
	case 1:
		trainings := make([]string, 0, 2)
		for i := 0; i < 2; i++ {
			trainings = append(trainings, referential.TrainingID((n*i)%497+1))
		}
		return suggestion.TrainingsOnly(persona.ID, trainings), nil
	default:
		jobs := make([]suggestion.JobSuggestion, 0, 3)
		for i := 0; i < 3; i++ {
			trainings := make([]string, 0, 3)
			for k := 0; k < 3; k++ {
				trainings = append(trainings, referential.TrainingID((n*k)%497+1))
			}
			jobs = append(jobs, suggestion.JobSuggestion{
				JobID:              fmt.Sprintf("j%d", (n*i)%200+1),
				SuggestedTrainings: trainings,
			})
		}
		return suggestion.JobsAndTrainings(persona.ID, jobs), nil
	}
}
