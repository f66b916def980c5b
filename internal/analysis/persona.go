package analysis

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

// minWorkingAge is the cutoff below which no profile is inferred at all.
const minWorkingAge = 16

type aiPersonaAnalyzer struct {
	gen    ai.Generator
	jobs   []*referential.Job
	logger *zap.Logger
}

const personaSystemPrompt = `You are an expert career advisor, specializing in understanding personas based on interview data.
Given the interview data, your task is to extract relevant information about the persona, focusing on accuracy.
Do not make assumptions beyond the provided data.
IMPORTANT: Always write your text in English, regardless of the interview language.
`

// step builds one extraction prompt: shared system context, the interview
// content, then the step-specific instructions.
func (a *aiPersonaAnalyzer) step(interviews, instructions string) string {
	var b strings.Builder
	b.WriteString(personaSystemPrompt)
	b.WriteString("\nInterview content:\n\n")
	b.WriteString(interviews)
	b.WriteString("\n\n")
	b.WriteString(instructions)
	return b.String()
}

func (a *aiPersonaAnalyzer) Analyze(ctx context.Context, id string, transcripts []string, manual *referential.ManualIntent) (*referential.Persona, error) {
	var interviews strings.Builder
	for _, path := range transcripts {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		interviews.Write(content)
		interviews.WriteString("\n\n")
	}
	content := interviews.String()

	a.logger.Debug("analyzing persona", zap.String("persona", id))

	var (
		age    int
		intent referential.Intent
	)
	if manual != nil {
		// Accuracy does not matter here, the override only routes the persona.
		switch *manual {
		case referential.ManualAwarenessTooYoung:
			age, intent = 15, referential.IntentAwareness
		case referential.ManualAwarenessInfo:
			age, intent = 21, referential.IntentAwareness
		case referential.ManualJobsAndTrainings:
			age, intent = 21, referential.IntentJobsAndTrainings
		default:
			age, intent = 21, referential.IntentOnlyTrainings
		}
	} else {
		var err error
		if age, err = a.inferAge(ctx, content); err != nil {
			return nil, err
		}
		if intent, err = a.inferIntent(ctx, content); err != nil {
			return nil, err
		}
	}

	if age < minWorkingAge {
		return &referential.Persona{ID: id, Age: age}, nil
	}
	if intent == referential.IntentAwareness {
		return &referential.Persona{ID: id, Age: age, Intent: &intent}, nil
	}

	city, relocate, err := a.inferCityConstraint(ctx, content)
	if err != nil {
		return nil, err
	}
	education, err := a.inferEducationLevel(ctx, content)
	if err != nil {
		return nil, err
	}
	domain, err := a.inferDomain(ctx, content, intent)
	if err != nil {
		return nil, err
	}

	persona := &referential.Persona{
		ID:                id,
		Age:               age,
		Intent:            &intent,
		City:              city,
		WillingToRelocate: &relocate,
		EducationLevel:    education,
		Domain:            domain,
	}

	if intent == referential.IntentJobsAndTrainings {
		if err := a.inferJobDescription(ctx, content, persona); err != nil {
			return nil, err
		}
	} else {
		if err := a.inferTrainingDescription(ctx, content, persona); err != nil {
			return nil, err
		}
	}
	return persona, nil
}

func (a *aiPersonaAnalyzer) inferAge(ctx context.Context, content string) (int, error) {
	type ageModel struct {
		Age int `json:"age"`
	}
	out, err := ai.Structured[ageModel](ctx, a.gen, a.step(content,
		`Respond with a single JSON object: {"age": <integer>} where age is the age of the person in years.`))
	if err != nil {
		return 0, fmt.Errorf("infer age: %w", err)
	}
	return out.Age, nil
}

func (a *aiPersonaAnalyzer) inferIntent(ctx context.Context, content string) (referential.Intent, error) {
	type intentModel struct {
		Intent referential.Intent `json:"intent"`
	}
	out, err := ai.Structured[intentModel](ctx, a.gen, a.step(content,
		`Determine the user intent based on the interview content.
Personas may seek trainings either as a standalone goal (only_trainings) or as preparation for a job (jobs_and_trainings).
Respond with a single JSON object: {"intent": <string>} where intent is one of:
- "jobs_and_trainings": wants job suggestions (and usually trainings too)
- "only_trainings": wants only training suggestions (not jobs)
- "awareness": learn about career options without specific job/training suggestions
If the person is vague, unsure, or just exploring, choose "awareness".`))
	if err != nil {
		return "", fmt.Errorf("infer intent: %w", err)
	}
	switch out.Intent {
	case referential.IntentAwareness, referential.IntentJobsAndTrainings, referential.IntentOnlyTrainings:
		return out.Intent, nil
	}
	return "", fmt.Errorf("infer intent: unexpected value %q", out.Intent)
}

func (a *aiPersonaAnalyzer) inferCityConstraint(ctx context.Context, content string) (*string, bool, error) {
	cities := make(map[string]struct{})
	for _, job := range a.jobs {
		if job.City != nil && *job.City != "" {
			cities[*job.City] = struct{}{}
		}
	}
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)

	type cityModel struct {
		City              *string `json:"city"`
		WillingToRelocate bool    `json:"willing_to_relocate"`
	}
	out, err := ai.Structured[cityModel](ctx, a.gen, a.step(content,
		`Respond with a single JSON object: {"city": <string or null>, "willing_to_relocate": <boolean>}.
"city" is the city where the person wants to find jobs, null when no city is mentioned.
Choose from the following possible cities: `+strings.Join(names, ", ")+`
"willing_to_relocate" is whether the person is willing to relocate for a job.`))
	if err != nil {
		return nil, false, fmt.Errorf("infer city constraint: %w", err)
	}
	return out.City, out.WillingToRelocate, nil
}

func (a *aiPersonaAnalyzer) inferEducationLevel(ctx context.Context, content string) (*int, error) {
	type educationModel struct {
		EducationLevel *int `json:"education_level"`
	}
	out, err := ai.Structured[educationModel](ctx, a.gen, a.step(content,
		`Respond with a single JSON object: {"education_level": <integer or null>}.
It is the highest education level attained by the person, null when not mentioned.
Possible values are:
`+formatCodes(referential.EducationLevels, false)))
	if err != nil {
		return nil, fmt.Errorf("infer education level: %w", err)
	}
	return out.EducationLevel, nil
}

func (a *aiPersonaAnalyzer) inferDomain(ctx context.Context, content string, intent referential.Intent) (*int, error) {
	preamble := "Based on our information, this person is looking only for trainings."
	if intent == referential.IntentJobsAndTrainings {
		preamble = "Based on our information, this person is looking for jobs (and possibly for trainings)."
	}

	type domainModel struct {
		Domain *int `json:"domain"`
	}
	out, err := ai.Structured[domainModel](ctx, a.gen, a.step(content, preamble+`
Respond with a single JSON object: {"domain": <integer or null>}.
It is the domain of expertise or interest of the person, i.e. their professional field.
If this person wants to explore jobs, it is in this domain.
If this person is looking for trainings, it is to build skills in this domain.
Possible values are:
`+formatCodes(referential.Domains, false)+`If no domain is mentioned, return null.
If several domains are mentioned, return the most relevant one.`))
	if err != nil {
		return nil, fmt.Errorf("infer domain: %w", err)
	}
	return out.Domain, nil
}

func (a *aiPersonaAnalyzer) inferJobDescription(ctx context.Context, content string, persona *referential.Persona) error {
	type jobModel struct {
		ExperienceYears     *int    `json:"experience_years"`
		CurrentSkills       *string `json:"current_skills"`
		Description         *string `json:"description"`
		TrainingDescription *string `json:"training_description"`
	}
	out, err := ai.Structured[jobModel](ctx, a.gen, a.step(content,
		`Other persona attributes (name, age, city, willing to relocate...) have already been extracted.
We already know this person is looking for jobs (and possibly trainings).
Focus only on extracting the job description and current skills from the interview content.
Do not say "the interview...", just respond with the extracted information.
Respond with a single JSON object with these fields:
- "experience_years" (integer or null): years of professional experience, null when not mentioned.
- "current_skills" (string or null): the person's current skills relevant to jobs, with levels
  inferred from the interview. Do not invent skills not mentioned.
  Skill levels are: `+skillLevelList()+`
  Null when no current skills are mentioned.
- "description" (string or null): brief description of the person's job preferences and
  aspirations, including the types of roles they are interested in. Null when none mentioned.
- "training_description" (string or null): trainings they are interested in as part of their
  job search. Do not repeat this in "description". Null when no trainings are mentioned.`))
	if err != nil {
		return fmt.Errorf("infer job description: %w", err)
	}

	persona.JobExperience = out.ExperienceYears
	persona.JobDescription = out.Description
	persona.CurrentSkills = out.CurrentSkills
	persona.TrainingDescription = out.TrainingDescription
	return nil
}

func (a *aiPersonaAnalyzer) inferTrainingDescription(ctx context.Context, content string, persona *referential.Persona) error {
	type trainingModel struct {
		CurrentSkills       *string `json:"current_skills"`
		GrowthSkills        *string `json:"growth_skills"`
		NewSkills           *string `json:"new_skills"`
		TrainingDescription *string `json:"training_description"`
	}
	out, err := ai.Structured[trainingModel](ctx, a.gen, a.step(content,
		`Other persona attributes (name, age, city, willing to relocate...) have already been extracted.
We already know this person is looking only for trainings, not for jobs.
Focus only on extracting the trainings description and current skills from the interview content.
Do not say "the interview...", just respond with the extracted information.
Respond with a single JSON object with these fields:
- "current_skills" (string or null): the person's current skills relevant to trainings, with
  levels inferred from the interview. Do not invent skills not mentioned.
  Skill levels are: `+skillLevelList()+`
  Null when no current skills are mentioned.
- "growth_skills" (string or null): skills the person wishes to develop through trainings.
  We assume the person wants to go from one level to the next in each of them.
  Only mention skills the person already has at least at level 1. Null when none mentioned.
- "new_skills" (string or null): new skills the person wishes to acquire through trainings,
  skills they do not currently possess. Separate from "growth_skills". Null when none mentioned.
- "training_description" (string or null): trainings they are interested in as part of their
  search. Null when no trainings are mentioned.`))
	if err != nil {
		return fmt.Errorf("infer training description: %w", err)
	}

	persona.CurrentSkills = out.CurrentSkills
	persona.GrowthSkills = out.GrowthSkills
	persona.NewSkills = out.NewSkills
	persona.TrainingDescription = out.TrainingDescription
	return nil
}

func skillLevelList() string {
	var parts []string
	for level := 1; level <= 3; level++ {
		parts = append(parts, fmt.Sprintf("%s (%d)", referential.SkillLevels[level], level))
	}
	return strings.Join(parts, ", ")
}
