// Package referential holds the canonical structured records extracted from
// raw job and training postings, plus the fixed taxonomies (domains,
// education levels, skill levels) the competition defines.
package referential

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EducationLevels maps the Brazilian education level codes (1-12).
var EducationLevels = map[int]string{
	1:  "Ensino Fundamental",
	2:  "Ensino Médio",
	3:  "Técnico",
	4:  "Tecnólogo",
	5:  "Graduação",
	6:  "Bacharelado",
	7:  "Licenciatura",
	8:  "Pós-graduação",
	9:  "Especialização",
	10: "Mestrado",
	11: "MBA",
	12: "Doutorado",
}

// Domains maps the 15 professional field codes used by jobs and trainings.
var Domains = map[int]string{
	1:  "Finance & Accounting",
	2:  "Legal & Regulatory",
	3:  "Engineering & Technology",
	4:  "Manufacturing & Industrial Operations",
	5:  "Food Science & Production",
	6:  "Paper & Fiber Industries",
	7:  "Maritime & Port Operations",
	8:  "Safety, Health & Environment",
	9:  "Arts, Culture & Design",
	10: "Events & Entertainment",
	11: "Tourism & Hospitality",
	12: "Procurement & Supply Chain",
	13: "Community & Social Services",
	14: "Education & Information Management",
	15: "Research & Innovation",
}

// highLevelDomains partitions the 15 domain codes into 5 clusters. A persona
// interested in one domain is considered reachable by all domains of its
// cluster.
var highLevelDomains = [][]int{
	{3, 4, 5, 6, 7},
	{1, 2, 12},
	{9, 10, 11},
	{8, 13},
	{14, 15},
}

// SkillLevels maps proficiency codes. Level 0 means no knowledge at all.
var SkillLevels = map[int]string{
	0: "No Knowledge",
	1: "Básico",
	2: "Intermediário",
	3: "Avançado",
}

// AllDomains returns the 15 domain codes in ascending order.
func AllDomains() []int {
	codes := make([]int, 0, len(Domains))
	for code := range Domains {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// RelatedDomains returns the high-level cluster containing the given domain.
// A nil or unknown domain widens the search to all 15 domains.
func RelatedDomains(domain *int) []int {
	if domain == nil {
		return AllDomains()
	}
	for _, group := range highLevelDomains {
		for _, code := range group {
			if code == *domain {
				return group
			}
		}
	}
	return AllDomains()
}

// Intent is the persona's classified goal.
type Intent string

const (
	IntentAwareness        Intent = "awareness"
	IntentJobsAndTrainings Intent = "jobs_and_trainings"
	IntentOnlyTrainings    Intent = "only_trainings"
)

// ManualIntent is a hand-curated intent override, keyed by persona id in
// manual-intents.json. The values follow the submission vocabulary, not the
// interview one.
type ManualIntent string

const (
	ManualAwarenessInfo     ManualIntent = "awareness:info"
	ManualAwarenessTooYoung ManualIntent = "awareness:too_young"
	ManualJobsAndTrainings  ManualIntent = "jobs+trainings"
	ManualTrainingsOnly     ManualIntent = "trainings_only"
)

// JobSkill is a single skill requirement of a job posting.
type JobSkill struct {
	Skill    string `json:"skill"`
	Level    int    `json:"level"`
	Required bool   `json:"required"`
}

// Job is the structured record extracted from one job posting.
type Job struct {
	ID             string     `json:"id"`
	City           *string    `json:"city"`
	Remote         bool       `json:"remote"`
	Domain         int        `json:"domain"`
	EducationLevel *int       `json:"education_level"`
	Languages      []string   `json:"languages"`
	Experience     int        `json:"experience"`
	Description    string     `json:"description"`
	Skills         []JobSkill `json:"skills"`
}

// RequiredSkills returns only the skills marked as required.
func (j *Job) RequiredSkills() []JobSkill {
	var required []JobSkill
	for _, skill := range j.Skills {
		if skill.Required {
			required = append(required, skill)
		}
	}
	return required
}

// Training is the structured record extracted from one training posting.
type Training struct {
	ID                string  `json:"id"`
	City              *string `json:"city"`
	Online            bool    `json:"online"`
	Locale            string  `json:"locale"`
	DurationWeeks     int     `json:"duration_weeks"`
	Certification     bool    `json:"certification"`
	Domain            int     `json:"domain"`
	SkillsDescription string  `json:"skills_description"`
	LevelChange       string  `json:"level_change"`
	TargetJob         string  `json:"target_job"`
}

// Skill is one entry of the aggregated skills taxonomy. Trainings lists the
// training ids teaching this skill, in ascending level order.
type Skill struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Jobs      *string  `json:"jobs"`
	Trainings []string `json:"trainings"`
}

// Persona is the structured profile inferred from interview transcripts.
// Exactly one of the job / training description branches is populated,
// depending on the intent; a persona under 16 carries nothing but its age.
type Persona struct {
	ID                  string  `json:"id"`
	Age                 int     `json:"age"`
	City                *string `json:"city"`
	Intent              *Intent `json:"intent"`
	WillingToRelocate   *bool   `json:"willing_to_relocate"`
	EducationLevel      *int    `json:"education_level"`
	Domain              *int    `json:"domain"`
	JobExperience       *int    `json:"job_experience"`
	JobDescription      *string `json:"job_description"`
	TrainingDescription *string `json:"training_description"`
	CurrentSkills       *string `json:"current_skills"`
	GrowthSkills        *string `json:"growth_skills"`
	NewSkills           *string `json:"new_skills"`
}

// PersonaID formats the canonical persona identifier for a persona number.
func PersonaID(n int) string {
	return fmt.Sprintf("persona_%03d", n)
}

// PersonaNumber extracts the numeric part of a persona identifier.
func PersonaNumber(id string) (int, error) {
	trimmed := strings.TrimPrefix(id, "persona_")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid persona id %q: %w", id, err)
	}
	return n, nil
}

// TrainingID formats the canonical training identifier for a training number.
func TrainingID(n int) string {
	return fmt.Sprintf("tr%d", n)
}

// TrainingNumber extracts the numeric part of a training identifier.
func TrainingNumber(id string) (int, error) {
	trimmed := strings.TrimPrefix(id, "tr")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid training id %q: %w", id, err)
	}
	return n, nil
}

// TrainingLevelChange derives the skill level step a training covers from its
// numeric id: trainings are laid out in groups of three ascending steps.
func TrainingLevelChange(trainingNumber int) string {
	level := trainingNumber % 3
	next := level + 1
	if next > 3 {
		next = 3
	}
	return fmt.Sprintf("%s (%d) to %s (%d)", SkillLevels[level], level, SkillLevels[next], next)
}
