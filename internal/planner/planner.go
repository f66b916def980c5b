// Package planner builds training plans for hand-flagged trainings-only
// personas: relevant skills from the interviews, a shortlist of trainings per
// skill, then one training per skill after conflict resolution. Every stage
// is checkpointed so an interrupted run resumes where it stopped.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/workspace"
)

const (
	// shortlistChunk is how many trainings one shortlist call sees. The
	// reduce loop reruns until at most half a chunk remains.
	shortlistChunk = 12

	// maxTrainings caps the final plan size.
	maxTrainings = 10
)

// PersonaPlan is the per-persona checkpoint. Stages fill in order; an empty
// stage means it has not run yet.
type PersonaPlan struct {
	Skills       []int `json:"skills"`
	RawTrainings []int `json:"raw_trainings"`
	Trainings    []int `json:"trainings"`
}

// Plans maps persona ids to their plans.
type Plans map[string]*PersonaPlan

// LoadPlans reads the checkpoint file, empty when absent.
func LoadPlans(ws *workspace.Workspace) (Plans, error) {
	plans := make(Plans)
	file, err := os.Open(ws.TrainingPlansFile())
	if os.IsNotExist(err) {
		return plans, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&plans); err != nil {
		return nil, fmt.Errorf("decode training plans: %w", err)
	}
	return plans, nil
}

// SavePlans rewrites the checkpoint file.
func SavePlans(ws *workspace.Workspace, plans Plans) error {
	file, err := os.OpenFile(ws.TrainingPlansFile(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	if err := enc.Encode(plans); err != nil {
		return fmt.Errorf("encode training plans: %w", err)
	}
	return nil
}

// Planner runs the plan stages for one persona at a time.
type Planner struct {
	gen    ai.Generator
	ws     *workspace.Workspace
	skills []*referential.Skill
	logger *zap.Logger
}

func New(gen ai.Generator, ws *workspace.Workspace, skills []*referential.Skill, logger *zap.Logger) *Planner {
	return &Planner{gen: gen, ws: ws, skills: skills, logger: logger}
}

// BuildPlan fills the missing stages of one persona's plan in place. Stages
// already present in the checkpoint are kept as-is.
func (p *Planner) BuildPlan(ctx context.Context, personaNumber int, plan *PersonaPlan) error {
	log := p.logger.With(zap.String("persona", referential.PersonaID(personaNumber)))

	if len(plan.Skills) == 0 {
		ids, err := p.relevantSkills(ctx, personaNumber)
		if err != nil {
			return err
		}
		plan.Skills = FillSkillGaps(ids)
		log.Info("relevant skills identified", zap.Int("count", len(plan.Skills)))
	}

	summary, err := p.interviewSummary(ctx, personaNumber)
	if err != nil {
		return err
	}

	if len(plan.RawTrainings) == 0 {
		raw, err := p.shortlistFromSkills(ctx, plan.Skills, summary)
		if err != nil {
			return err
		}
		plan.RawTrainings = raw
		log.Info("raw trainings shortlisted", zap.Int("count", len(plan.RawTrainings)))
	}

	if len(plan.Trainings) == 0 {
		resolved, err := p.resolveConflicts(ctx, plan, summary)
		if err != nil {
			return err
		}
		plan.Trainings = resolved
		log.Info("training plan resolved", zap.Int("count", len(plan.Trainings)))
	}
	return nil
}

// FillSkillGaps completes progression holes in a sorted skill selection:
// when levels N and N+2 were picked but N+1 was not, the intermediate level
// is required anyway, so it joins the set. Same for a two-level hole with
// N+3 picked.
func FillSkillGaps(ids []int) []int {
	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	var additional []int
	for _, id := range sortedUnique(ids) {
		switch {
		case !selected[id+1] && selected[id+2]:
			additional = append(additional, id+1)
		case !selected[id+1] && !selected[id+2] && selected[id+3]:
			additional = append(additional, id+1, id+2)
		}
	}
	return sortedUnique(append(ids, additional...))
}

// relevantSkills asks the model for the top skills matching the persona's
// interviews, constrained to the known taxonomy.
func (p *Planner) relevantSkills(ctx context.Context, personaNumber int) ([]int, error) {
	interviews, err := p.readInterviews(personaNumber)
	if err != nil {
		return nil, err
	}

	var taxonomy strings.Builder
	for _, skill := range p.skills {
		fmt.Fprintf(&taxonomy, "- %d: %s (for jobs: %s)\n", skill.ID, skill.Name, derefOr(skill.Jobs, "none"))
	}

	prompt := `RULES:
Based on the following interview with a person looking for trainings, list the top 20 most relevant skills for this person.
It can be skills that the person wants to improve, skills applicable for jobs in the domain they are interested in, or skills that would help them get started in that field.
If you identify skills that are not in the provided list, ignore them.
If there are less than 20 relevant skills, just list those and do NOT make up new ones.
Respond with a single JSON object: {"skill_ids": [<integer skill ids>]}.
SKILLS:
` + taxonomy.String() + `
` + interviews

	type skillsModel struct {
		SkillIDs []int `json:"skill_ids"`
	}
	out, err := ai.Structured[skillsModel](ctx, p.gen, prompt)
	if err != nil {
		return nil, fmt.Errorf("identify relevant skills: %w", err)
	}
	return sortedUnique(out.SkillIDs), nil
}

// interviewSummary returns the cached interview summary, generating and
// caching it on first use.
func (p *Planner) interviewSummary(ctx context.Context, personaNumber int) (string, error) {
	path := p.ws.InterviewSummaryFile(personaNumber)
	if content, err := os.ReadFile(path); err == nil {
		return string(content), nil
	}

	interviews, err := p.readInterviews(personaNumber)
	if err != nil {
		return "", err
	}

	prompt := `RULES:
Based on the following interviews with a person looking for trainings, extract all relevant information.
Age, location, certification, time, cost requirements ARE NOT relevant here.
Skills (current and wishes), education, experience and interests ARE relevant.
If multiple interviews are provided, the user is the same person in all of them, so group all relevant information together.

` + interviews

	summary, err := p.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize interviews: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("cache interview summary: %w", err)
	}
	return summary, nil
}

// shortlistFromSkills gathers the trainings taught for the selected skills
// and reduces them chunk by chunk until the shortlist is small enough.
func (p *Planner) shortlistFromSkills(ctx context.Context, skillIDs []int, summary string) ([]int, error) {
	var trainingIDs []string
	for _, skill := range p.skills {
		if !containsInt(skillIDs, skill.ID) {
			continue
		}
		trainingIDs = append(trainingIDs, skill.Trainings...)
	}

	raw, err := p.chunkedShortlist(ctx, trainingIDs, summary)
	if err != nil {
		return nil, err
	}
	for len(raw) > shortlistChunk/2 {
		raw, err = p.chunkedShortlist(ctx, trainingIDsOf(raw), summary)
		if err != nil {
			return nil, err
		}
	}
	return sortedUnique(raw), nil
}

func (p *Planner) chunkedShortlist(ctx context.Context, trainingIDs []string, summary string) ([]int, error) {
	var picked []int
	for i := 0; i < len(trainingIDs); i += shortlistChunk {
		end := i + shortlistChunk
		if end > len(trainingIDs) {
			end = len(trainingIDs)
		}
		chunk, err := p.relevantTrainings(ctx, trainingIDs[i:end], summary, shortlistChunk/2)
		if err != nil {
			return nil, err
		}
		picked = append(picked, chunk...)
	}
	return picked, nil
}

// relevantTrainings shortlists from raw training postings, expectedCount at
// most.
func (p *Planner) relevantTrainings(ctx context.Context, trainingIDs []string, summary string, expectedCount int) ([]int, error) {
	var postings strings.Builder
	for _, id := range trainingIDs {
		content, err := os.ReadFile(filepath.Join(p.ws.DataTrainingsDir(), id+".md"))
		if err != nil {
			continue
		}
		number, err := referential.TrainingNumber(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&postings, "# TRAINING %d\n%s\n\n", number, content)
	}
	if postings.Len() == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(`RULES:
You are an expert career advisor helping people find the best trainings to improve their skills and advance their careers.
You are given a person looking for trainings, along with their relevant information such as skills, education, experience and interests.
List the %d most relevant trainings for this person, based on their skills, education, experience and interests.
IMPORTANT: Only skills and background matters, location, cost and certification does NOT matter.
Respond with a single JSON object: {"training_ids": [<integer training ids>]}.

PERSON PROFILE:
%s

TRAININGS:
%s`, expectedCount, summary, postings.String())

	type trainingsModel struct {
		TrainingIDs []int `json:"training_ids"`
	}
	out, err := ai.Structured[trainingsModel](ctx, p.gen, prompt)
	if err != nil {
		return nil, fmt.Errorf("shortlist trainings: %w", err)
	}
	return sortedUnique(out.TrainingIDs), nil
}

// resolveConflicts enforces one training per skill: when the shortlist keeps
// several trainings of the same skill, the model must pick exactly one.
func (p *Planner) resolveConflicts(ctx context.Context, plan *PersonaPlan, summary string) ([]int, error) {
	var resolved []int
	for _, skillID := range plan.Skills {
		skill := p.skillByID(skillID)
		if skill == nil || len(skill.Trainings) == 0 {
			continue
		}

		var ofSkill []int
		for _, tid := range skill.Trainings {
			number, err := referential.TrainingNumber(tid)
			if err != nil {
				continue
			}
			if containsInt(plan.RawTrainings, number) {
				ofSkill = append(ofSkill, number)
			}
		}

		if len(ofSkill) > 1 {
			winner, err := p.resolveConflict(ctx, ofSkill, summary)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, winner)
		} else {
			resolved = append(resolved, ofSkill...)
		}
	}

	if len(resolved) > maxTrainings {
		capped, err := p.relevantTrainings(ctx, trainingIDsOf(resolved), summary, maxTrainings)
		if err != nil {
			return nil, err
		}
		resolved = capped
	}
	return sortedUnique(resolved), nil
}

func (p *Planner) resolveConflict(ctx context.Context, candidates []int, summary string) (int, error) {
	var postings strings.Builder
	for _, number := range candidates {
		content, err := os.ReadFile(filepath.Join(p.ws.DataTrainingsDir(), referential.TrainingID(number)+".md"))
		if err != nil {
			return 0, fmt.Errorf("read training posting %d: %w", number, err)
		}
		fmt.Fprintf(&postings, "# TRAINING id=%d\n%s\n\n", number, content)
	}

	prompt := `RULES:
You are an expert career advisor helping people find the best trainings to improve their skills and advance their careers.
Some recommendations have already been made for a person, but there is a conflict (trainings are too similar and should be reduced).
You should select A SINGLE TRAINING among the provided options that is the most relevant for the person, based on their skills, education, experience and interests.
IMPORTANT: Only skills and background matters, location, cost and certification does NOT matter.
IMPORTANT: you HAVE to provide a value for "training_id" and cannot skip it.
Respond with a single JSON object: {"training_id": <integer>}.

PERSON PROFILE:
` + summary + `

TRAININGS:
` + postings.String()

	type conflictModel struct {
		TrainingID int `json:"training_id"`
	}
	out, err := ai.Structured[conflictModel](ctx, p.gen, prompt)
	if err != nil {
		return 0, fmt.Errorf("resolve training conflict: %w", err)
	}
	if out.TrainingID == 0 || !containsInt(candidates, out.TrainingID) {
		return 0, fmt.Errorf("conflict resolution picked %d, not among %v", out.TrainingID, candidates)
	}
	return out.TrainingID, nil
}

// readInterviews concatenates the initial and training-phase transcripts.
// Both must exist for a trainings-only plan.
func (p *Planner) readInterviews(personaNumber int) (string, error) {
	first, err := os.ReadFile(p.ws.InterviewFile(workspace.PhaseInitial, personaNumber))
	if err != nil {
		return "", fmt.Errorf("interview transcript missing for persona %d: %w", personaNumber, err)
	}
	second, err := os.ReadFile(p.ws.InterviewFile(workspace.PhaseTraining, personaNumber))
	if err != nil {
		return "", fmt.Errorf("training interview transcript missing for persona %d: %w", personaNumber, err)
	}
	return fmt.Sprintf("INTERVIEW 1 Content:\n%s\n\nINTERVIEW 2 Content:\n%s", first, second), nil
}

func (p *Planner) skillByID(id int) *referential.Skill {
	for _, skill := range p.skills {
		if skill.ID == id {
			return skill
		}
	}
	return nil
}

func trainingIDsOf(numbers []int) []string {
	ids := make([]string, 0, len(numbers))
	for _, number := range numbers {
		ids = append(ids, referential.TrainingID(number))
	}
	return ids
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func sortedUnique(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
