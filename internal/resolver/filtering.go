package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/referential"
)

// Filter is a single hard-constraint step of the job cascade. Steps run in
// order and each sees only the jobs the previous one kept.
type Filter interface {
	Name() string
	Apply(ctx context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// runFilters executes the steps sequentially. It stops early when a step
// leaves no candidates: the remaining steps cannot resurrect anything.
func runFilters(ctx context.Context, logger *zap.Logger, steps []Filter, jobs []*referential.Job) ([]*referential.Job, error) {
	for _, step := range steps {
		next, info, err := step.Apply(ctx, jobs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		jobs = next
		if len(jobs) == 0 {
			return jobs, nil
		}
	}
	return jobs, nil
}

// locationFilter keeps jobs in the persona's city, or remote ones, unless the
// persona is willing to relocate.
type locationFilter struct {
	persona *referential.Persona
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Apply(_ context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error) {
	initial := len(jobs)
	if f.persona.City == nil || (f.persona.WillingToRelocate != nil && *f.persona.WillingToRelocate) {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*referential.Job, 0, initial)
	for _, job := range jobs {
		if job.Remote || (job.City != nil && *job.City == *f.persona.City) {
			kept = append(kept, job)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

// educationFilter keeps jobs whose required education level the persona
// meets. Jobs without a requirement always pass.
type educationFilter struct {
	persona *referential.Persona
}

func (f *educationFilter) Name() string { return "education" }

func (f *educationFilter) Apply(_ context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error) {
	initial := len(jobs)
	if f.persona.EducationLevel == nil {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*referential.Job, 0, initial)
	for _, job := range jobs {
		if job.EducationLevel == nil || *job.EducationLevel <= *f.persona.EducationLevel {
			kept = append(kept, job)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

// experienceFilter keeps jobs whose required years of experience the persona
// meets.
type experienceFilter struct {
	persona *referential.Persona
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Apply(_ context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error) {
	initial := len(jobs)
	if f.persona.JobExperience == nil {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*referential.Job, 0, initial)
	for _, job := range jobs {
		if job.Experience <= *f.persona.JobExperience {
			kept = append(kept, job)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
