package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/referential"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func testJobs() []*referential.Job {
	return []*referential.Job{
		{ID: "j1", City: strPtr("Recife"), Experience: 1, EducationLevel: intPtr(3)},
		{ID: "j2", City: strPtr("Curitiba"), Experience: 5, EducationLevel: intPtr(10)},
		{ID: "j3", Remote: true, Experience: 0},
	}
}

func jobIDs(jobs []*referential.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

func TestLocationFilterKeepsCityAndRemote(t *testing.T) {
	filter := &locationFilter{persona: &referential.Persona{City: strPtr("Recife")}}

	kept, step, err := filter.Apply(context.Background(), testJobs())
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j3"}, jobIDs(kept))
	assert.Equal(t, Step{Initial: 3, Dropped: 1, Left: 2}, step)
}

func TestLocationFilterPassesWhenRelocating(t *testing.T) {
	filter := &locationFilter{persona: &referential.Persona{
		City:              strPtr("Recife"),
		WillingToRelocate: boolPtr(true),
	}}

	kept, _, err := filter.Apply(context.Background(), testJobs())
	require.NoError(t, err)
	assert.Len(t, kept, 3)
}

func TestLocationFilterPassesWithoutCity(t *testing.T) {
	filter := &locationFilter{persona: &referential.Persona{}}

	kept, _, err := filter.Apply(context.Background(), testJobs())
	require.NoError(t, err)
	assert.Len(t, kept, 3)
}

func TestEducationFilter(t *testing.T) {
	filter := &educationFilter{persona: &referential.Persona{EducationLevel: intPtr(5)}}

	kept, _, err := filter.Apply(context.Background(), testJobs())
	require.NoError(t, err)
	// j2 requires level 10; j3 has no requirement.
	assert.Equal(t, []string{"j1", "j3"}, jobIDs(kept))
}

func TestExperienceFilter(t *testing.T) {
	filter := &experienceFilter{persona: &referential.Persona{JobExperience: intPtr(2)}}

	kept, _, err := filter.Apply(context.Background(), testJobs())
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j3"}, jobIDs(kept))
}

func TestRunFiltersStopsWhenEmpty(t *testing.T) {
	persona := &referential.Persona{City: strPtr("Manaus")}

	calledSecond := false
	steps := []Filter{
		&locationFilter{persona: persona},
		filterFunc(func(_ context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error) {
			calledSecond = true
			return jobs, Step{}, nil
		}),
	}

	jobs := []*referential.Job{{ID: "j1", City: strPtr("Recife")}}
	left, err := runFilters(context.Background(), zap.NewNop(), steps, jobs)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.False(t, calledSecond)
}

type filterFunc func(ctx context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error)

func (f filterFunc) Name() string { return "stub" }
func (f filterFunc) Apply(ctx context.Context, jobs []*referential.Job) ([]*referential.Job, Step, error) {
	return f(ctx, jobs)
}
