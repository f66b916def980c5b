package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

// countingGenerator fails every call; the dispatch tests assert the model is
// never consulted on the short-circuit paths.
type countingGenerator struct {
	calls int
}

func (g *countingGenerator) GenerateContent(context.Context, string) (string, error) {
	g.calls++
	return "", assert.AnError
}

func (g *countingGenerator) GenerateJSON(context.Context, string) (string, error) {
	g.calls++
	return "", assert.AnError
}

func TestResolveTooYoungSkipsModel(t *testing.T) {
	gen := &countingGenerator{}
	r := New(gen, nil, nil, zap.NewNop())

	result, err := r.Resolve(context.Background(), &referential.Persona{ID: "persona_001", Age: 14}, "")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindAwareness, result.Kind)
	assert.Equal(t, suggestion.ItemsTooYoung, result.PredictedItems)
	assert.Zero(t, gen.calls)
}

func TestResolveAwarenessSkipsModel(t *testing.T) {
	gen := &countingGenerator{}
	r := New(gen, nil, nil, zap.NewNop())

	intent := referential.IntentAwareness
	result, err := r.Resolve(context.Background(), &referential.Persona{ID: "persona_002", Age: 30, Intent: &intent}, "")
	require.NoError(t, err)
	assert.Equal(t, suggestion.ItemsInfo, result.PredictedItems)
	assert.Zero(t, gen.calls)
}

func TestResolveEmptyCascadeSkipsModel(t *testing.T) {
	gen := &countingGenerator{}
	jobs := []*referential.Job{
		{ID: "j1", City: strPtr("Recife")},
		{ID: "j2", City: strPtr("Curitiba")},
	}
	r := New(gen, jobs, nil, zap.NewNop())

	intent := referential.IntentJobsAndTrainings
	persona := &referential.Persona{
		ID:     "persona_003",
		Age:    30,
		Intent: &intent,
		City:   strPtr("Manaus"),
	}

	result, err := r.Resolve(context.Background(), persona, "")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindJobsAndTrainings, result.Kind)
	assert.Empty(t, result.Jobs)
	assert.Zero(t, gen.calls)
}

func TestMockResolverVariants(t *testing.T) {
	r := New(nil, nil, nil, zap.NewNop())
	persona := &referential.Persona{ID: "persona_004", Age: 30}

	// Transcript lengths 0, 1 and 2 modulo 3 select the three variants.
	awareness, err := r.Resolve(context.Background(), persona, "")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindAwareness, awareness.Kind)

	trainings, err := r.Resolve(context.Background(), persona, "x")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindTrainingsOnly, trainings.Kind)
	assert.Len(t, trainings.Trainings, 2)

	jobs, err := r.Resolve(context.Background(), persona, "xy")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindJobsAndTrainings, jobs.Kind)
	assert.Len(t, jobs.Jobs, 3)
}

func TestKeepOffered(t *testing.T) {
	offered := []*referential.Training{{ID: "tr1"}, {ID: "tr2"}}

	kept := keepOffered([]string{"tr2", "tr9", "tr1"}, offered)
	assert.Equal(t, []string{"tr2", "tr1"}, kept)
}

func TestKeepOfferedCollapsesRepeats(t *testing.T) {
	offered := []*referential.Training{{ID: "tr1"}, {ID: "tr2"}}

	kept := keepOffered([]string{"tr2", "tr2", "tr1", "tr2"}, offered)
	assert.Equal(t, []string{"tr2", "tr1"}, kept)
}

// scriptedGenerator replays one canned reply for every call.
type scriptedGenerator struct {
	reply string
}

func (g *scriptedGenerator) GenerateContent(context.Context, string) (string, error) {
	return g.reply, nil
}

func (g *scriptedGenerator) GenerateJSON(context.Context, string) (string, error) {
	return g.reply, nil
}

func TestResolveTrainingsOnlyIsASet(t *testing.T) {
	// The model is free to repeat an id; the resolved list must not.
	gen := &scriptedGenerator{reply: `{"recommended_learnings": ["tr1", "tr1"]}`}
	trainings := []*referential.Training{
		{ID: "tr1", Domain: 1},
		{ID: "tr2", Domain: 1},
	}
	r := New(gen, nil, trainings, zap.NewNop())

	intent := referential.IntentOnlyTrainings
	persona := &referential.Persona{ID: "persona_005", Age: 30, Intent: &intent}

	result, err := r.Resolve(context.Background(), persona, "")
	require.NoError(t, err)
	assert.Equal(t, suggestion.KindTrainingsOnly, result.Kind)
	assert.Equal(t, []string{"tr1"}, result.Trainings)
}
