package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/suggestion"
	"github.com/gdsc-alina/alina/internal/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	return ws
}

func TestJobsRoundTrip(t *testing.T) {
	ws := newTestWorkspace(t)

	city := "Recife"
	education := 5
	jobs := []*referential.Job{
		{
			ID:             "j1",
			City:           &city,
			Domain:         3,
			EducationLevel: &education,
			Languages:      []string{"pt", "en"},
			Experience:     2,
			Description:    "Backend developer",
			Skills:         []referential.JobSkill{{Skill: "Go", Level: 2, Required: true}},
		},
		{ID: "j2", Remote: true, Domain: 1, Languages: []string{"pt"}, Description: "Accountant", Skills: []referential.JobSkill{}},
	}

	require.NoError(t, SaveJobs(ws, jobs))

	loaded, err := LoadJobs(ws)
	require.NoError(t, err)
	assert.Equal(t, jobs, loaded)
}

func TestLoadPersona(t *testing.T) {
	ws := newTestWorkspace(t)

	intent := referential.IntentOnlyTrainings
	personas := []*referential.Persona{
		{ID: "persona_001", Age: 14},
		{ID: "persona_002", Age: 30, Intent: &intent},
	}
	require.NoError(t, SavePersonas(ws, personas))

	persona, err := LoadPersona(ws, "persona_002")
	require.NoError(t, err)
	assert.Equal(t, 30, persona.Age)

	_, err = LoadPersona(ws, "persona_099")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persona_099")
}

func TestLoadPersonasWithoutFile(t *testing.T) {
	ws := newTestWorkspace(t)

	personas, err := LoadPersonas(ws)
	require.NoError(t, err)
	assert.Empty(t, personas)
}

func TestLoadManualIntentsWithoutFile(t *testing.T) {
	ws := newTestWorkspace(t)

	intents, err := LoadManualIntents(ws)
	require.NoError(t, err)
	assert.Empty(t, intents)
}

func TestLoadManualIntents(t *testing.T) {
	ws := newTestWorkspace(t)

	content := `{"persona_004": "trainings_only", "persona_009": "awareness:too_young"}`
	require.NoError(t, os.WriteFile(ws.ManualIntentsFile(), []byte(content), 0o644))

	intents, err := LoadManualIntents(ws)
	require.NoError(t, err)
	assert.Equal(t, referential.ManualTrainingsOnly, intents["persona_004"])
	assert.Equal(t, referential.ManualAwarenessTooYoung, intents["persona_009"])
}

func TestSuggestionsRoundTrip(t *testing.T) {
	ws := newTestWorkspace(t)

	results := []*suggestion.Result{
		suggestion.Awareness("persona_001", suggestion.ItemsInfo),
		suggestion.TrainingsOnly("persona_002", []string{"tr3", "tr4"}),
	}

	path, err := SaveSuggestions(ws, results)
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := LoadLastSuggestions(ws)
	require.NoError(t, err)
	assert.Equal(t, results, loaded)
}

func TestCheckpoints(t *testing.T) {
	ws := newTestWorkspace(t)

	missing, err := LoadCheckpoint(ws, 7)
	require.NoError(t, err)
	assert.Nil(t, missing)

	result := suggestion.TrainingsOnly("persona_007", []string{"tr1"})
	require.NoError(t, SaveCheckpoint(ws, 7, result))

	loaded, err := LoadCheckpoint(ws, 7)
	require.NoError(t, err)
	assert.Equal(t, result, loaded)

	require.NoError(t, ClearCheckpoints(ws))

	cleared, err := LoadCheckpoint(ws, 7)
	require.NoError(t, err)
	assert.Nil(t, cleared)
}

func TestSubmissionsRoundTrip(t *testing.T) {
	ws := newTestWorkspace(t)

	first := []*suggestion.Result{suggestion.Awareness("persona_001", suggestion.ItemsTooYoung)}
	second := []*suggestion.Result{suggestion.Awareness("persona_001", suggestion.ItemsInfo)}

	_, err := SaveSubmission(ws, first)
	require.NoError(t, err)
	_, err = SaveSubmission(ws, second)
	require.NoError(t, err)

	loaded, err := LoadSubmission(ws, 2)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}
