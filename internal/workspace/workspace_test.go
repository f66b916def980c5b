package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := New(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	return ws
}

func TestParsePhase(t *testing.T) {
	for input, expected := range map[string]Phase{
		"initial":  PhaseInitial,
		"job":      PhaseJob,
		"training": PhaseTraining,
		"full":     PhaseFull,
	} {
		phase, err := ParsePhase(input)
		require.NoError(t, err)
		assert.Equal(t, expected, phase)
	}

	_, err := ParsePhase("bogus")
	assert.Error(t, err)
}

func TestInterviewFilesPerPhase(t *testing.T) {
	ws := newTestWorkspace(t)

	assert.Equal(t, filepath.Join(ws.Root, "interviews", "persona_003.md"), ws.InterviewFile(PhaseInitial, 3))
	assert.Equal(t, filepath.Join(ws.Root, "interviews_job", "persona_003.md"), ws.InterviewFile(PhaseJob, 3))
	assert.Equal(t, filepath.Join(ws.Root, "interviews_training", "persona_003.md"), ws.InterviewFile(PhaseTraining, 3))
	assert.Equal(t, filepath.Join(ws.Root, "interviews_full", "persona_003.md"), ws.InterviewFile(PhaseFull, 3))
}

func TestNextSuggestionsFileNumbering(t *testing.T) {
	ws := newTestWorkspace(t)

	next, err := ws.NextSuggestionsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.SuggestionsDir(), "suggestions_001.json"), next)

	require.NoError(t, os.MkdirAll(ws.SuggestionsDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.SuggestionsDir(), "suggestions_001.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.SuggestionsDir(), "suggestions_007.json"), []byte("[]"), 0o644))

	next, err = ws.NextSuggestionsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.SuggestionsDir(), "suggestions_008.json"), next)

	last, err := ws.LastSuggestionsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.SuggestionsDir(), "suggestions_007.json"), last)
}

func TestLastSuggestionsFileWithoutAny(t *testing.T) {
	ws := newTestWorkspace(t)

	_, err := ws.LastSuggestionsFile()
	assert.Error(t, err)
}

func TestNextSubmissionFileNumbering(t *testing.T) {
	ws := newTestWorkspace(t)

	next, err := ws.NextSubmissionFile()
	require.NoError(t, err)
	assert.Equal(t, ws.SubmissionFile(1), next)

	require.NoError(t, os.MkdirAll(ws.SubmissionsDir(), 0o755))
	require.NoError(t, os.WriteFile(ws.SubmissionFile(3), []byte("[]"), 0o644))

	next, err = ws.NextSubmissionFile()
	require.NoError(t, err)
	assert.Equal(t, ws.SubmissionFile(4), next)

	files, err := ws.SubmissionFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{ws.SubmissionFile(3)}, files)
}
