package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsc-alina/alina/internal/workspace"
)

func TestFillSkillGapsSingleHole(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, FillSkillGaps([]int{1, 3}))
}

func TestFillSkillGapsDoubleHole(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, FillSkillGaps([]int{1, 4}))
}

func TestFillSkillGapsNoHole(t *testing.T) {
	assert.Equal(t, []int{1, 2}, FillSkillGaps([]int{1, 2}))
	assert.Equal(t, []int{5}, FillSkillGaps([]int{5}))
}

func TestFillSkillGapsIgnoresWideGaps(t *testing.T) {
	// A four-level hole is not a progression, nothing gets added.
	assert.Equal(t, []int{1, 6}, FillSkillGaps([]int{1, 6}))
}

func TestFillSkillGapsDeduplicates(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, FillSkillGaps([]int{4, 2, 4, 2}))
	assert.Empty(t, FillSkillGaps(nil))
}

func TestTrainingIDsOf(t *testing.T) {
	assert.Equal(t, []string{"tr3", "tr17"}, trainingIDsOf([]int{3, 17}))
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []int{1, 2, 9}, sortedUnique([]int{9, 2, 1, 2, 9}))
}

func TestPlansRoundTrip(t *testing.T) {
	ws, err := workspace.New(t.TempDir(), t.TempDir())
	require.NoError(t, err)

	empty, err := LoadPlans(ws)
	require.NoError(t, err)
	assert.Empty(t, empty)

	plans := Plans{
		"persona_004": {
			Skills:       []int{1, 2},
			RawTrainings: []int{0, 1, 3},
			Trainings:    []int{1, 3},
		},
	}
	require.NoError(t, SavePlans(ws, plans))

	loaded, err := LoadPlans(ws)
	require.NoError(t, err)
	assert.Equal(t, plans, loaded)
}
