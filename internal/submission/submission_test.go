package submission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsc-alina/alina/internal/suggestion"
)

func fullBatch() []*suggestion.Result {
	results := make([]*suggestion.Result, 0, BatchSize)
	for n := 1; n <= BatchSize; n++ {
		id := fmt.Sprintf("persona_%03d", n)
		switch n % 3 {
		case 0:
			results = append(results, suggestion.Awareness(id, suggestion.ItemsInfo))
		case 1:
			results = append(results, suggestion.TrainingsOnly(id, []string{"tr1", "tr2"}))
		default:
			results = append(results, suggestion.JobsAndTrainings(id, []suggestion.JobSuggestion{
				{JobID: "j1", SuggestedTrainings: []string{"tr0"}},
			}))
		}
	}
	return results
}

func TestValidateFullBatch(t *testing.T) {
	assert.NoError(t, Validate(fullBatch()))
}

func TestValidateRejectsEmptyBatch(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
}

func TestValidateRejectsWrongCount(t *testing.T) {
	err := Validate(fullBatch()[:99])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")
}

func TestValidateRejectsBadPersonaID(t *testing.T) {
	batch := fullBatch()
	batch[0] = suggestion.Awareness("persona_1", suggestion.ItemsInfo)

	assert.Error(t, Validate(batch))
}

func TestValidateRejectsInvalidAwarenessItems(t *testing.T) {
	batch := fullBatch()
	batch[0] = suggestion.Awareness("persona_001", "bogus")

	err := Validate(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predicted_items")
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	batch := fullBatch()
	batch[0] = &suggestion.Result{PersonaID: "persona_001", Kind: "bogus"}

	assert.Error(t, Validate(batch))
}
