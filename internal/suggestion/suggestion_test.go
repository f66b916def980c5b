package suggestion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAwareness(t *testing.T) {
	result := Awareness("persona_001", ItemsTooYoung)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"persona_id": "persona_001",
		"predicted_type": "awareness",
		"predicted_items": "too_young"
	}`, string(data))
}

func TestMarshalTrainingsOnlyKeepsEmptyArray(t *testing.T) {
	result := TrainingsOnly("persona_002", nil)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"persona_id": "persona_002",
		"predicted_type": "trainings_only",
		"trainings": []
	}`, string(data))
}

func TestMarshalJobsAndTrainings(t *testing.T) {
	result := JobsAndTrainings("persona_003", []JobSuggestion{
		{JobID: "j12", SuggestedTrainings: []string{"tr1", "tr2"}},
		{JobID: "j40", SuggestedTrainings: []string{}},
	})

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"persona_id": "persona_003",
		"predicted_type": "jobs+trainings",
		"jobs": [
			{"job_id": "j12", "suggested_trainings": ["tr1", "tr2"]},
			{"job_id": "j40", "suggested_trainings": []}
		]
	}`, string(data))
}

func TestUnmarshalDispatchesOnPredictedType(t *testing.T) {
	var awareness Result
	require.NoError(t, json.Unmarshal([]byte(`{
		"persona_id": "persona_004",
		"predicted_type": "awareness",
		"predicted_items": "info"
	}`), &awareness))
	assert.Equal(t, KindAwareness, awareness.Kind)
	assert.Equal(t, ItemsInfo, awareness.PredictedItems)

	var trainings Result
	require.NoError(t, json.Unmarshal([]byte(`{
		"persona_id": "persona_005",
		"predicted_type": "trainings_only",
		"trainings": ["tr7"]
	}`), &trainings))
	assert.Equal(t, KindTrainingsOnly, trainings.Kind)
	assert.Equal(t, []string{"tr7"}, trainings.Trainings)

	var jobs Result
	require.NoError(t, json.Unmarshal([]byte(`{
		"persona_id": "persona_006",
		"predicted_type": "jobs+trainings",
		"jobs": [{"job_id": "j3", "suggested_trainings": ["tr9"]}]
	}`), &jobs))
	assert.Equal(t, KindJobsAndTrainings, jobs.Kind)
	require.Len(t, jobs.Jobs, 1)
	assert.Equal(t, "j3", jobs.Jobs[0].JobID)

	var bogus Result
	assert.Error(t, json.Unmarshal([]byte(`{
		"persona_id": "persona_007",
		"predicted_type": "something_else"
	}`), &bogus))
}

func TestRoundTrip(t *testing.T) {
	original := JobsAndTrainings("persona_010", []JobSuggestion{
		{JobID: "j1", SuggestedTrainings: []string{"tr0"}},
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}
