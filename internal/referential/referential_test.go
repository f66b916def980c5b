package referential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelatedDomains(t *testing.T) {
	engineering := 3
	assert.Equal(t, []int{3, 4, 5, 6, 7}, RelatedDomains(&engineering))

	finance := 12
	assert.Equal(t, []int{1, 2, 12}, RelatedDomains(&finance))

	assert.Len(t, RelatedDomains(nil), len(Domains))

	unknown := 99
	assert.Equal(t, AllDomains(), RelatedDomains(&unknown))
}

func TestAllDomainsAscending(t *testing.T) {
	codes := AllDomains()
	require.Len(t, codes, 15)
	for i := 1; i < len(codes); i++ {
		assert.Greater(t, codes[i], codes[i-1])
	}
}

func TestPersonaIDRoundTrip(t *testing.T) {
	assert.Equal(t, "persona_007", PersonaID(7))
	assert.Equal(t, "persona_100", PersonaID(100))

	n, err := PersonaNumber("persona_042")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = PersonaNumber("bogus")
	assert.Error(t, err)
}

func TestTrainingIDRoundTrip(t *testing.T) {
	assert.Equal(t, "tr0", TrainingID(0))
	assert.Equal(t, "tr496", TrainingID(496))

	n, err := TrainingNumber("tr13")
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	_, err = TrainingNumber("j5")
	assert.Error(t, err)
}

func TestTrainingLevelChange(t *testing.T) {
	assert.Equal(t, "No Knowledge (0) to Básico (1)", TrainingLevelChange(0))
	assert.Equal(t, "Básico (1) to Intermediário (2)", TrainingLevelChange(1))
	assert.Equal(t, "Intermediário (2) to Avançado (3)", TrainingLevelChange(2))
	// Fourth step of a group wraps back to the first level.
	assert.Equal(t, "No Knowledge (0) to Básico (1)", TrainingLevelChange(3))
}

func TestRequiredSkills(t *testing.T) {
	job := &Job{
		Skills: []JobSkill{
			{Skill: "Python", Level: 2, Required: true},
			{Skill: "SQL", Level: 1, Required: false},
			{Skill: "Excel", Level: 3, Required: true},
		},
	}

	required := job.RequiredSkills()
	require.Len(t, required, 2)
	assert.Equal(t, "Python", required[0].Skill)
	assert.Equal(t, "Excel", required[1].Skill)
}
