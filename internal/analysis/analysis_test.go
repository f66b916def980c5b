package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/referential"
)

func writePosting(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMockJobAnalyzerFindsCity(t *testing.T) {
	analyzer := NewJobAnalyzer(nil, zap.NewNop())

	path := writePosting(t, "j12.md", "# Great job\nLocated in Recife, full time.")
	job, err := analyzer.Analyze(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "j12", job.ID)
	require.NotNil(t, job.City)
	assert.Equal(t, "Recife", *job.City)
	assert.False(t, job.Remote)
}

func TestMockJobAnalyzerRemote(t *testing.T) {
	analyzer := NewJobAnalyzer(nil, zap.NewNop())

	path := writePosting(t, "j13.md", "# Great job\nThis position is fully remote.")
	job, err := analyzer.Analyze(context.Background(), path)
	require.NoError(t, err)

	assert.Nil(t, job.City)
	assert.True(t, job.Remote)
}

func TestMockJobAnalyzerWithoutLocation(t *testing.T) {
	analyzer := NewJobAnalyzer(nil, zap.NewNop())

	path := writePosting(t, "j14.md", "# Great job\nNo location given.")
	_, err := analyzer.Analyze(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "j14")
}

func TestMockTrainingAnalyzer(t *testing.T) {
	analyzer := NewTrainingAnalyzer(nil, zap.NewNop())

	online, err := analyzer.Analyze(context.Background(), writePosting(t, "tr4.md", "# Training"))
	require.NoError(t, err)
	assert.True(t, online.Online)
	assert.Nil(t, online.City)
	assert.Equal(t, referential.TrainingLevelChange(4), online.LevelChange)

	offline, err := analyzer.Analyze(context.Background(), writePosting(t, "tr3.md", "# Training"))
	require.NoError(t, err)
	assert.False(t, offline.Online)
	require.NotNil(t, offline.City)
}

func TestMockPersonaAnalyzer(t *testing.T) {
	analyzer := NewPersonaAnalyzer(nil, nil, zap.NewNop())

	persona, err := analyzer.Analyze(context.Background(), "persona_001", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "persona_001", persona.ID)
	assert.Equal(t, 30, persona.Age)
	require.NotNil(t, persona.City)
	assert.Equal(t, "MockCity", *persona.City)
}

func TestSkillBuilderGroupsByThree(t *testing.T) {
	trainings := make([]*referential.Training, 0, 6)
	for i := 0; i < 6; i++ {
		trainings = append(trainings, &referential.Training{
			ID:                referential.TrainingID(i),
			SkillsDescription: "Data analysis",
			TargetJob:         "Data Analyst",
		})
	}

	builder := NewSkillBuilder(nil, zap.NewNop())
	skills, err := builder.Build(context.Background(), trainings)
	require.NoError(t, err)

	require.Len(t, skills, 2)
	assert.Equal(t, 1, skills[0].ID)
	assert.Equal(t, []string{"tr0", "tr1", "tr2"}, skills[0].Trainings)
	assert.Equal(t, 2, skills[1].ID)
	assert.Equal(t, []string{"tr3", "tr4", "tr5"}, skills[1].Trainings)
	require.NotNil(t, skills[0].Jobs)
	assert.Equal(t, "Data Analyst", *skills[0].Jobs)
}
