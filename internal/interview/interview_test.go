package interview

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunStopsAtMessageBudget(t *testing.T) {
	conversation, err := Run(context.Background(), NewMockInterviewer(), NewMockChatter(), 7, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "persona_007", conversation.PersonaID)
	assert.Len(t, conversation.Messages, MaxTotalMessages)
	for i, msg := range conversation.Messages {
		expected := RoleAssistant
		if i%2 == 1 {
			expected = RolePersona
		}
		assert.Equal(t, expected, msg.Role, "message %d", i)
	}
}

type silentInterviewer struct {
	turns int
}

func (s *silentInterviewer) Start(context.Context) (*Details, error) {
	return &Details{NextMessage: "Hello"}, nil
}

func (s *silentInterviewer) Send(context.Context, string) (*Details, error) {
	s.turns++
	if s.turns >= 2 {
		return &Details{}, nil
	}
	return &Details{NextMessage: "And then?"}, nil
}

func TestRunStopsWhenInterviewerGoesSilent(t *testing.T) {
	conversation, err := Run(context.Background(), &silentInterviewer{}, NewMockChatter(), 1, zap.NewNop())
	require.NoError(t, err)

	// Opening exchange plus one full follow-up turn.
	assert.Len(t, conversation.Messages, 4)
}

// countingInterviewer always has a follow-up question ready and counts how
// often it is asked for one.
type countingInterviewer struct {
	sends int
}

func (c *countingInterviewer) Start(context.Context) (*Details, error) {
	return &Details{NextMessage: "Hello"}, nil
}

func (c *countingInterviewer) Send(context.Context, string) (*Details, error) {
	c.sends++
	return &Details{NextMessage: "And then?"}, nil
}

// muteChatter answers every message with a blank line, like an operator
// pressing Enter on the console.
type muteChatter struct{}

func (muteChatter) Start(_ context.Context, _ int, firstMessage string) (*Conversation, error) {
	return &Conversation{Messages: []Message{
		{Role: RoleAssistant, Content: firstMessage},
		{Role: RolePersona, Content: "  "},
	}}, nil
}

func (muteChatter) Send(_ context.Context, conversation *Conversation, message string) error {
	conversation.Messages = append(conversation.Messages,
		Message{Role: RoleAssistant, Content: message},
		Message{Role: RolePersona, Content: ""},
	)
	return nil
}

func TestRunStopsOnEmptyPersonaReply(t *testing.T) {
	interviewer := &countingInterviewer{}
	conversation, err := Run(context.Background(), interviewer, muteChatter{}, 3, zap.NewNop())
	require.NoError(t, err)

	// Opening question and the blank reply only; the interviewer is never
	// asked for a follow-up.
	assert.Len(t, conversation.Messages, 2)
	assert.Zero(t, interviewer.sends)
}

func TestWriteTranscript(t *testing.T) {
	conversation := &Conversation{
		PersonaID: "persona_001",
		Messages: []Message{
			{Role: RoleAssistant, Content: "Hi, how old are you?"},
			{Role: RolePersona, Content: "I am 30."},
		},
	}

	path := filepath.Join(t.TempDir(), "interviews", "persona_001.md")
	require.NoError(t, WriteTranscript(path, conversation))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "**Assistant:** Hi, how old are you?\n\n**User:** I am 30.\n\n", string(content))
}

func TestAgeNeedsClarification(t *testing.T) {
	age := func(n int) *int { return &n }

	lowConfidence := 4
	assert.True(t, ageNeedsClarification(&Details{ConfidenceInAge: &lowConfidence}))

	highConfidence := 9
	assert.False(t, ageNeedsClarification(&Details{Age: age(30), ConfidenceInAge: &highConfidence}))

	// An adult still in basic education is suspicious regardless of the
	// reported confidence.
	basicEducation := 2
	assert.True(t, ageNeedsClarification(&Details{
		Age:             age(25),
		ConfidenceInAge: &highConfidence,
		EducationLevel:  &basicEducation,
	}))

	higherEducation := 5
	assert.False(t, ageNeedsClarification(&Details{
		Age:             age(25),
		ConfidenceInAge: &highConfidence,
		EducationLevel:  &higherEducation,
	}))

	assert.False(t, ageNeedsClarification(&Details{}))
}
