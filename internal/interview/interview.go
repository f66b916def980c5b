// Package interview drives scripted conversations between the assistant and
// the simulated personas of the challenge. An Interviewer decides what to say
// next; a PersonaChatter delivers it and returns the persona's reply.
package interview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
)

// MaxTotalMessages bounds one conversation: 10 assistant turns and 10
// persona replies.
const MaxTotalMessages = 20

// Role tags a conversation message.
type Role string

const (
	RoleAssistant Role = "assistant"
	RolePersona   Role = "persona"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Conversation accumulates one interview. Handler is the server-side
// conversation id for remote chats.
type Conversation struct {
	PersonaID string
	Handler   string
	Messages  []Message
}

// Details is the structured state the interviewer extracts after each turn.
// NextMessage is always set; the profile fields fill in as the conversation
// progresses.
type Details struct {
	NextMessage       string  `json:"next_message"`
	Age               *int    `json:"age"`
	ConfidenceInAge   *int    `json:"confidence_in_age"`
	City              *string `json:"city"`
	AbilityToRelocate *bool   `json:"ability_to_relocate"`
	Intent            *string `json:"intent"`
	EducationLevel    *int    `json:"education_level"`
	DomainOfInterest  *string `json:"domain_of_interest"`
	YearsOfExperience *int    `json:"years_of_experience"`
	Skills            *string `json:"skills"`
}

// Interviewer produces the assistant side of the conversation.
type Interviewer interface {
	Start(ctx context.Context) (*Details, error)
	Send(ctx context.Context, message string) (*Details, error)
}

// PersonaChatter delivers assistant messages to a persona and records its
// replies into the conversation.
type PersonaChatter interface {
	Start(ctx context.Context, personaNumber int, firstMessage string) (*Conversation, error)
	Send(ctx context.Context, conversation *Conversation, message string) error
}

// Run drives a full interview: the interviewer opens, then interviewer and
// persona alternate until the message budget is spent or either side goes
// silent.
func Run(ctx context.Context, interviewer Interviewer, chatter PersonaChatter, personaNumber int, logger *zap.Logger) (*Conversation, error) {
	details, err := interviewer.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}

	conversation, err := chatter.Start(ctx, personaNumber, details.NextMessage)
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	for len(conversation.Messages) < MaxTotalMessages {
		logger.Debug("interview progress",
			zap.Int("persona", personaNumber),
			zap.Int("exchanged", len(conversation.Messages)/2),
		)

		// An empty persona reply ends the interview: the console chatter
		// produces one when the operator submits an empty line.
		last := conversation.Messages[len(conversation.Messages)-1]
		if strings.TrimSpace(last.Content) == "" {
			break
		}

		details, err = interviewer.Send(ctx, last.Content)
		if err != nil {
			return nil, fmt.Errorf("interviewer turn: %w", err)
		}
		if strings.TrimSpace(details.NextMessage) == "" {
			break
		}
		if err := chatter.Send(ctx, conversation, details.NextMessage); err != nil {
			return nil, fmt.Errorf("persona turn: %w", err)
		}
	}
	return conversation, nil
}

// WriteTranscript renders the conversation in the markdown form every
// downstream extraction step parses.
func WriteTranscript(path string, conversation *Conversation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create transcript folder: %w", err)
	}

	var b strings.Builder
	for _, msg := range conversation.Messages {
		if msg.Role == RoleAssistant {
			fmt.Fprintf(&b, "**Assistant:** %s\n\n", msg.Content)
		} else {
			fmt.Fprintf(&b, "**User:** %s\n\n", msg.Content)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Summarize condenses a transcript for use as context in a follow-up
// interview.
func Summarize(ctx context.Context, gen ai.Generator, transcript string) (string, error) {
	prompt := `You are an expert at summarizing interview transcripts.
Given the transcript of an interview, produce a concise summary highlighting the key points that the user gave about themselves.

` + transcript

	summary, err := gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize interview: %w", err)
	}
	return summary, nil
}
