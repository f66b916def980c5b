package interview

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/challenge"
	"github.com/gdsc-alina/alina/internal/referential"
)

// remoteChatter talks to the simulated personas behind the challenge API.
type remoteChatter struct {
	client *challenge.Client
	logger *zap.Logger
}

// NewRemoteChatter returns the chatter backed by the challenge API.
func NewRemoteChatter(client *challenge.Client, logger *zap.Logger) PersonaChatter {
	return &remoteChatter{client: client, logger: logger}
}

func (r *remoteChatter) Start(ctx context.Context, personaNumber int, firstMessage string) (*Conversation, error) {
	personaID := referential.PersonaID(personaNumber)
	reply, err := r.client.Chat(ctx, personaID, firstMessage, "")
	if err != nil {
		return nil, fmt.Errorf("start conversation with persona %s: %w", personaID, err)
	}

	r.logger.Debug("conversation started",
		zap.String("persona", personaID),
		zap.String("conversation_id", reply.ConversationID),
		zap.Int("week_count", reply.ConversationCount),
	)

	return &Conversation{
		PersonaID: personaID,
		Handler:   reply.ConversationID,
		Messages: []Message{
			{Role: RoleAssistant, Content: firstMessage},
			{Role: RolePersona, Content: reply.Response},
		},
	}, nil
}

func (r *remoteChatter) Send(ctx context.Context, conversation *Conversation, message string) error {
	conversation.Messages = append(conversation.Messages, Message{Role: RoleAssistant, Content: message})

	reply, err := r.client.Chat(ctx, conversation.PersonaID, message, conversation.Handler)
	if err != nil {
		return fmt.Errorf("send message to persona %s: %w", conversation.PersonaID, err)
	}
	conversation.Messages = append(conversation.Messages, Message{Role: RolePersona, Content: reply.Response})
	return nil
}

// consoleChatter lets a human play the persona from the terminal.
type consoleChatter struct{}

// NewConsoleChatter returns the interactive chatter.
func NewConsoleChatter() PersonaChatter {
	return &consoleChatter{}
}

func (c *consoleChatter) Start(_ context.Context, personaNumber int, firstMessage string) (*Conversation, error) {
	conversation := &Conversation{
		PersonaID: referential.PersonaID(personaNumber),
		Handler:   "typing",
		Messages:  []Message{{Role: RoleAssistant, Content: firstMessage}},
	}

	reply, err := askPerson(firstMessage)
	if err != nil {
		return nil, err
	}
	conversation.Messages = append(conversation.Messages, Message{Role: RolePersona, Content: reply})
	return conversation, nil
}

func (c *consoleChatter) Send(_ context.Context, conversation *Conversation, message string) error {
	conversation.Messages = append(conversation.Messages, Message{Role: RoleAssistant, Content: message})

	reply, err := askPerson(message)
	if err != nil {
		return err
	}
	conversation.Messages = append(conversation.Messages, Message{Role: RolePersona, Content: reply})
	return nil
}

func askPerson(assistantMessage string) (string, error) {
	fmt.Printf("Assistant: %s\n", assistantMessage)
	prompt := promptui.Prompt{Label: "Person"}
	reply, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}

// mockChatter echoes canned replies for offline runs.
type mockChatter struct{}

// NewMockChatter returns the offline chatter.
func NewMockChatter() PersonaChatter {
	return &mockChatter{}
}

func (m *mockChatter) Start(_ context.Context, personaNumber int, firstMessage string) (*Conversation, error) {
	return &Conversation{
		PersonaID: referential.PersonaID(personaNumber),
		Handler:   "mock",
		Messages: []Message{
			{Role: RoleAssistant, Content: firstMessage},
			{Role: RolePersona, Content: fmt.Sprintf("Hello! I am a mock persona with ID %d. How can I assist you today?", personaNumber)},
		},
	}, nil
}

func (m *mockChatter) Send(_ context.Context, conversation *Conversation, message string) error {
	conversation.Messages = append(conversation.Messages,
		Message{Role: RoleAssistant, Content: message},
		Message{Role: RolePersona, Content: fmt.Sprintf("Mock response to your message: '%s'", message)},
	)
	return nil
}
