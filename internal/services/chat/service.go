package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	MaxPromptLen  = 4000
	MaxHistoryLen = 20
)

var ErrValidation = errors.New("validation error")

// Message is one turn of a conversation. Role follows the chat-completion
// convention ("user" or "assistant").
type Message struct {
	Role    string
	Content string
}

// Completer produces an assistant reply for a conversation. The production
// implementation talks to OpenAI; tests swap in a fake.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type Service struct {
	completer Completer
}

func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// Reply validates the prompt, folds it into the trailing history and asks the
// completer for the next assistant turn.
func (s *Service) Reply(ctx context.Context, prompt string, history []Message) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt is required", ErrValidation)
	}
	if len(prompt) > MaxPromptLen {
		return "", fmt.Errorf("%w: prompt too long", ErrValidation)
	}
	if s.completer == nil {
		return "", fmt.Errorf("completer is not configured")
	}

	if len(history) > MaxHistoryLen {
		history = history[len(history)-MaxHistoryLen:]
	}
	messages := make([]Message, 0, len(history)+1)
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		messages = append(messages, msg)
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("complete chat: %w", err)
	}

	return strings.TrimSpace(reply), nil
}
