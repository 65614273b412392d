package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are AkiliPesa's assistant. Answer briefly and practically, in the user's language."

type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// OpenAICompleter backs the chat service with the OpenAI chat-completion API.
type OpenAICompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewOpenAICompleter(cfg OpenAIConfig) *OpenAICompleter {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}

	return &OpenAICompleter{
		client:    openai.NewClient(cfg.APIKey),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range messages {
		role := msg.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
