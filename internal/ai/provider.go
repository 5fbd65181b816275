package ai

import "context"

// Message is a single chat message in provider wire order.
// Roles follow the OpenAI convention: system, user, assistant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates one completion for an ordered message list.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
