package llm

import "context"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant turn.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Provider defines the methods used by the assistant service.
type Provider interface {
	// Chat sends the full conversation and returns the assistant reply.
	Chat(ctx context.Context, messages []Message) (string, error)
	// Ping reports whether the backing server is reachable.
	Ping(ctx context.Context) bool
}
