package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "gemma3"

	// Chat calls can take a while on local models; the availability probe must not.
	chatTimeout = 60 * time.Second
	pingTimeout = 2 * time.Second
)

// OllamaProvider talks to a local Ollama server over its HTTP API.
type OllamaProvider struct {
	baseURL string
	model   string
	timeout time.Duration
	client  *http.Client
}

// OllamaOption adjusts provider construction.
type OllamaOption func(*OllamaProvider)

// WithModel overrides the default model.
func WithModel(model string) OllamaOption {
	return func(p *OllamaProvider) {
		if m := strings.TrimSpace(model); m != "" {
			p.model = m
		}
	}
}

// WithTimeout overrides the chat request timeout.
func WithTimeout(d time.Duration) OllamaOption {
	return func(p *OllamaProvider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewOllamaProvider(baseURL string, opts ...OllamaOption) *OllamaProvider {
	p := &OllamaProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   defaultOllamaModel,
		timeout: chatTimeout,
		client:  &http.Client{},
	}
	if p.baseURL == "" {
		p.baseURL = defaultOllamaURL
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// Chat sends the conversation to /api/chat (non-streaming) and returns the reply.
func (p *OllamaProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("ollama: no messages provided")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{Model: p.model, Messages: messages, Stream: false})
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama: api error: %s - %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama: parse response: %w", err)
	}
	return out.Message.Content, nil
}

// Ping checks /api/tags with a short timeout.
func (p *OllamaProvider) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Model returns the configured model name.
func (p *OllamaProvider) Model() string { return p.model }
