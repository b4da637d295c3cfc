package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatSendsConversation(t *testing.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse{
			Message: AssistantMessage("hello back"),
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, WithModel("testmodel"))
	reply, err := p.Chat(context.Background(), []Message{UserMessage("hello")})
	require.NoError(t, err)
	require.Equal(t, "hello back", reply)
	require.Equal(t, "testmodel", got.Model)
	require.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	require.Equal(t, RoleUser, got.Messages[0].Role)
}

func TestChatRejectsEmptyConversation(t *testing.T) {
	t.Parallel()
	p := NewOllamaProvider("http://localhost:1")
	_, err := p.Chat(context.Background(), nil)
	require.Error(t, err)
}

func TestChatSurfacesAPIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	_, err := p.Chat(context.Background(), []Message{UserMessage("hi")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "model not found")
}

func TestPing(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.True(t, NewOllamaProvider(srv.URL).Ping(context.Background()))
	srv.Close()
	require.False(t, NewOllamaProvider(srv.URL).Ping(context.Background()))
}

func TestDefaultsApplied(t *testing.T) {
	t.Parallel()
	p := NewOllamaProvider("  ")
	require.Equal(t, defaultOllamaURL, p.baseURL)
	require.Equal(t, defaultOllamaModel, p.Model())
}
