package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/drydock-app/drydock/internal/database/repository"
	"github.com/drydock-app/drydock/internal/llm"
)

type fakeProvider struct {
	reply string
	err   error
	up    bool
	seen  []llm.Message
}

func (f *fakeProvider) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.seen = messages
	return f.reply, f.err
}

func (f *fakeProvider) Ping(context.Context) bool { return f.up }

func TestAssistantSend(t *testing.T) {
	t.Parallel()
	fp := &fakeProvider{reply: "42"}
	svc := &AssistantService{Provider: fp, Logger: zerolog.Nop()}

	reply, err := svc.Send(context.Background(), []llm.Message{
		llm.UserMessage("what is the answer"),
	})
	require.NoError(t, err)
	require.Equal(t, "42", reply)
	require.Len(t, fp.seen, 1)
}

func TestAssistantSendRejectsEmpty(t *testing.T) {
	t.Parallel()
	svc := &AssistantService{Provider: &fakeProvider{}, Logger: zerolog.Nop()}
	_, err := svc.Send(context.Background(), nil)
	require.ErrorContains(t, err, "no messages")
}

func TestAssistantSendPropagatesError(t *testing.T) {
	t.Parallel()
	svc := &AssistantService{
		Provider: &fakeProvider{err: fmt.Errorf("server down")},
		Logger:   zerolog.Nop(),
	}
	_, err := svc.Send(context.Background(), []llm.Message{llm.UserMessage("hi")})
	require.ErrorContains(t, err, "server down")
}

func TestAssistantStatus(t *testing.T) {
	t.Parallel()
	up := &AssistantService{Provider: &fakeProvider{up: true}, Logger: zerolog.Nop()}
	require.True(t, up.Status(context.Background()))
	down := &AssistantService{Provider: &fakeProvider{up: false}, Logger: zerolog.Nop()}
	require.False(t, down.Status(context.Background()))
}

func TestLogServiceAddAndSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &LogService{Logs: repository.NewLogRepo(openTestDB(t)), FetchLimit: 100}

	svc.Add(ctx, "info", "feed refreshed ok")
	svc.Add(ctx, "error", "fetch failed for blog")
	svc.Add(ctx, "info", "note created")

	all, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	hits, err := svc.Search(ctx, "FEED")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "feed refreshed ok", hits[0].Message)

	hits, err = svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, hits, 3)
}
