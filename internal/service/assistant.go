package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/drydock-app/drydock/internal/llm"
)

// AssistantService runs conversations against the configured provider.
type AssistantService struct {
	Provider llm.Provider
	Logger   zerolog.Logger
}

// Send submits the full conversation and returns the assistant reply.
func (s *AssistantService) Send(ctx context.Context, messages []llm.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	s.Logger.Info().Msg("sending chat request to assistant")
	reply, err := s.Provider.Chat(ctx, messages)
	if err != nil {
		s.Logger.Error().Err(err).Msg("assistant request failed")
		return "", err
	}
	s.Logger.Info().Msg("received assistant response")
	return reply, nil
}

// Status reports whether the assistant server is reachable.
func (s *AssistantService) Status(ctx context.Context) bool {
	ok := s.Provider.Ping(ctx)
	if ok {
		s.Logger.Info().Msg("assistant server is available")
	} else {
		s.Logger.Warn().Msg("assistant server is not available")
	}
	return ok
}
