package service

import (
	"context"
	"strings"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

// LogService exposes the persistent log to the UI.
type LogService struct {
	Logs       *repository.LogRepo
	FetchLimit int
}

// Add records an entry, best effort. Callers never see log failures.
func (s *LogService) Add(ctx context.Context, level, message string) {
	_ = s.Logs.Insert(ctx, level, message, database.Now())
}

// Recent returns the newest entries up to the configured fetch limit.
func (s *LogService) Recent(ctx context.Context) ([]repository.LogEntry, error) {
	return s.Logs.Recent(ctx, s.limit())
}

// Search filters recent entries by message substring, case-insensitive.
func (s *LogService) Search(ctx context.Context, query string) ([]repository.LogEntry, error) {
	all, err := s.Recent(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}
	var out []repository.LogEntry
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Message), query) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *LogService) limit() int {
	if s.FetchLimit > 0 {
		return s.FetchLimit
	}
	return 1000
}
