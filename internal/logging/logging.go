package logging

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

// dbWriter persists each log event into the logs table so the in-app log
// viewer sees everything. Failures are swallowed: logging never breaks the
// operation that logged.
type dbWriter struct {
	repo *repository.LogRepo
}

type event struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (w *dbWriter) Write(p []byte) (int, error) {
	var e event
	if err := json.Unmarshal(p, &e); err != nil || e.Message == "" {
		return len(p), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = w.repo.Insert(ctx, e.Level, e.Message, database.Now())
	return len(p), nil
}

// New builds the application logger. Events go to the database sink and,
// when filePath is non-empty, to a log file that also captures startup
// errors from before the database is ready.
func New(repo *repository.LogRepo, filePath string) zerolog.Logger {
	writers := make([]io.Writer, 0, 2)
	if repo != nil {
		writers = append(writers, &dbWriter{repo: repo})
	}
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err == nil {
			if f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				writers = append(writers, f)
			}
		}
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

// NewFileOnly builds a logger for the window between process start and the
// database coming up.
func NewFileOnly(filePath string) zerolog.Logger {
	return New(nil, filePath)
}
