package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drydock-app/drydock/internal/config"
	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
	"github.com/drydock-app/drydock/internal/llm"
	"github.com/drydock-app/drydock/internal/logging"
	"github.com/drydock-app/drydock/internal/service"
	"github.com/drydock-app/drydock/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	feedRepo := repository.NewFeedRepo(db)
	itemRepo := repository.NewFeedItemRepo(db)
	noteRepo := repository.NewNoteRepo(db)
	bookmarkRepo := repository.NewBookmarkRepo(db)
	logRepo := repository.NewLogRepo(db)

	logger := logging.New(logRepo, cfg.Logs.FilePath)
	logger.Info().Str("version", cfg.App.Version).Msg("starting")

	if removed, err := logRepo.Purge(ctx, time.Now().UTC().AddDate(0, 0, -30)); err == nil && removed > 0 {
		logger.Info().Int64("removed", removed).Msg("purged old log entries")
	}

	provider := llm.NewOllamaProvider(cfg.Assistant.URL,
		llm.WithModel(cfg.Assistant.Model),
		llm.WithTimeout(time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second),
	)

	// services
	feedSvc := service.NewFeedService(db, feedRepo, itemRepo, logger, service.FeedFetchOptions{
		UserAgent:    cfg.Feeds.UserAgent,
		Timeout:      time.Duration(cfg.Feeds.TimeoutSeconds) * time.Second,
		MaxRedirects: cfg.Feeds.MaxRedirects,
	})
	noteSvc := &service.NoteService{Notes: noteRepo}
	bookmarkSvc := &service.BookmarkService{Bookmarks: bookmarkRepo}
	assistantSvc := &service.AssistantService{Provider: provider, Logger: logger}
	logSvc := &service.LogService{Logs: logRepo, FetchLimit: cfg.Logs.FetchLimit}

	app := tui.New(ctx, cfg,
		tui.Repos{Feeds: feedRepo, Items: itemRepo, Notes: noteRepo, Bookmarks: bookmarkRepo, Logs: logRepo},
		tui.Services{Feeds: feedSvc, Notes: noteSvc, Bookmarks: bookmarkSvc, Assistant: assistantSvc, Logs: logSvc},
		logger,
	)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		fmt.Printf("error: %v\n", err)
	}
}
