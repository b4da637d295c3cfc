package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/browser"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

// BookmarkService is the business layer for bookmarks. A bookmark location is
// either a URL or a filesystem path; Open dispatches accordingly.
type BookmarkService struct {
	Bookmarks *repository.BookmarkRepo

	// test seams
	openURL  func(string) error
	openFile func(string) error
}

func (s *BookmarkService) Add(ctx context.Context, name, location string) (int64, error) {
	if err := validateBookmark(name, location); err != nil {
		return 0, err
	}
	return s.Bookmarks.Insert(ctx, strings.TrimSpace(name), strings.TrimSpace(location), database.Now())
}

func (s *BookmarkService) Edit(ctx context.Context, id int64, name, location string) error {
	if err := validateBookmark(name, location); err != nil {
		return err
	}
	return s.Bookmarks.Update(ctx, id, strings.TrimSpace(name), strings.TrimSpace(location))
}

func (s *BookmarkService) Delete(ctx context.Context, id int64) error {
	return s.Bookmarks.Delete(ctx, id)
}

func (s *BookmarkService) Get(ctx context.Context, id int64) (repository.Bookmark, error) {
	return s.Bookmarks.Get(ctx, id)
}

func (s *BookmarkService) List(ctx context.Context) ([]repository.Bookmark, error) {
	return s.Bookmarks.List(ctx)
}

// Open launches the location: URLs in the default browser, existing paths
// with the platform opener. Anything else is an error.
func (s *BookmarkService) Open(location string) error {
	location = strings.TrimSpace(location)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return s.urlOpener()(location)
	default:
		if _, err := os.Stat(location); err != nil {
			return fmt.Errorf("bookmark path does not exist: %s", location)
		}
		return s.fileOpener()(location)
	}
}

func (s *BookmarkService) urlOpener() func(string) error {
	if s.openURL != nil {
		return s.openURL
	}
	return browser.OpenURL
}

func (s *BookmarkService) fileOpener() func(string) error {
	if s.openFile != nil {
		return s.openFile
	}
	return openWithPlatform
}

func openWithPlatform(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

func validateBookmark(name, location string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("bookmark name cannot be empty")
	}
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("bookmark location cannot be empty")
	}
	return nil
}
