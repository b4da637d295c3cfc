package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/drydock-app/drydock/internal/config"
	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
	"github.com/drydock-app/drydock/internal/service"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db))

	repos := Repos{
		Feeds:     repository.NewFeedRepo(db),
		Items:     repository.NewFeedItemRepo(db),
		Notes:     repository.NewNoteRepo(db),
		Bookmarks: repository.NewBookmarkRepo(db),
		Logs:      repository.NewLogRepo(db),
	}
	logger := zerolog.Nop()
	services := Services{
		Feeds:     service.NewFeedService(db, repos.Feeds, repos.Items, logger, service.FeedFetchOptions{}),
		Notes:     &service.NoteService{Notes: repos.Notes},
		Bookmarks: &service.BookmarkService{Bookmarks: repos.Bookmarks},
		Logs:      &service.LogService{Logs: repos.Logs},
	}
	cfg := config.Config{
		App:   config.AppConfig{Name: "Dry Dock", Version: "test"},
		Feeds: config.FeedsConfig{PageSize: 200},
	}
	return New(context.Background(), cfg, repos, services, logger)
}

// drain runs a command tree to completion, feeding resulting messages back
// into the model. Spinner ticks are dropped so waiting states do not loop.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, a, c)
		}
		return
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return
	}
	_, next := a.Update(msg)
	drain(t, a, next)
}

func press(a *App, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestViewSwitching(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, viewHome, a.state)

	press(a, "2")
	require.Equal(t, viewFeeds, a.state)
	press(a, "3")
	require.Equal(t, viewNotes, a.state)
	press(a, "4")
	require.Equal(t, viewBookmarks, a.state)
	press(a, "7")
	require.Equal(t, viewLogs, a.state)
	press(a, "8")
	require.Equal(t, viewSettings, a.state)
	press(a, "1")
	require.Equal(t, viewHome, a.state)
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t)
	cmd := press(a, "q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestNoteCreateFlow(t *testing.T) {
	a := newTestApp(t)
	press(a, "3")
	press(a, "a")
	require.Equal(t, modalNoteEdit, a.modal)

	typeText(a, "Shopping")
	press(a, "enter") // move focus to details
	require.True(t, a.noteFocusDetails)
	typeText(a, "milk and eggs")
	drain(t, a, press(a, "ctrl+s"))

	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.notes, 1)
	require.Equal(t, "Shopping", a.notes[0].Title)
	require.Equal(t, "milk and eggs", a.notes[0].Details)
}

func TestNoteEditorRequiresBothFields(t *testing.T) {
	a := newTestApp(t)
	press(a, "3")
	press(a, "a")
	typeText(a, "Title only")
	drain(t, a, press(a, "ctrl+s"))

	require.Equal(t, modalNoteEdit, a.modal)
	require.Empty(t, a.notes)
	require.Contains(t, a.status, "required")
}

func TestNoteSearchFilters(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.services.Notes.Create(ctx, "groceries", "milk")
	require.NoError(t, err)
	_, err = a.services.Notes.Create(ctx, "work", "standup at nine")
	require.NoError(t, err)
	drain(t, a, a.loadNotes())
	require.Len(t, a.notes, 2)

	press(a, "3")
	press(a, "/")
	require.True(t, a.searching)
	for _, r := range "groc" {
		drain(t, a, press(a, string(r)))
	}
	require.Len(t, a.notes, 1)
	require.Equal(t, "groceries", a.notes[0].Title)

	drain(t, a, press(a, "esc"))
	require.False(t, a.searching)
	require.Len(t, a.notes, 2)
}

func TestNoteDelete(t *testing.T) {
	a := newTestApp(t)
	_, err := a.services.Notes.Create(context.Background(), "doomed", "soon gone")
	require.NoError(t, err)
	drain(t, a, a.loadNotes())

	press(a, "3")
	drain(t, a, press(a, "d"))
	require.Empty(t, a.notes)
}

func TestBookmarkAddAndDelete(t *testing.T) {
	a := newTestApp(t)
	press(a, "4")
	press(a, "a")
	require.Equal(t, modalBookmarkEdit, a.modal)

	typeText(a, "Go blog")
	press(a, "tab")
	typeText(a, "https://go.dev/blog")
	drain(t, a, press(a, "enter"))

	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.bookmarks, 1)
	require.Equal(t, "Go blog", a.bookmarks[0].Name)

	drain(t, a, press(a, "d"))
	require.Empty(t, a.bookmarks)
}

func TestManageFeedsDelete(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.repos.Feeds.Insert(ctx, "Example", "https://example.com/rss", database.Now())
	require.NoError(t, err)
	drain(t, a, a.loadFeeds())
	require.Len(t, a.feeds, 1)

	press(a, "2")
	press(a, "m")
	require.Equal(t, modalManageFeeds, a.modal)
	drain(t, a, press(a, "d"))
	require.Empty(t, a.feeds)
}

func TestManageFeedsClearItems(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	id, err := a.repos.Feeds.Insert(ctx, "Example", "https://example.com/rss", database.Now())
	require.NoError(t, err)
	seedItems(t, a, id, "ex", 3)
	drain(t, a, a.loadFeeds())
	drain(t, a, a.loadFeedItems())
	require.Len(t, a.items, 3)

	press(a, "2")
	press(a, "m")
	drain(t, a, press(a, "c"))
	require.Empty(t, a.items)
	require.Len(t, a.feeds, 1, "clearing items keeps the subscription")
}

func TestFeedItemViewRespectsSelectionAndPageSize(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Feeds.PageSize = 2
	ctx := context.Background()
	one, err := a.repos.Feeds.Insert(ctx, "One", "https://one.example/rss", database.Now())
	require.NoError(t, err)
	two, err := a.repos.Feeds.Insert(ctx, "Two", "https://two.example/rss", database.Now())
	require.NoError(t, err)
	seedItems(t, a, one, "one", 3)
	seedItems(t, a, two, "two", 1)
	drain(t, a, a.loadFeeds())

	press(a, "2")
	drain(t, a, press(a, "l")) // select feed One
	require.Len(t, a.items, 2, "page size caps the per-feed view")
	for _, it := range a.items {
		require.Equal(t, one, it.FeedID)
	}

	drain(t, a, press(a, "h")) // back to the All view
	require.Len(t, a.items, 2)
}

func seedItems(t *testing.T, a *App, feedID int64, prefix string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := a.repos.Items.InsertOrIgnore(ctx, repository.FeedItem{
			FeedID:  feedID,
			Title:   fmt.Sprintf("%s item %d", prefix, i),
			Link:    fmt.Sprintf("https://%s.example/%d", prefix, i),
			PubDate: database.Now(),
			GUID:    fmt.Sprintf("%s-%d", prefix, i),
		}, database.Now())
		require.NoError(t, err)
	}
}

func TestFeedSelectorMoves(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.repos.Feeds.Insert(ctx, "One", "https://one.example/rss", database.Now())
	require.NoError(t, err)
	_, err = a.repos.Feeds.Insert(ctx, "Two", "https://two.example/rss", database.Now())
	require.NoError(t, err)
	drain(t, a, a.loadFeeds())

	press(a, "2")
	require.Equal(t, -1, a.feedIndex)
	drain(t, a, press(a, "l"))
	require.Equal(t, 0, a.feedIndex)
	drain(t, a, press(a, "l"))
	require.Equal(t, 1, a.feedIndex)
	drain(t, a, press(a, "l"))
	require.Equal(t, 1, a.feedIndex)
	drain(t, a, press(a, "h"))
	drain(t, a, press(a, "h"))
	require.Equal(t, -1, a.feedIndex)
}

func TestAddFeedModalValidation(t *testing.T) {
	a := newTestApp(t)
	press(a, "2")
	press(a, "a")
	require.Equal(t, modalAddFeed, a.modal)

	press(a, "enter")
	require.Equal(t, modalAddFeed, a.modal)
	require.Contains(t, a.status, "URL")

	press(a, "esc")
	require.Equal(t, modalNone, a.modal)
}

func TestSettingsNavigation(t *testing.T) {
	a := newTestApp(t)
	press(a, "8")
	require.Equal(t, viewSettings, a.state)

	press(a, "down")
	press(a, "down")
	require.Equal(t, 2, a.settingsCursor)
	press(a, "enter")
	require.Equal(t, modalEditSetting, a.modal)
	require.Equal(t, settingFeedUserAgent, a.settingField)

	press(a, "esc")
	require.Equal(t, modalNone, a.modal)
}

func TestSettingEditAppliesBeforeSave(t *testing.T) {
	a := newTestApp(t)
	t.Setenv("DRYDOCK_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	press(a, "8")
	press(a, "down")
	press(a, "enter")
	require.Equal(t, modalEditSetting, a.modal)
	require.Equal(t, settingAssistantModel, a.settingField)

	a.settingInput.SetValue("llama3")
	cmd := press(a, "enter")
	require.Equal(t, "llama3", a.cfg.Assistant.Model, "the model copy updates before the save command runs")
	require.NotNil(t, cmd)
	drain(t, a, cmd)
	require.Contains(t, a.status, "setting saved")
}

func TestSettingEditRejectsEmptyValue(t *testing.T) {
	a := newTestApp(t)
	press(a, "8")
	press(a, "enter")
	require.Equal(t, modalEditSetting, a.modal)

	a.settingInput.SetValue("   ")
	cmd := press(a, "enter")
	require.Nil(t, cmd)
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, "enter a value", a.status)
}

func TestStatusShownOnError(t *testing.T) {
	a := newTestApp(t)
	a.Update(errMsg{context.DeadlineExceeded})
	require.Contains(t, a.status, "error:")
}

func TestViewRendersEachScreen(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	for _, key := range []string{"1", "2", "3", "4", "7", "8"} {
		press(a, key)
		out := a.View()
		require.NotEmpty(t, out)
	}
}
