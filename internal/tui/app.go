package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/drydock-app/drydock/internal/config"
	"github.com/drydock-app/drydock/internal/database/repository"
	"github.com/drydock-app/drydock/internal/llm"
	"github.com/drydock-app/drydock/internal/service"
	"github.com/drydock-app/drydock/internal/term"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	logger   zerolog.Logger

	state  appState
	modal  modalState
	width  int
	height int
	status string

	feeds     []repository.Feed
	items     []repository.FeedItem
	notes     []repository.Note
	bookmarks []repository.Bookmark
	logRows   []repository.LogEntry

	// -1 selects the combined latest view across all feeds.
	feedIndex      int
	itemCursor     int
	noteCursor     int
	bookmarkCursor int
	mgrCursor      int
	settingsCursor int
	logScroll      int

	searching bool
	filtering bool

	chat          []llm.Message
	assistantUp   bool
	assistantSeen bool
	waiting       bool

	termSession *term.Session
	termErr     string

	editingNoteID     int64
	editingBookmarkID int64
	noteFocusDetails  bool
	settingField      settingField

	searchInput   textinput.Model
	filterInput   textinput.Model
	urlInput      textinput.Model
	titleInput    textinput.Model
	detailsInput  textarea.Model
	nameInput     textinput.Model
	locationInput textinput.Model
	chatInput     textinput.Model
	settingInput  textinput.Model
	noteView      viewport.Model
	spin          spinner.Model
}

type Repos struct {
	Feeds     *repository.FeedRepo
	Items     *repository.FeedItemRepo
	Notes     *repository.NoteRepo
	Bookmarks *repository.BookmarkRepo
	Logs      *repository.LogRepo
}

type Services struct {
	Feeds     *service.FeedService
	Notes     *service.NoteService
	Bookmarks *service.BookmarkService
	Assistant *service.AssistantService
	Logs      *service.LogService
}

type appState string

const (
	viewHome      appState = "home"
	viewFeeds     appState = "feeds"
	viewNotes     appState = "notes"
	viewBookmarks appState = "bookmarks"
	viewAssistant appState = "assistant"
	viewTerminal  appState = "terminal"
	viewLogs      appState = "logs"
	viewSettings  appState = "settings"
)

type modalState string

const (
	modalNone         modalState = ""
	modalAddFeed      modalState = "addFeed"
	modalManageFeeds  modalState = "manageFeeds"
	modalNoteEdit     modalState = "noteEdit"
	modalNoteView     modalState = "noteView"
	modalBookmarkEdit modalState = "bookmarkEdit"
	modalEditSetting  modalState = "editSetting"
)

type settingField string

const (
	settingAssistantURL   settingField = "assistantURL"
	settingAssistantModel settingField = "assistantModel"
	settingFeedUserAgent  settingField = "feedUserAgent"
	settingShell          settingField = "shell"
	settingLogFile        settingField = "logFile"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, logger zerolog.Logger) *App {
	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		repos:     repos,
		services:  services,
		logger:    logger,
		state:     viewHome,
		feedIndex: -1,
	}
	a.searchInput = newInput("search notes...", 64)
	a.filterInput = newInput("filter logs...", 64)
	a.urlInput = newInput("https://example.com/feed.xml", 256)
	a.titleInput = newInput("title", 128)
	a.nameInput = newInput("name", 128)
	a.locationInput = newInput("https://... or /path/to/file", 512)
	a.chatInput = newInput("ask something...", 1024)
	a.settingInput = newInput("", 256)

	a.detailsInput = textarea.New()
	a.detailsInput.Placeholder = "details"
	a.detailsInput.CharLimit = 0
	a.detailsInput.SetWidth(60)
	a.detailsInput.SetHeight(10)

	a.noteView = viewport.New(70, 16)

	a.spin = spinner.New()
	a.spin.Spinner = spinner.Dot
	a.spin.Style = spinnerStyle
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadFeeds(), a.loadFeedItems(), a.loadNotes(), a.loadBookmarks(), a.checkAssistantCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.noteView.Width = min(m.Width-8, 100)
		a.noteView.Height = max(m.Height-10, 4)
		a.detailsInput.SetWidth(min(m.Width-12, 80))
		if a.termSession != nil {
			cols, rows := a.termDims()
			_ = a.termSession.Resize(cols, rows)
		}
		return a, nil

	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewTerminal:
			return a.handleTerminalKey(m)
		case viewAssistant:
			return a.handleAssistantKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		}
		if a.state == viewNotes && a.searching {
			return a.handleSearchKey(m)
		}
		if a.state == viewLogs && a.filtering {
			return a.handleFilterKey(m)
		}
		return a.handleGlobalKey(m)

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd

	case feedsMsg:
		a.feeds = []repository.Feed(m)
		if a.feedIndex >= len(a.feeds) {
			a.feedIndex = -1
		}
		if a.mgrCursor >= len(a.feeds) {
			a.mgrCursor = 0
		}
	case feedItemsMsg:
		a.items = []repository.FeedItem(m)
		if a.itemCursor >= len(a.items) {
			a.itemCursor = 0
		}
	case notesMsg:
		a.notes = []repository.Note(m)
		if a.noteCursor >= len(a.notes) {
			a.noteCursor = 0
		}
	case bookmarksMsg:
		a.bookmarks = []repository.Bookmark(m)
		if a.bookmarkCursor >= len(a.bookmarks) {
			a.bookmarkCursor = 0
		}
	case logsMsg:
		a.logRows = []repository.LogEntry(m)
		a.logScroll = 0

	case refreshDoneMsg:
		a.waiting = false
		a.status = m.Result.Summary()
		return a, tea.Batch(a.loadFeeds(), a.loadFeedItems())
	case assistantReplyMsg:
		a.waiting = false
		a.chat = append(a.chat, llm.AssistantMessage(string(m)))
	case assistantStatusMsg:
		a.assistantUp = bool(m)
		a.assistantSeen = true
	case termStartedMsg:
		a.termSession = m.session
		a.termErr = ""
		return a, a.termTick()
	case termTickMsg:
		if a.state != viewTerminal || a.termSession == nil {
			return a, nil
		}
		select {
		case <-a.termSession.Done():
			if err := a.termSession.Err(); err != nil {
				a.termErr = err.Error()
			}
			a.termSession.Close()
			a.termSession = nil
			a.status = "shell exited"
			return a, nil
		default:
		}
		return a, a.termTick()

	case statusMsg:
		a.waiting = false
		a.status = string(m)
	case errMsg:
		a.waiting = false
		a.status = "error: " + m.Error()
		a.logger.Error().Err(m.error).Msg("ui action failed")
	}
	return a, nil
}

func (a *App) termDims() (cols, rows int) {
	cols = a.width - 2
	rows = a.height - 4
	if cols < 20 {
		cols = 80
	}
	if rows < 5 {
		rows = 24
	}
	return cols, rows
}

func (a *App) termTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return termTickMsg(t)
	})
}

// Close releases background resources before the program exits.
func (a *App) Close() {
	if a.termSession != nil {
		a.termSession.Close()
		a.termSession = nil
	}
}

func (a *App) selectedFeedID() int64 {
	if a.feedIndex < 0 || a.feedIndex >= len(a.feeds) {
		return 0
	}
	return a.feeds[a.feedIndex].ID
}

func (a *App) feedTitle(id int64) string {
	for _, f := range a.feeds {
		if f.ID == id {
			return f.Title
		}
	}
	return "?"
}

// messages
type feedsMsg []repository.Feed

type feedItemsMsg []repository.FeedItem

type notesMsg []repository.Note

type bookmarksMsg []repository.Bookmark

type logsMsg []repository.LogEntry

type statusMsg string

type errMsg struct{ error }

type refreshDoneMsg struct {
	Result service.RefreshResult
}

type assistantReplyMsg string

type assistantStatusMsg bool

type termStartedMsg struct {
	session *term.Session
}

type termTickMsg time.Time
