package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drydock-app/drydock/internal/database/repository"
	"github.com/drydock-app/drydock/internal/llm"
)

func (a *App) handleGlobalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.Close()
		return a, tea.Quit
	case "1":
		a.state = viewHome
	case "2":
		a.state = viewFeeds
	case "3":
		a.state = viewNotes
	case "4":
		a.state = viewBookmarks
	case "5":
		return a.enterAssistant()
	case "6":
		return a.enterTerminal()
	case "7":
		a.state = viewLogs
		return a, a.loadLogs()
	case "8":
		a.state = viewSettings
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "left", "h":
		if a.state == viewFeeds && a.feedIndex > -1 {
			a.feedIndex--
			a.itemCursor = 0
			return a, a.loadFeedItems()
		}
	case "right", "l":
		if a.state == viewFeeds && a.feedIndex < len(a.feeds)-1 {
			a.feedIndex++
			a.itemCursor = 0
			return a, a.loadFeedItems()
		}
	case "a":
		switch a.state {
		case viewFeeds:
			a.modal = modalAddFeed
			a.urlInput.SetValue("")
			a.urlInput.Focus()
		case viewNotes:
			a.openNoteEditor(nil)
		case viewBookmarks:
			a.openBookmarkEditor(nil)
		}
	case "m":
		if a.state == viewFeeds {
			a.modal = modalManageFeeds
			a.mgrCursor = 0
		}
	case "r":
		switch a.state {
		case viewFeeds:
			if len(a.feeds) == 0 {
				a.status = "no feeds to refresh"
				return a, nil
			}
			a.waiting = true
			a.status = "refreshing..."
			return a, tea.Batch(a.spin.Tick, a.refreshFeedsCmd())
		case viewLogs:
			return a, a.loadLogs()
		}
	case "e":
		switch a.state {
		case viewNotes:
			if n := a.selectedNote(); n != nil {
				a.openNoteEditor(n)
			}
		case viewBookmarks:
			if b := a.selectedBookmark(); b != nil {
				a.openBookmarkEditor(b)
			}
		}
	case "d", "x":
		switch a.state {
		case viewNotes:
			if n := a.selectedNote(); n != nil {
				return a, a.deleteNoteCmd(n.ID)
			}
		case viewBookmarks:
			if b := a.selectedBookmark(); b != nil {
				return a, a.deleteBookmarkCmd(b.ID)
			}
		}
	case "v":
		if a.state == viewNotes {
			if n := a.selectedNote(); n != nil {
				a.openNoteView(n)
			}
		}
	case "/":
		switch a.state {
		case viewNotes:
			a.searching = true
			a.searchInput.Focus()
		case viewLogs:
			a.filtering = true
			a.filterInput.Focus()
		}
	case "enter", "o":
		switch a.state {
		case viewFeeds:
			if a.itemCursor < len(a.items) {
				return a, a.openLinkCmd(a.items[a.itemCursor].Link)
			}
		case viewNotes:
			if m.String() == "enter" {
				if n := a.selectedNote(); n != nil {
					a.openNoteView(n)
				}
			}
		case viewBookmarks:
			if b := a.selectedBookmark(); b != nil {
				return a, a.openLinkCmd(b.Location)
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	clamp := func(cur, n int) int {
		cur += delta
		if cur < 0 {
			cur = 0
		}
		if n == 0 {
			return 0
		}
		if cur > n-1 {
			cur = n - 1
		}
		return cur
	}
	switch a.state {
	case viewFeeds:
		a.itemCursor = clamp(a.itemCursor, len(a.items))
	case viewNotes:
		a.noteCursor = clamp(a.noteCursor, len(a.notes))
	case viewBookmarks:
		a.bookmarkCursor = clamp(a.bookmarkCursor, len(a.bookmarks))
	case viewLogs:
		a.logScroll = clamp(a.logScroll, len(a.logRows))
	}
}

func (a *App) enterAssistant() (tea.Model, tea.Cmd) {
	a.state = viewAssistant
	a.chatInput.Focus()
	return a, a.checkAssistantCmd()
}

func (a *App) enterTerminal() (tea.Model, tea.Cmd) {
	a.state = viewTerminal
	if a.termSession != nil {
		return a, a.termTick()
	}
	a.termErr = ""
	a.status = ""
	return a, a.startTerminalCmd()
}

func (a *App) selectedNote() *repository.Note {
	if a.noteCursor >= len(a.notes) {
		return nil
	}
	return &a.notes[a.noteCursor]
}

func (a *App) selectedBookmark() *repository.Bookmark {
	if a.bookmarkCursor >= len(a.bookmarks) {
		return nil
	}
	return &a.bookmarks[a.bookmarkCursor]
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		return a, a.loadNotes()
	case tea.KeyEnter:
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	return a, tea.Batch(cmd, a.loadNotes())
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.filterInput.Blur()
		a.filterInput.SetValue("")
		return a, a.loadLogs()
	case tea.KeyEnter:
		a.filtering = false
		a.filterInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	return a, tea.Batch(cmd, a.loadLogs())
}

func (a *App) handleAssistantKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		a.Close()
		return a, tea.Quit
	case "esc":
		a.state = viewHome
		a.chatInput.Blur()
		return a, nil
	case "ctrl+l":
		a.chat = nil
		a.status = "conversation cleared"
		return a, nil
	case "ctrl+r":
		a.status = "checking assistant..."
		return a, a.checkAssistantCmd()
	case "enter":
		text := strings.TrimSpace(a.chatInput.Value())
		if text == "" || a.waiting {
			return a, nil
		}
		a.chat = append(a.chat, llm.UserMessage(text))
		a.chatInput.SetValue("")
		a.waiting = true
		a.status = ""
		return a, tea.Batch(a.spin.Tick, a.sendChatCmd())
	}
	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(m)
	return a, cmd
}

var settingsFields = []struct {
	field settingField
	label string
}{
	{settingAssistantURL, "Assistant URL"},
	{settingAssistantModel, "Assistant model"},
	{settingFeedUserAgent, "Feed user agent"},
	{settingShell, "Terminal shell"},
	{settingLogFile, "Log file"},
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.Close()
		return a, tea.Quit
	case "esc", "1":
		a.state = viewHome
		a.status = ""
	case "2":
		a.state = viewFeeds
	case "3":
		a.state = viewNotes
	case "4":
		a.state = viewBookmarks
	case "5":
		return a.enterAssistant()
	case "6":
		return a.enterTerminal()
	case "7":
		a.state = viewLogs
		return a, a.loadLogs()
	case "up", "k":
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "down", "j":
		if a.settingsCursor < len(settingsFields)-1 {
			a.settingsCursor++
		}
	case "enter":
		f := settingsFields[a.settingsCursor]
		a.settingField = f.field
		a.settingInput.SetValue(a.settingValue(f.field))
		a.settingInput.Focus()
		a.modal = modalEditSetting
	}
	return a, nil
}

// applySetting runs in Update so the View goroutine never sees a half-written
// config.
func (a *App) applySetting(f settingField, value string) {
	switch f {
	case settingAssistantURL:
		a.cfg.Assistant.URL = value
	case settingAssistantModel:
		a.cfg.Assistant.Model = value
	case settingFeedUserAgent:
		a.cfg.Feeds.UserAgent = value
	case settingShell:
		a.cfg.Terminal.Shell = value
	case settingLogFile:
		a.cfg.Logs.FilePath = value
	}
}

func (a *App) settingValue(f settingField) string {
	switch f {
	case settingAssistantURL:
		return a.cfg.Assistant.URL
	case settingAssistantModel:
		return a.cfg.Assistant.Model
	case settingFeedUserAgent:
		return a.cfg.Feeds.UserAgent
	case settingShell:
		return a.cfg.Terminal.Shell
	case settingLogFile:
		return a.cfg.Logs.FilePath
	}
	return ""
}

func (a *App) openNoteEditor(n *repository.Note) {
	a.editingNoteID = 0
	a.titleInput.SetValue("")
	a.detailsInput.SetValue("")
	if n != nil {
		a.editingNoteID = n.ID
		a.titleInput.SetValue(n.Title)
		a.detailsInput.SetValue(n.Details)
	}
	a.noteFocusDetails = false
	a.titleInput.Focus()
	a.detailsInput.Blur()
	a.modal = modalNoteEdit
}

func (a *App) openNoteView(n *repository.Note) {
	a.noteView.SetContent(n.Details)
	a.noteView.GotoTop()
	a.editingNoteID = n.ID
	a.modal = modalNoteView
}

func (a *App) openBookmarkEditor(b *repository.Bookmark) {
	a.editingBookmarkID = 0
	a.nameInput.SetValue("")
	a.locationInput.SetValue("")
	if b != nil {
		a.editingBookmarkID = b.ID
		a.nameInput.SetValue(b.Name)
		a.locationInput.SetValue(b.Location)
	}
	a.nameInput.Focus()
	a.locationInput.Blur()
	a.modal = modalBookmarkEdit
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalAddFeed:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.urlInput.Blur()
			return a, nil
		case tea.KeyEnter:
			url := strings.TrimSpace(a.urlInput.Value())
			if url == "" {
				a.status = "enter a feed URL"
				return a, nil
			}
			a.modal = modalNone
			a.urlInput.Blur()
			a.waiting = true
			a.status = "fetching feed..."
			return a, tea.Batch(a.spin.Tick, a.subscribeCmd(url))
		}
		var cmd tea.Cmd
		a.urlInput, cmd = a.urlInput.Update(m)
		return a, cmd

	case modalManageFeeds:
		switch m.String() {
		case "esc", "q":
			a.modal = modalNone
		case "up", "k":
			if a.mgrCursor > 0 {
				a.mgrCursor--
			}
		case "down", "j":
			if a.mgrCursor < len(a.feeds)-1 {
				a.mgrCursor++
			}
		case "a":
			a.modal = modalAddFeed
			a.urlInput.SetValue("")
			a.urlInput.Focus()
		case "c":
			if a.mgrCursor < len(a.feeds) {
				return a, a.clearFeedItemsCmd(a.feeds[a.mgrCursor].ID)
			}
		case "d", "x", "backspace", "delete":
			if a.mgrCursor < len(a.feeds) {
				return a, a.deleteFeedCmd(a.feeds[a.mgrCursor].ID)
			}
		}
		return a, nil

	case modalNoteEdit:
		switch m.String() {
		case "esc":
			a.closeNoteEditor()
			return a, nil
		case "tab", "shift+tab":
			a.noteFocusDetails = !a.noteFocusDetails
			if a.noteFocusDetails {
				a.titleInput.Blur()
				return a, a.detailsInput.Focus()
			}
			a.detailsInput.Blur()
			a.titleInput.Focus()
			return a, nil
		case "ctrl+s":
			return a.saveNote()
		case "enter":
			if !a.noteFocusDetails {
				a.noteFocusDetails = true
				a.titleInput.Blur()
				return a, a.detailsInput.Focus()
			}
		}
		var cmd tea.Cmd
		if a.noteFocusDetails {
			a.detailsInput, cmd = a.detailsInput.Update(m)
		} else {
			a.titleInput, cmd = a.titleInput.Update(m)
		}
		return a, cmd

	case modalNoteView:
		switch m.String() {
		case "esc", "q", "enter":
			a.modal = modalNone
			return a, nil
		case "e":
			if n := a.noteByID(a.editingNoteID); n != nil {
				a.openNoteEditor(n)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.noteView, cmd = a.noteView.Update(m)
		return a, cmd

	case modalBookmarkEdit:
		switch m.String() {
		case "esc":
			a.closeBookmarkEditor()
			return a, nil
		case "tab", "shift+tab":
			if a.nameInput.Focused() {
				a.nameInput.Blur()
				a.locationInput.Focus()
			} else {
				a.locationInput.Blur()
				a.nameInput.Focus()
			}
			return a, nil
		case "enter":
			if a.nameInput.Focused() {
				a.nameInput.Blur()
				a.locationInput.Focus()
				return a, nil
			}
			return a.saveBookmark()
		case "ctrl+s":
			return a.saveBookmark()
		}
		var cmd tea.Cmd
		if a.nameInput.Focused() {
			a.nameInput, cmd = a.nameInput.Update(m)
		} else {
			a.locationInput, cmd = a.locationInput.Update(m)
		}
		return a, cmd

	case modalEditSetting:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.settingInput.Blur()
			return a, nil
		case tea.KeyEnter:
			value := strings.TrimSpace(a.settingInput.Value())
			a.modal = modalNone
			a.settingInput.Blur()
			if value == "" {
				a.status = "enter a value"
				return a, nil
			}
			a.applySetting(a.settingField, value)
			return a, a.saveConfigCmd(a.cfg)
		}
		var cmd tea.Cmd
		a.settingInput, cmd = a.settingInput.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) saveNote() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(a.titleInput.Value())
	details := a.detailsInput.Value()
	if title == "" || strings.TrimSpace(details) == "" {
		a.status = "title and details are required"
		return a, nil
	}
	id := a.editingNoteID
	a.closeNoteEditor()
	if id == 0 {
		return a, a.createNoteCmd(title, details)
	}
	return a, a.updateNoteCmd(id, title, details)
}

func (a *App) closeNoteEditor() {
	a.modal = modalNone
	a.titleInput.Blur()
	a.detailsInput.Blur()
	a.editingNoteID = 0
}

func (a *App) saveBookmark() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(a.nameInput.Value())
	location := strings.TrimSpace(a.locationInput.Value())
	if name == "" || location == "" {
		a.status = "name and location are required"
		return a, nil
	}
	id := a.editingBookmarkID
	a.closeBookmarkEditor()
	if id == 0 {
		return a, a.addBookmarkCmd(name, location)
	}
	return a, a.editBookmarkCmd(id, name, location)
}

func (a *App) closeBookmarkEditor() {
	a.modal = modalNone
	a.nameInput.Blur()
	a.locationInput.Blur()
	a.editingBookmarkID = 0
}

func (a *App) noteByID(id int64) *repository.Note {
	for i := range a.notes {
		if a.notes[i].ID == id {
			return &a.notes[i]
		}
	}
	return nil
}
