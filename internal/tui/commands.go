package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drydock-app/drydock/internal/config"
	"github.com/drydock-app/drydock/internal/llm"
	"github.com/drydock-app/drydock/internal/term"
)

func (a *App) loadFeeds() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Feeds.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return feedsMsg(list)
	}
}

func (a *App) loadFeedItems() tea.Cmd {
	feedID := a.selectedFeedID()
	limit := a.cfg.Feeds.PageSize
	return func() tea.Msg {
		if feedID == 0 {
			list, err := a.repos.Items.Latest(a.ctx, limit)
			if err != nil {
				return errMsg{err}
			}
			return feedItemsMsg(list)
		}
		list, err := a.repos.Items.ListForFeed(a.ctx, feedID, limit)
		if err != nil {
			return errMsg{err}
		}
		return feedItemsMsg(list)
	}
}

func (a *App) loadNotes() tea.Cmd {
	query := a.searchInput.Value()
	return func() tea.Msg {
		list, err := a.services.Notes.Search(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return notesMsg(list)
	}
}

func (a *App) loadBookmarks() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Bookmarks.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return bookmarksMsg(list)
	}
}

func (a *App) loadLogs() tea.Cmd {
	query := a.filterInput.Value()
	return func() tea.Msg {
		list, err := a.services.Logs.Search(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return logsMsg(list)
	}
}

func (a *App) subscribeCmd(url string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			feed, added, err := a.services.Feeds.Subscribe(a.ctx, url, "")
			if err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("subscribed to %s (%d items)", feed.Title, added))
		},
		a.loadFeeds(),
		a.loadFeedItems(),
	)
}

func (a *App) refreshFeedsCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := a.services.Feeds.RefreshAll(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return refreshDoneMsg{Result: res}
	}
}

func (a *App) deleteFeedCmd(id int64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Feeds.Unsubscribe(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("feed removed")
		},
		a.loadFeeds(),
		a.loadFeedItems(),
	)
}

func (a *App) clearFeedItemsCmd(id int64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Feeds.ClearItems(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("feed items cleared")
		},
		a.loadFeedItems(),
	)
}

func (a *App) openLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(link) == "" {
			return statusMsg("item has no link")
		}
		if err := a.services.Bookmarks.Open(link); err != nil {
			return errMsg{err}
		}
		return statusMsg("opened " + link)
	}
}

func (a *App) createNoteCmd(title, details string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.services.Notes.Create(a.ctx, title, details); err != nil {
				return errMsg{err}
			}
			return statusMsg("note created")
		},
		a.loadNotes(),
	)
}

func (a *App) updateNoteCmd(id int64, title, details string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Notes.Update(a.ctx, id, title, details); err != nil {
				return errMsg{err}
			}
			return statusMsg("note updated")
		},
		a.loadNotes(),
	)
}

func (a *App) deleteNoteCmd(id int64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Notes.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("note deleted")
		},
		a.loadNotes(),
	)
}

func (a *App) addBookmarkCmd(name, location string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.services.Bookmarks.Add(a.ctx, name, location); err != nil {
				return errMsg{err}
			}
			return statusMsg("bookmark added")
		},
		a.loadBookmarks(),
	)
}

func (a *App) editBookmarkCmd(id int64, name, location string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Bookmarks.Edit(a.ctx, id, name, location); err != nil {
				return errMsg{err}
			}
			return statusMsg("bookmark updated")
		},
		a.loadBookmarks(),
	)
}

func (a *App) deleteBookmarkCmd(id int64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Bookmarks.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("bookmark deleted")
		},
		a.loadBookmarks(),
	)
}

func (a *App) sendChatCmd() tea.Cmd {
	conversation := make([]llm.Message, len(a.chat))
	copy(conversation, a.chat)
	return func() tea.Msg {
		reply, err := a.services.Assistant.Send(a.ctx, conversation)
		if err != nil {
			return errMsg{err}
		}
		return assistantReplyMsg(reply)
	}
}

func (a *App) checkAssistantCmd() tea.Cmd {
	return func() tea.Msg {
		return assistantStatusMsg(a.services.Assistant.Status(a.ctx))
	}
}

func (a *App) startTerminalCmd() tea.Cmd {
	shell := a.cfg.Terminal.Shell
	cols, rows := a.termDims()
	return func() tea.Msg {
		session, err := term.StartSession(shell, cols, rows)
		if err != nil {
			return errMsg{fmt.Errorf("start shell %s: %w", shell, err)}
		}
		return termStartedMsg{session: session}
	}
}

// saveConfigCmd persists a snapshot of the config. The model copy is already
// updated by the time this runs, so the closure touches no App state.
func (a *App) saveConfigCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("setting saved (restart to apply)")
	}
}
