package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drydock-app/drydock/internal/llm"
)

var tabs = []struct {
	state appState
	label string
}{
	{viewHome, "1 Home"},
	{viewFeeds, "2 Feeds"},
	{viewNotes, "3 Notes"},
	{viewBookmarks, "4 Bookmarks"},
	{viewAssistant, "5 Assistant"},
	{viewTerminal, "6 Terminal"},
	{viewLogs, "7 Logs"},
	{viewSettings, "8 Settings"},
}

func (a *App) View() string {
	body := ""
	switch a.state {
	case viewFeeds:
		body = a.renderFeeds()
	case viewNotes:
		body = a.renderNotes()
	case viewBookmarks:
		body = a.renderBookmarks()
	case viewAssistant:
		body = a.renderAssistant()
	case viewTerminal:
		// the terminal pane draws its own chrome and fills the window
		body = a.renderTerminal()
		if a.status != "" {
			body += "\n" + dimStyle.Render(a.status)
		}
		return body
	case viewLogs:
		body = a.renderLogs()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderHome()
	}

	out := a.renderTabs() + "\n\n" + body
	if a.modal != modalNone {
		out += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		style := dimStyle
		if strings.HasPrefix(a.status, "error:") {
			style = errorStyle
		}
		out += "\n\n" + style.Render(a.status)
	}
	return out
}

func (a *App) renderTabs() string {
	var parts []string
	for _, t := range tabs {
		if t.state == a.state {
			parts = append(parts, activeTabStyle.Render(t.label))
		} else {
			parts = append(parts, tabStyle.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderHome() string {
	out := titleStyle.Render("⚓ Welcome to "+a.cfg.App.Name) + "\n\n"
	out += dimStyle.Render("Version "+a.cfg.App.Version) + "\n\n"
	out += "Feeds, notes, bookmarks, an AI assistant and a shell, all in one place.\n\n"
	out += footerStyle.Render("[2-8] switch view  [q] quit")
	return out
}

func (a *App) renderFeeds() string {
	out := titleStyle.Render("Feeds") + "\n"

	selector := []string{}
	if a.feedIndex == -1 {
		selector = append(selector, selectedStyle.Render(" All "))
	} else {
		selector = append(selector, mutedStyle.Render(" All "))
	}
	for i, f := range a.feeds {
		label := " " + f.Title + " "
		if i == a.feedIndex {
			selector = append(selector, selectedStyle.Render(label))
		} else {
			selector = append(selector, mutedStyle.Render(label))
		}
	}
	out += strings.Join(selector, "|") + "\n\n"

	if len(a.items) == 0 {
		out += mutedStyle.Render("no items yet - [a] add a feed, [r] refresh") + "\n"
	}
	for i, item := range a.items {
		line := fmt.Sprintf("%s  %s", item.PubDate.Format("Jan 02 15:04"), item.Title)
		if a.feedIndex == -1 {
			line += dimStyle.Render("  (" + a.feedTitle(item.FeedID) + ")")
		}
		if i == a.itemCursor {
			out += selectedStyle.Render("▶ "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}

	if a.waiting {
		out += "\n" + a.spin.View() + " working..."
	}
	out += "\n" + footerStyle.Render("[←/→] feed  [↑/↓] item  [enter] open  [a] add  [m] manage  [r] refresh  [q] quit")
	return out
}

func (a *App) renderNotes() string {
	out := titleStyle.Render("Notes") + "\n"

	if a.searching || a.searchInput.Value() != "" {
		out += "search: " + a.searchInput.View() + "\n"
	}
	out += "\n"

	if len(a.notes) == 0 {
		out += mutedStyle.Render("no notes - [a] create one") + "\n"
	}
	for i, n := range a.notes {
		stamp := n.CreatedAt.Format("Jan 02 2006")
		if n.UpdatedAt != nil {
			stamp = "edited " + n.UpdatedAt.Format("Jan 02 2006")
		}
		line := fmt.Sprintf("%-40s  %s", truncate(n.Title, 40), dimStyle.Render(stamp))
		if i == a.noteCursor {
			out += selectedStyle.Render("▶ "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}

	out += "\n" + footerStyle.Render("[enter] view  [a] new  [e] edit  [d] delete  [/] search  [q] quit")
	return out
}

func (a *App) renderBookmarks() string {
	out := titleStyle.Render("Bookmarks") + "\n\n"

	if len(a.bookmarks) == 0 {
		out += mutedStyle.Render("no bookmarks - [a] add one") + "\n"
	}
	for i, b := range a.bookmarks {
		line := fmt.Sprintf("%-30s  %s", truncate(b.Name, 30), dimStyle.Render(truncate(b.Location, 60)))
		if i == a.bookmarkCursor {
			out += selectedStyle.Render("▶ "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}

	out += "\n" + footerStyle.Render("[enter] open  [a] add  [e] edit  [d] delete  [q] quit")
	return out
}

func (a *App) renderAssistant() string {
	badge := mutedStyle.Render("● checking")
	if a.assistantSeen {
		if a.assistantUp {
			badge = successStyle.Render("● online")
		} else {
			badge = errorStyle.Render("● offline")
		}
	}
	out := titleStyle.Render("Assistant") + "  " + badge + "  " + dimStyle.Render(a.cfg.Assistant.Model) + "\n\n"

	wrap := lipgloss.NewStyle().Width(chatWidth(a.width))
	if len(a.chat) == 0 {
		out += mutedStyle.Render("start a conversation below") + "\n"
	}
	for _, msg := range a.chat {
		prefix := userMsgStyle.Render("You")
		if msg.Role == llm.RoleAssistant {
			prefix = assistantMsgStyle.Render("Assistant")
		}
		out += prefix + "\n" + wrap.Render(msg.Content) + "\n\n"
	}
	if a.waiting {
		out += a.spin.View() + " thinking...\n\n"
	}

	out += "> " + a.chatInput.View() + "\n"
	out += footerStyle.Render("[enter] send  [ctrl+l] clear  [ctrl+r] recheck  [esc] back")
	return out
}

func chatWidth(w int) int {
	if w <= 0 {
		return 72
	}
	w -= 6
	if w < 30 {
		return 30
	}
	if w > 100 {
		return 100
	}
	return w
}

func (a *App) renderLogs() string {
	out := titleStyle.Render("Logs") + "\n"
	if a.filtering || a.filterInput.Value() != "" {
		out += "filter: " + a.filterInput.View() + "\n"
	}
	out += "\n"

	if len(a.logRows) == 0 {
		out += mutedStyle.Render("no log entries") + "\n"
	}
	visible := a.height - 8
	if visible < 5 {
		visible = 20
	}
	end := a.logScroll + visible
	if end > len(a.logRows) {
		end = len(a.logRows)
	}
	for _, row := range a.logRows[a.logScroll:end] {
		out += fmt.Sprintf("%s  %s  %s\n",
			dimStyle.Render(row.Timestamp.UTC().Format("2006-01-02 15:04:05")),
			levelStyle(row.Level).Render(fmt.Sprintf("%-7s", row.Level)),
			row.Message)
	}

	out += "\n" + footerStyle.Render(fmt.Sprintf("%d entries  [↑/↓] scroll  [/] filter  [r] reload  [q] quit", len(a.logRows)))
	return out
}

func (a *App) renderSettings() string {
	out := titleStyle.Render("Settings") + "\n\n"
	for i, f := range settingsFields {
		line := fmt.Sprintf("%-18s %s", f.label, a.settingValue(f.field))
		if i == a.settingsCursor {
			out += selectedStyle.Render("▶ "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}
	out += "\n"
	out += dimStyle.Render("Database: "+a.cfg.Database.Path) + "\n"
	out += dimStyle.Render("Version:  "+a.cfg.App.Version) + "\n"
	out += "\n" + footerStyle.Render("[enter] edit  [esc] back  [q] quit")
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAddFeed:
		return modalStyle.Render(titleStyle.Render("Add feed") + "\n\n" +
			a.urlInput.View() + "\n\n" +
			footerStyle.Render("[enter] subscribe  [esc] cancel"))
	case modalManageFeeds:
		body := titleStyle.Render("Manage feeds") + "\n\n"
		if len(a.feeds) == 0 {
			body += mutedStyle.Render("no feeds") + "\n"
		}
		for i, f := range a.feeds {
			line := fmt.Sprintf("%-30s  %s", truncate(f.Title, 30), dimStyle.Render(truncate(f.URL, 50)))
			if i == a.mgrCursor {
				body += selectedStyle.Render("▶ "+line) + "\n"
			} else {
				body += "  " + line + "\n"
			}
		}
		body += "\n" + footerStyle.Render("[a] add  [c] clear items  [d] delete  [esc] close")
		return modalStyle.Render(body)
	case modalNoteEdit:
		header := "New note"
		if a.editingNoteID != 0 {
			header = "Edit note"
		}
		return modalStyle.Render(titleStyle.Render(header) + "\n\n" +
			"Title:   " + a.titleInput.View() + "\n\n" +
			a.detailsInput.View() + "\n\n" +
			footerStyle.Render("[tab] switch field  [ctrl+s] save  [esc] cancel"))
	case modalNoteView:
		title := ""
		if n := a.noteByID(a.editingNoteID); n != nil {
			title = n.Title
		}
		return modalStyle.Render(titleStyle.Render(title) + "\n\n" +
			a.noteView.View() + "\n\n" +
			footerStyle.Render("[↑/↓] scroll  [e] edit  [esc] close"))
	case modalBookmarkEdit:
		header := "Add bookmark"
		if a.editingBookmarkID != 0 {
			header = "Edit bookmark"
		}
		return modalStyle.Render(titleStyle.Render(header) + "\n\n" +
			"Name:     " + a.nameInput.View() + "\n" +
			"Location: " + a.locationInput.View() + "\n\n" +
			footerStyle.Render("[tab] switch field  [enter] save  [esc] cancel"))
	case modalEditSetting:
		label := ""
		for _, f := range settingsFields {
			if f.field == a.settingField {
				label = f.label
			}
		}
		return modalStyle.Render(titleStyle.Render(label) + "\n\n" +
			a.settingInput.View() + "\n\n" +
			footerStyle.Render("[enter] save  [esc] cancel"))
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
