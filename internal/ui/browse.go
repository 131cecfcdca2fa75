package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/policy"
	"trove/internal/state"
)

type browseState struct {
	snapshot   state.Snapshot
	selected   int
	selectedID int64

	searching bool
	search    textinput.Model
	filter    api.ItemStatus // empty = all

	debounceSeq int
}

func newBrowseSearch() textinput.Model {
	search := textinput.New()
	search.Placeholder = "name, description, location..."
	search.CharLimit = 100
	search.Width = 40
	return search
}

// debounceFiredMsg carries the sequence captured when the timer was
// armed. Only the latest armed timer applies its query.
type debounceFiredMsg struct {
	seq int
}

func debounceCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceFiredMsg{seq: seq}
	})
}

type claimResultMsg struct {
	message string
	err     error
}

func claimCmd(ctx context.Context, client api.Service, itemID int64) tea.Cmd {
	return func() tea.Msg {
		message, err := client.ClaimItem(ctx, itemID)
		return claimResultMsg{message: message, err: err}
	}
}

type messageResultMsg struct {
	message string
	err     error
}

func sendMessageCmd(ctx context.Context, client api.Service, out api.OutgoingMessage) tea.Cmd {
	return func() tea.Msg {
		message, err := client.SendMessage(ctx, out)
		return messageResultMsg{message: message, err: err}
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.browse.searching {
		return m.handleBrowseSearchKey(msg)
	}

	switch msg.String() {
	case "/":
		m.browse.searching = true
		return m, m.browse.search.Focus()

	case "f":
		m.browse.filter = nextStatusFilter(m.browse.filter)
		return m, m.armDebounce()

	case "ctrl+r":
		if m.feed != nil {
			m.feed.Kick()
		}
		return m, fetchSnapshotCmd(m.store)

	case "j", "down", "k", "up", "g", "home", "G", "end":
		items := m.browse.snapshot.Items
		m.browse.selected = moveSelection(m.browse.selected, len(items), msg.String())
		if len(items) > 0 {
			m.browse.selectedID = items[m.browse.selected].ID
		}
		return m, nil

	case "c":
		return m.claimSelected()

	case "m":
		return m.messageSelected()
	}

	return m, nil
}

func (m Model) handleBrowseSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.browse.searching = false
		m.browse.search.Blur()
		return m, nil
	}

	before := m.browse.search.Value()
	var cmd tea.Cmd
	m.browse.search, cmd = m.browse.search.Update(msg)
	if m.browse.search.Value() != before {
		return m, tea.Batch(cmd, m.armDebounce())
	}
	return m, cmd
}

// armDebounce bumps the sequence and schedules the quiescence timer.
// Earlier timers still fire but carry a stale sequence and are ignored.
func (m *Model) armDebounce() tea.Cmd {
	m.browse.debounceSeq++
	return debounceCmd(m.debounce, m.browse.debounceSeq)
}

// handleDebounceFired applies the pending query once input has been
// quiet for the full interval.
func (m Model) handleDebounceFired(msg debounceFiredMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.browse.debounceSeq {
		return m, nil
	}
	query := api.ItemQuery{
		Search: strings.TrimSpace(m.browse.search.Value()),
		Status: m.browse.filter,
	}
	m.store.SetQuery(query)
	if m.feed != nil {
		m.feed.Kick()
	}
	return m, nil
}

func (m Model) claimSelected() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	if !policy.Allows(*item, m.user, policy.ActionClaim) {
		m.pushToast(toastInfo, claimBlockedNotice(*item, m.user))
		return m, nil
	}
	body := fmt.Sprintf("Claim %q found at %s?", item.Name, item.Location)
	m.modal = newConfirmModal("Claim Item", body, claimCmd(m.ctx, m.client, item.ID))
	return m, nil
}

func (m Model) messageSelected() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	if !policy.Allows(*item, m.user, policy.ActionMessage) {
		m.pushToast(toastInfo, claimBlockedNotice(*item, m.user))
		return m, nil
	}
	out := api.OutgoingMessage{ReceiverID: item.CreatedBy, ItemID: item.ID}
	title := fmt.Sprintf("Message %s about %q", item.CreatorName, item.Name)
	m.modal = newComposeModal(title, "I think this is mine...", func(text string) tea.Cmd {
		out.Message = text
		return sendMessageCmd(m.ctx, m.client, out)
	})
	return m, textinput.Blink
}

func (m Model) handleClaimResult(msg claimResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleActionError(msg.err, "Claim failed")
	}
	m.pushToast(toastSuccess, defaultText(msg.message, "Claim submitted"))
	if m.feed != nil {
		m.feed.Kick()
	}
	return m, fetchSnapshotCmd(m.store)
}

func (m Model) handleMessageResult(msg messageResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleActionError(msg.err, "Message not sent")
	}
	m.pushToast(toastSuccess, defaultText(msg.message, "Message sent"))
	return m, nil
}

// handleActionError applies the shared status-code policy: auth
// failures force navigation to sign-in, rate limits only notify.
func (m Model) handleActionError(err error, fallback string) (tea.Model, tea.Cmd) {
	if api.IsRateLimited(err) {
		m.pushToast(toastWarning, "Slow down - too many requests")
		return m, nil
	}
	if api.IsAuthError(err) {
		m.pushToast(toastError, "Session expired. Sign in again.")
		m.sess.Invalidate()
		m.user = nil
		return m.navigate(RouteLogin)
	}
	m.pushToast(toastError, serverOr(err, fallback))
	return m, nil
}

func (m Model) selectedItem() *api.Item {
	items := m.browse.snapshot.Items
	if len(items) == 0 {
		return nil
	}
	idx := clampSelection(m.browse.selected, len(items))
	return &items[idx]
}

func (s *browseState) syncSelection() {
	items := s.snapshot.Items
	if len(items) == 0 {
		s.selected = 0
		s.selectedID = 0
		return
	}
	if s.selectedID != 0 {
		for i, item := range items {
			if item.ID == s.selectedID {
				s.selected = i
				return
			}
		}
	}
	s.selected = clampSelection(s.selected, len(items))
	s.selectedID = items[s.selected].ID
}

func nextStatusFilter(current api.ItemStatus) api.ItemStatus {
	switch current {
	case "":
		return api.StatusLost
	case api.StatusLost:
		return api.StatusFound
	case api.StatusFound:
		return api.StatusClaimed
	default:
		return ""
	}
}

func statusFilterLabel(status api.ItemStatus) string {
	if status == "" {
		return "All"
	}
	return string(status)
}

// claimBlockedNotice explains why no action applies to an item.
func claimBlockedNotice(item api.Item, viewer *api.User) string {
	switch {
	case item.Status == api.StatusClaimed:
		return "This item has already been claimed"
	case policy.OwnedBy(item, viewer):
		return "You reported this item"
	case item.Status == api.StatusLost:
		return "Lost items can only be messaged about"
	default:
		return "No actions available for this item"
	}
}

func defaultText(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func (m Model) renderBrowse() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n  ")
	if m.browse.searching {
		b.WriteString(styles.AccentText.Render("Search: "))
		b.WriteString(m.browse.search.View())
	} else {
		b.WriteString(styles.MutedText.Render("Search: "))
		b.WriteString(styles.Text.Render(defaultText(m.browse.search.Value(), "(press / to search)")))
	}
	b.WriteString("    ")
	b.WriteString(styles.MutedText.Render("Filter: "))
	b.WriteString(styles.AccentText.Render(statusFilterLabel(m.browse.filter)))
	b.WriteString("\n\n")

	snap := m.browse.snapshot
	if !snap.Loaded {
		b.WriteString(styles.MutedText.Render("  Loading items..."))
		b.WriteString("\n")
		return b.String()
	}
	if snap.LastError != nil {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("Feed unreachable, showing last known items"))
		b.WriteString("\n\n")
	}

	cols := []tableColumn{
		{"NAME", 22},
		{"STATUS", 8},
		{"LOCATION", 18},
		{"REPORTED", 12},
		{"BY", 16},
	}
	rows := make([][]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, []string{
			item.Name,
			string(item.Status),
			item.Location,
			formatDate(item.ParsedCreatedAt()),
			item.CreatorName,
		})
	}
	b.WriteString(renderTable(styles, cols, rows, m.browse.selected, "  No items match."))

	if item := m.selectedItem(); item != nil {
		b.WriteString("\n  ")
		b.WriteString(styles.StatusStyle(string(item.Status)).Render(string(item.Status)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Bold(true).Render(item.Name))
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render(truncate(firstLine(item.Description), 70)))
		b.WriteString("\n  ")
		b.WriteString(styles.FaintText.Render(m.itemActionHint(*item)))
		b.WriteString("\n")
	}
	return b.String()
}

// itemActionHint renders the action footer for the selected item. What
// is offered depends only on status, ownership, and the viewer.
func (m Model) itemActionHint(item api.Item) string {
	actions := policy.ItemActions(item, m.user)
	if len(actions) == 0 {
		return claimBlockedNotice(item, m.user)
	}
	var hints []string
	for _, action := range actions {
		switch action {
		case policy.ActionClaim:
			hints = append(hints, "c: claim")
		case policy.ActionMessage:
			hints = append(hints, "m: message owner")
		}
	}
	return strings.Join(hints, "   ")
}
