package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/validate"
)

const (
	homeSectionItems = iota
	homeSectionClaims
	homeSectionMessages
	homeSectionFeedback
)

type homeState struct {
	dash    *api.Dashboard
	loading bool

	section  int
	selected [3]int

	feedback        textarea.Model
	feedbackFocused bool
	feedbackPending bool

	// Replies sent this session, echoed under their message without
	// waiting for a server refetch.
	localReplies map[int64][]localReply
	replyPending map[int64]bool
}

type localReply struct {
	text string
	at   time.Time
}

func newHomeState() homeState {
	feedback := textarea.New()
	feedback.Placeholder = "Tell us how the platform is working for you (10-2000 characters)"
	feedback.CharLimit = validate.FeedbackMaxLen
	feedback.SetWidth(60)
	feedback.SetHeight(3)

	return homeState{
		loading:      true,
		feedback:     feedback,
		localReplies: make(map[int64][]localReply),
		replyPending: make(map[int64]bool),
	}
}

type dashboardMsg struct {
	dash *api.Dashboard
	err  error
}

func fetchDashboardCmd(ctx context.Context, client api.Service) tea.Cmd {
	return func() tea.Msg {
		dash, err := client.Dashboard(ctx)
		return dashboardMsg{dash: dash, err: err}
	}
}

type feedbackResultMsg struct {
	message string
	err     error
}

func feedbackCmd(ctx context.Context, client api.Service, text string) tea.Cmd {
	return func() tea.Msg {
		message, err := client.SubmitFeedback(ctx, text)
		return feedbackResultMsg{message: message, err: err}
	}
}

type replyStartedMsg struct {
	messageID int64
}

type replyResultMsg struct {
	messageID int64
	text      string
	message   string
	err       error
}

func replyCmd(ctx context.Context, client api.Service, out api.OutgoingMessage, messageID int64) tea.Cmd {
	return func() tea.Msg {
		message, err := client.Reply(ctx, out)
		return replyResultMsg{messageID: messageID, text: out.Message, message: message, err: err}
	}
}

// handleDashboard applies the aggregate fetch result. Only auth
// failures force navigation away; everything else degrades in place.
func (m Model) handleDashboard(msg dashboardMsg) (tea.Model, tea.Cmd) {
	m.home.loading = false
	if msg.err != nil {
		if api.IsRateLimited(msg.err) {
			m.pushToast(toastWarning, "Slow down - too many requests")
			return m, nil
		}
		if api.IsAuthError(msg.err) {
			m.pushToast(toastError, "Session expired. Sign in again.")
			m.sess.Invalidate()
			m.user = nil
			return m.navigate(RouteLogin)
		}
		m.pushToast(toastError, serverOr(msg.err, "Could not load your dashboard"))
		return m, nil
	}
	if msg.dash == nil || msg.dash.User == nil {
		m.sess.Invalidate()
		m.user = nil
		return m.navigate(RouteLogin)
	}
	m.home.dash = msg.dash
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.home.feedbackFocused {
		return m.handleFeedbackKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.home.section = (m.home.section + 1) % m.homeSectionCount()
		if m.home.section == homeSectionFeedback {
			m.home.feedbackFocused = true
			return m, tea.Batch(m.home.feedback.Focus(), textarea.Blink)
		}
		return m, nil

	case "shift+tab":
		m.home.section = (m.home.section - 1 + m.homeSectionCount()) % m.homeSectionCount()
		if m.home.section == homeSectionFeedback {
			m.home.feedbackFocused = true
			return m, tea.Batch(m.home.feedback.Focus(), textarea.Blink)
		}
		return m, nil

	case "j", "down", "k", "up", "g", "home", "G", "end":
		if m.home.section < len(m.home.selected) {
			count := m.homeSectionLen(m.home.section)
			m.home.selected[m.home.section] = moveSelection(m.home.selected[m.home.section], count, msg.String())
		}
		return m, nil

	case "r":
		return m.replySelected()

	case "ctrl+r":
		m.home.loading = true
		return m, fetchDashboardCmd(m.ctx, m.client)
	}

	return m, nil
}

func (m Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.home.feedbackFocused = false
		m.home.feedback.Blur()
		m.home.section = homeSectionItems
		return m, nil

	case "ctrl+s":
		if m.home.feedbackPending {
			return m, nil
		}
		text := strings.TrimSpace(m.home.feedback.Value())
		if err := validate.Feedback(text); err != nil {
			m.pushToast(toastWarning, err.Error())
			return m, nil
		}
		m.home.feedbackPending = true
		return m, feedbackCmd(m.ctx, m.client, text)
	}

	var cmd tea.Cmd
	m.home.feedback, cmd = m.home.feedback.Update(msg)
	return m, cmd
}

// handleFeedbackResult clears the input only when the server accepted
// the submission.
func (m Model) handleFeedbackResult(msg feedbackResultMsg) (tea.Model, tea.Cmd) {
	m.home.feedbackPending = false
	if msg.err != nil {
		return m.handleActionError(msg.err, "Feedback not submitted")
	}
	m.home.feedback.Reset()
	m.pushToast(toastSuccess, defaultText(msg.message, "Thanks for the feedback!"))
	return m, nil
}

func (m Model) replySelected() (tea.Model, tea.Cmd) {
	if m.home.section != homeSectionMessages || m.home.dash == nil {
		return m, nil
	}
	messages := m.home.dash.Messages
	if len(messages) == 0 {
		return m, nil
	}
	idx := clampSelection(m.home.selected[homeSectionMessages], len(messages))
	selected := messages[idx]
	if m.home.replyPending[selected.ID] {
		m.pushToast(toastInfo, "Reply already in flight")
		return m, nil
	}

	out := api.OutgoingMessage{ReceiverID: selected.SenderID, ItemID: selected.ItemID}
	title := fmt.Sprintf("Reply to %s about %q", selected.SenderName, selected.ItemName)
	messageID := selected.ID
	ctx, client := m.ctx, m.client
	m.modal = newComposeModal(title, "Type your reply...", func(text string) tea.Cmd {
		out.Message = text
		started := func() tea.Msg { return replyStartedMsg{messageID: messageID} }
		return tea.Batch(started, replyCmd(ctx, client, out, messageID))
	})
	return m, textinput.Blink
}

func (m Model) handleReplyStarted(msg replyStartedMsg) (tea.Model, tea.Cmd) {
	m.home.replyPending[msg.messageID] = true
	return m, nil
}

// handleReplyResult echoes the sent reply under its message so the
// conversation reads correctly before the next aggregate refetch.
func (m Model) handleReplyResult(msg replyResultMsg) (tea.Model, tea.Cmd) {
	delete(m.home.replyPending, msg.messageID)
	if msg.err != nil {
		return m.handleActionError(msg.err, "Reply not sent")
	}
	m.home.localReplies[msg.messageID] = append(m.home.localReplies[msg.messageID], localReply{
		text: msg.text,
		at:   time.Now(),
	})
	m.pushToast(toastSuccess, defaultText(msg.message, "Reply sent"))
	return m, nil
}

// homeSectionCount excludes the feedback editor for admins.
func (m Model) homeSectionCount() int {
	if m.user != nil && m.user.IsAdmin() {
		return 3
	}
	return 4
}

func (m Model) homeSectionLen(section int) int {
	if m.home.dash == nil {
		return 0
	}
	switch section {
	case homeSectionItems:
		return len(m.home.dash.Items)
	case homeSectionClaims:
		return len(m.home.dash.Claims)
	case homeSectionMessages:
		return len(m.home.dash.Messages)
	}
	return 0
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.home.loading {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render("Loading your dashboard..."))
		b.WriteString("\n")
		return b.String()
	}
	dash := m.home.dash
	if dash == nil {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render("Dashboard unavailable. Press ctrl+r to retry."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n  ")
	b.WriteString(styles.Text.Bold(true).Render("Hello, " + dash.User.Name))
	b.WriteString("\n\n")

	// My items
	b.WriteString(m.sectionTitle(styles, "My Items", homeSectionItems, len(dash.Items)))
	itemCols := []tableColumn{{"NAME", 22}, {"STATUS", 8}, {"LOCATION", 18}, {"REPORTED", 12}}
	itemRows := make([][]string, 0, len(dash.Items))
	for _, item := range dash.Items {
		itemRows = append(itemRows, []string{
			item.Name, string(item.Status), item.Location, formatDate(item.ParsedCreatedAt()),
		})
	}
	b.WriteString(indent(renderTable(styles, itemCols, itemRows, m.sectionSelection(homeSectionItems), "You have not reported any items.")))
	b.WriteString("\n")

	// My claims
	b.WriteString(m.sectionTitle(styles, "My Claims", homeSectionClaims, len(dash.Claims)))
	claimCols := []tableColumn{{"ITEM", 22}, {"LOCATION", 18}, {"CLAIMED", 20}}
	claimRows := make([][]string, 0, len(dash.Claims))
	for _, claim := range dash.Claims {
		claimRows = append(claimRows, []string{
			claim.ItemName, claim.Location, formatDateTime(claim.ParsedClaimedAt()),
		})
	}
	b.WriteString(indent(renderTable(styles, claimCols, claimRows, m.sectionSelection(homeSectionClaims), "You have not claimed any items.")))
	b.WriteString("\n")

	// Messages
	b.WriteString(m.sectionTitle(styles, "Messages", homeSectionMessages, len(dash.Messages)))
	b.WriteString(m.renderMessages(styles, dash.Messages))

	// Feedback (hidden for admins)
	if m.user == nil || !m.user.IsAdmin() {
		b.WriteString("\n")
		b.WriteString(m.sectionTitle(styles, "Feedback", homeSectionFeedback, 0))
		b.WriteString(indent(m.home.feedback.View()))
		b.WriteString("\n")
		if m.home.feedbackPending {
			b.WriteString(indent(styles.MutedText.Render("Submitting...")))
		} else if m.home.feedbackFocused {
			b.WriteString(indent(styles.FaintText.Render("Ctrl+S: Submit   Esc: Leave editor")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMessages(styles Styles, messages []api.Message) string {
	if len(messages) == 0 {
		return indent(styles.FaintText.Render("No messages yet.")) + "\n"
	}

	selected := m.sectionSelection(homeSectionMessages)
	var b strings.Builder
	for i, message := range messages {
		line := fmt.Sprintf("%s  %s  %s",
			padRight(message.SenderName, 16),
			padRight(truncate(message.ItemName, 18), 18),
			truncate(firstLine(message.Message), 40),
		)
		if i == selected {
			b.WriteString(indent(styles.Selected.Render(line)))
		} else {
			b.WriteString(indent(styles.Text.Render(line)))
		}
		b.WriteString("\n")
		b.WriteString(indent(styles.FaintText.Render(formatDateTime(message.ParsedSentAt()))))
		b.WriteString("\n")

		for _, echo := range m.home.localReplies[message.ID] {
			b.WriteString(indent(styles.InfoText.Render("  ↳ you: " + truncate(firstLine(echo.text), 50))))
			b.WriteString("\n")
		}
		if m.home.replyPending[message.ID] {
			b.WriteString(indent(styles.MutedText.Render("  ↳ sending...")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) sectionTitle(styles Styles, title string, section, count int) string {
	label := title
	if count > 0 {
		label = fmt.Sprintf("%s (%d)", title, count)
	}
	if m.home.section == section {
		return "  " + styles.AccentText.Bold(true).Render("▸ "+label) + "\n"
	}
	return "  " + styles.MutedText.Bold(true).Render("  "+label) + "\n"
}

func (m Model) sectionSelection(section int) int {
	if m.home.section != section || section >= len(m.home.selected) {
		return -1
	}
	return clampSelection(m.home.selected[section], m.homeSectionLen(section))
}

func indent(block string) string {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
