package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/policy"
	"trove/internal/session"
)

const (
	adminTableItems = iota
	adminTableClaims
	adminTableUsers
	adminTableFeedback
	adminTableCount
)

type adminState struct {
	dash    *api.AdminDashboard
	loading bool

	table    int
	selected [adminTableCount]int
}

func newAdminState() adminState {
	return adminState{loading: true}
}

type adminDashboardMsg struct {
	dash *api.AdminDashboard
	err  error
}

type adminDeniedMsg struct{}

// adminGateCmd verifies an ADMIN session before any admin data is
// requested. A failed gate never issues the aggregate fetch.
func adminGateCmd(ctx context.Context, sess *session.Cache, client api.Service) tea.Cmd {
	return func() tea.Msg {
		user := sess.Current(ctx)
		if !policy.RequireAdmin(user) {
			return adminDeniedMsg{}
		}
		dash, err := client.AdminDashboard(ctx)
		return adminDashboardMsg{dash: dash, err: err}
	}
}

func fetchAdminDashboardCmd(ctx context.Context, client api.Service) tea.Cmd {
	return func() tea.Msg {
		dash, err := client.AdminDashboard(ctx)
		return adminDashboardMsg{dash: dash, err: err}
	}
}

type deleteResultMsg struct {
	kind    string
	message string
	err     error
}

func deleteCmd(ctx context.Context, kind string, id int64, del func(context.Context, int64) (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := del(ctx, id)
		return deleteResultMsg{kind: kind, message: message, err: err}
	}
}

func (m Model) handleAdminDenied(adminDeniedMsg) (tea.Model, tea.Cmd) {
	m.pushToast(toastError, "Access denied: admin role required")
	return m.navigate(RouteLogin)
}

func (m Model) handleAdminDashboard(msg adminDashboardMsg) (tea.Model, tea.Cmd) {
	m.admin.loading = false
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			m.pushToast(toastError, "Session expired. Sign in again.")
			m.sess.Invalidate()
			m.user = nil
			return m.navigate(RouteLogin)
		}
		m.pushToast(toastError, serverOr(msg.err, "Could not load the admin dashboard"))
		return m, nil
	}
	m.admin.dash = msg.dash
	return m, nil
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.admin.table = (m.admin.table + 1) % adminTableCount
		return m, nil

	case "shift+tab":
		m.admin.table = (m.admin.table - 1 + adminTableCount) % adminTableCount
		return m, nil

	case "j", "down", "k", "up", "g", "home", "G", "end":
		count := m.adminTableLen(m.admin.table)
		m.admin.selected[m.admin.table] = moveSelection(m.admin.selected[m.admin.table], count, msg.String())
		return m, nil

	case "x":
		return m.deleteSelected()

	case "ctrl+r":
		m.admin.loading = true
		return m, fetchAdminDashboardCmd(m.ctx, m.client)

	case "esc":
		return m.navigate(RouteHome)
	}
	return m, nil
}

// deleteSelected opens the confirmation dialog for the highlighted
// row. Nothing is sent until the user confirms.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	dash := m.admin.dash
	if dash == nil {
		return m, nil
	}

	table := m.admin.table
	idx := clampSelection(m.admin.selected[table], m.adminTableLen(table))

	switch table {
	case adminTableItems:
		if len(dash.Items) == 0 {
			return m, nil
		}
		item := dash.Items[idx]
		body := fmt.Sprintf("Delete item %q reported by %s?", item.Name, item.CreatorName)
		m.modal = newConfirmModal("Delete Item", body,
			deleteCmd(m.ctx, "item", item.ID, m.client.DeleteItem))

	case adminTableClaims:
		if len(dash.Claims) == 0 {
			return m, nil
		}
		claim := dash.Claims[idx]
		body := fmt.Sprintf("Delete %s's claim on %q?", claim.ClaimantName, claim.ItemName)
		m.modal = newConfirmModal("Delete Claim", body,
			deleteCmd(m.ctx, "claim", claim.ID, m.client.DeleteClaim))

	case adminTableUsers:
		if len(dash.Users) == 0 {
			return m, nil
		}
		user := dash.Users[idx]
		if !policy.CanDeleteUser(user) {
			m.pushToast(toastInfo, "Admin accounts are protected")
			return m, nil
		}
		body := fmt.Sprintf("Delete user %s (%s)?", user.Name, user.Email)
		m.modal = newConfirmModal("Delete User", body,
			deleteCmd(m.ctx, "user", user.ID, m.client.DeleteUser))

	case adminTableFeedback:
		if len(dash.Feedback) == 0 {
			return m, nil
		}
		fb := dash.Feedback[idx]
		body := fmt.Sprintf("Delete feedback from %s?", fb.UserName)
		m.modal = newConfirmModal("Delete Feedback", body,
			deleteCmd(m.ctx, "feedback", fb.ID, m.client.DeleteFeedback))
	}
	return m, nil
}

// handleDeleteResult refetches the whole aggregate on success; the
// server stays authoritative over what remains.
func (m Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleActionError(msg.err, "Delete failed")
	}
	m.pushToast(toastSuccess, defaultText(msg.message, "Deleted "+msg.kind))
	m.admin.loading = true
	return m, fetchAdminDashboardCmd(m.ctx, m.client)
}

func (m Model) adminTableLen(table int) int {
	if m.admin.dash == nil {
		return 0
	}
	switch table {
	case adminTableItems:
		return len(m.admin.dash.Items)
	case adminTableClaims:
		return len(m.admin.dash.Claims)
	case adminTableUsers:
		return len(m.admin.dash.Users)
	case adminTableFeedback:
		return len(m.admin.dash.Feedback)
	}
	return 0
}

func (m Model) renderAdmin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.admin.loading {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render("Loading admin dashboard..."))
		b.WriteString("\n")
		return b.String()
	}
	dash := m.admin.dash
	if dash == nil {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render("Admin dashboard unavailable. Press ctrl+r to retry."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n  ")
	stats := fmt.Sprintf("Items: %d   Claims: %d   Users: %d   Feedback: %d",
		dash.Stats.TotalItems, dash.Stats.TotalClaims, dash.Stats.TotalUsers, dash.Stats.TotalFeedback)
	b.WriteString(styles.InfoText.Render(stats))
	b.WriteString("\n\n")

	// Items
	b.WriteString(m.adminTitle(styles, "Items", adminTableItems))
	itemCols := []tableColumn{{"NAME", 20}, {"STATUS", 8}, {"LOCATION", 16}, {"BY", 14}, {"REPORTED", 12}}
	itemRows := make([][]string, 0, len(dash.Items))
	for _, item := range dash.Items {
		itemRows = append(itemRows, []string{
			item.Name, string(item.Status), item.Location, item.CreatorName, formatDate(item.ParsedCreatedAt()),
		})
	}
	b.WriteString(indent(renderTable(styles, itemCols, itemRows, m.adminSelection(adminTableItems), "No items.")))
	b.WriteString("\n")

	// Claims
	b.WriteString(m.adminTitle(styles, "Claims", adminTableClaims))
	claimCols := []tableColumn{{"ITEM", 20}, {"CLAIMANT", 16}, {"EMAIL", 22}, {"CLAIMED", 18}}
	claimRows := make([][]string, 0, len(dash.Claims))
	for _, claim := range dash.Claims {
		claimRows = append(claimRows, []string{
			claim.ItemName, claim.ClaimantName, claim.ClaimantEmail, formatDateTime(claim.ParsedClaimedAt()),
		})
	}
	b.WriteString(indent(renderTable(styles, claimCols, claimRows, m.adminSelection(adminTableClaims), "No claims.")))
	b.WriteString("\n")

	// Users
	b.WriteString(m.adminTitle(styles, "Users", adminTableUsers))
	userCols := []tableColumn{{"NAME", 18}, {"EMAIL", 26}, {"ROLE", 6}, {"JOINED", 12}, {"", 10}}
	userRows := make([][]string, 0, len(dash.Users))
	for _, user := range dash.Users {
		note := ternary(policy.CanDeleteUser(user), "", "Protected")
		userRows = append(userRows, []string{
			user.Name, user.Email, string(user.Role), formatDate(user.ParsedCreatedAt()), note,
		})
	}
	b.WriteString(indent(renderTable(styles, userCols, userRows, m.adminSelection(adminTableUsers), "No users.")))
	b.WriteString("\n")

	// Feedback
	b.WriteString(m.adminTitle(styles, "Feedback", adminTableFeedback))
	fbCols := []tableColumn{{"FROM", 16}, {"FEEDBACK", 44}, {"SUBMITTED", 18}}
	fbRows := make([][]string, 0, len(dash.Feedback))
	for _, fb := range dash.Feedback {
		fbRows = append(fbRows, []string{
			fb.UserName, firstLine(fb.FeedbackText), formatDateTime(fb.ParsedSubmittedAt()),
		})
	}
	b.WriteString(indent(renderTable(styles, fbCols, fbRows, m.adminSelection(adminTableFeedback), "No feedback.")))

	return b.String()
}

func (m Model) adminTitle(styles Styles, title string, table int) string {
	if m.admin.table == table {
		return "  " + styles.AccentText.Bold(true).Render("▸ "+title) + "\n"
	}
	return "  " + styles.MutedText.Bold(true).Render("  "+title) + "\n"
}

func (m Model) adminSelection(table int) int {
	if m.admin.table != table {
		return -1
	}
	return clampSelection(m.admin.selected[table], m.adminTableLen(table))
}
