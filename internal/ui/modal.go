package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trove/internal/validate"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// renderModal centers modal content over the full terminal.
func renderModal(theme Theme, width, height int, content string, modalWidth int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks the user to confirm a destructive or binding action
// before the command fires. Declining closes the modal without issuing
// anything.
type confirmModal struct {
	title  string
	body   string
	action tea.Cmd
}

func newConfirmModal(title, body string, action tea.Cmd) confirmModal {
	return confirmModal{title: title, body: body, action: action}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm), keyMsg.String() == "y":
		return c, c.action, true
	case key.Matches(keyMsg, keys.Escape), keyMsg.String() == "n":
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter/y: Confirm   Esc/n: Cancel"))

	return renderModal(theme, width, height, b.String(), 50)
}

// composeModal collects a message body for the item owner. Validation
// runs locally before the command is built so an over-long draft never
// reaches the wire.
type composeModal struct {
	title string
	body  textarea.Model
	err   string
	build func(text string) tea.Cmd
}

func newComposeModal(title, placeholder string, build func(text string) tea.Cmd) composeModal {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = validate.MessageMaxLen
	ta.SetWidth(46)
	ta.SetHeight(5)
	ta.Focus()
	return composeModal{title: title, body: ta, build: build}
}

func (c composeModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return c, nil, true
		case key.Matches(keyMsg, keys.Submit):
			text := strings.TrimSpace(c.body.Value())
			if err := validate.Message(text); err != nil {
				c.err = err.Error()
				return c, nil, false
			}
			return c, c.build(text), true
		}
	}
	var cmd tea.Cmd
	c.body, cmd = c.body.Update(msg)
	return c, cmd, false
}

func (c composeModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 46)))
	b.WriteString("\n\n")
	b.WriteString(c.body.View())
	b.WriteString("\n")
	if c.err != "" {
		b.WriteString(styles.DangerText.Render(c.err))
		b.WriteString("\n")
	}
	remaining := validate.MessageMaxLen - len([]rune(c.body.Value()))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d characters left", remaining)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Ctrl+S: Send   Esc: Cancel"))

	return renderModal(theme, width, height, b.String(), 54)
}
