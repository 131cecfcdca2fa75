package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
)

// loginRouteDelay gives the session cookie time to settle before the
// next view fetches with it.
const loginRouteDelay = 500 * time.Millisecond

type loginState struct {
	email    textinput.Model
	password textinput.Model
	focusIdx int
	pending  bool
	spin     spinner.Model
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 36

	return loginState{
		email:    email,
		password: password,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

type loginResultMsg struct {
	user *api.User
	err  error
}

func loginCmd(ctx context.Context, client api.Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := client.Login(ctx, api.Credentials{Email: email, Password: password})
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.pending {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		m.login.focusCycle()
		return m, nil

	case "enter":
		email := strings.TrimSpace(m.login.email.Value())
		password := m.login.password.Value()
		if email == "" || password == "" {
			m.pushToast(toastWarning, "Email and password are required")
			return m, nil
		}
		m.login.pending = true
		return m, tea.Batch(
			loginCmd(m.ctx, m.client, email, password),
			m.login.spin.Tick,
		)

	case "ctrl+r":
		return m.navigate(RouteRegister)
	}

	var cmd tea.Cmd
	if m.login.focusIdx == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

// handleLoginResult surfaces the server message on failure and routes
// by role after a short delay on success.
func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.pending = false
	if msg.err != nil {
		m.pushToast(toastError, serverOr(msg.err, "Login failed"))
		return m, nil
	}

	m.user = msg.user
	m.sess.Set(msg.user)
	m.pushToast(toastSuccess, "Welcome back, "+msg.user.Name)

	target := RouteHome
	if msg.user.IsAdmin() {
		target = RouteAdmin
	}
	return m, navigateAfterCmd(loginRouteDelay, target)
}

func (s *loginState) focusCycle() {
	if s.focusIdx == 0 {
		s.focusIdx = 1
		s.email.Blur()
		s.password.Focus()
	} else {
		s.focusIdx = 0
		s.password.Blur()
		s.email.Focus()
	}
}

func (s loginState) update(msg tea.Msg) (loginState, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.email, cmd = s.email.Update(msg)
	cmds = append(cmds, cmd)
	s.password, cmd = s.password.Update(msg)
	cmds = append(cmds, cmd)
	if s.pending {
		s.spin, cmd = s.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(styles.Logo.Render("trove"))
	b.WriteString(styles.MutedText.Render("  lost & found"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Email", m.login.focusIdx == 0))
	b.WriteString(m.login.email.View())
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Password", m.login.focusIdx == 1))
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	if m.login.pending {
		b.WriteString("  ")
		b.WriteString(m.login.spin.View())
		b.WriteString(styles.MutedText.Render(" Signing in..."))
		b.WriteString("\n\n")
	}

	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("Enter: Sign in   Tab: Next field   Ctrl+R: Create an account"))
	b.WriteString("\n")
	return b.String()
}

// fieldLabel renders a fixed-width form label, accented when focused.
func fieldLabel(styles Styles, label string, focused bool) string {
	label = padRight(label+":", 14)
	if focused {
		return styles.AccentText.Render(label)
	}
	return styles.MutedText.Render(label)
}
