package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/validate"
)

// registerRouteDelay leaves the success notice on screen before the
// login view replaces it.
const registerRouteDelay = 2 * time.Second

type registerState struct {
	inputs   [4]textinput.Model // name, email, password, confirm
	focusIdx int
	pending  bool
	spin     spinner.Model
}

const (
	regFieldName = iota
	regFieldEmail
	regFieldPassword
	regFieldConfirm
)

func newRegisterState() registerState {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = validate.NameMaxLen
	name.Width = 36
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 36

	password := textinput.New()
	password.Placeholder = "min 8 chars, mixed case, digit, symbol"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 36

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 128
	confirm.Width = 36

	return registerState{
		inputs: [4]textinput.Model{name, email, password, confirm},
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

type registerResultMsg struct {
	err error
}

func registerCmd(ctx context.Context, client api.Service, reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		_, err := client.Register(ctx, reg)
		return registerResultMsg{err: err}
	}
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.register.pending {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.navigate(RouteLogin)

	case "tab", "down":
		m.register.focusField((m.register.focusIdx + 1) % len(m.register.inputs))
		return m, nil

	case "shift+tab", "up":
		m.register.focusField((m.register.focusIdx - 1 + len(m.register.inputs)) % len(m.register.inputs))
		return m, nil

	case "enter":
		return m.submitRegistration()
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focusIdx], cmd = m.register.inputs[m.register.focusIdx].Update(msg)
	return m, cmd
}

// submitRegistration runs every client-side check before the request
// goes out. Each violated rule is surfaced as its own notice.
func (m Model) submitRegistration() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.register.inputs[regFieldName].Value())
	email := strings.TrimSpace(m.register.inputs[regFieldEmail].Value())
	password := m.register.inputs[regFieldPassword].Value()
	confirm := m.register.inputs[regFieldConfirm].Value()

	failed := false
	if err := validate.Name(name); err != nil {
		m.pushToast(toastWarning, err.Error())
		failed = true
	}
	if email == "" {
		m.pushToast(toastWarning, "Email is required")
		failed = true
	}
	if err := validate.Password(password); err != nil {
		m.pushToast(toastWarning, err.Error())
		failed = true
	}
	if err := validate.Confirmation(password, confirm); err != nil {
		m.pushToast(toastWarning, err.Error())
		failed = true
	}
	if failed {
		return m, nil
	}

	m.register.pending = true
	reg := api.Registration{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}
	return m, tea.Batch(
		registerCmd(m.ctx, m.client, reg),
		m.register.spin.Tick,
	)
}

// handleRegisterResult surfaces every field-level server error
// individually; success routes back to sign-in after a pause.
func (m Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	m.register.pending = false
	if msg.err != nil {
		if fields := api.FieldErrors(msg.err); len(fields) > 0 {
			for _, text := range fields {
				m.pushToast(toastError, text)
			}
			return m, nil
		}
		m.pushToast(toastError, serverOr(msg.err, "Registration failed"))
		return m, nil
	}

	m.pushToast(toastSuccess, "Account created. Sign in to continue.")
	return m, navigateAfterCmd(registerRouteDelay, RouteLogin)
}

func (s *registerState) focusField(idx int) {
	s.inputs[s.focusIdx].Blur()
	s.focusIdx = idx
	s.inputs[s.focusIdx].Focus()
}

func (s registerState) update(msg tea.Msg) (registerState, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range s.inputs {
		s.inputs[i], cmd = s.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	if s.pending {
		s.spin, cmd = s.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (m Model) renderRegister() string {
	styles := m.theme.Styles()
	labels := []string{"Name", "Email", "Password", "Confirm"}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(styles.Logo.Render("trove"))
	b.WriteString(styles.MutedText.Render("  create an account"))
	b.WriteString("\n\n")

	for i, label := range labels {
		b.WriteString("  ")
		b.WriteString(fieldLabel(styles, label, m.register.focusIdx == i))
		b.WriteString(m.register.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.register.pending {
		b.WriteString("  ")
		b.WriteString(m.register.spin.View())
		b.WriteString(styles.MutedText.Render(" Creating account..."))
		b.WriteString("\n\n")
	}

	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("Enter: Register   Tab: Next field   Esc: Back to sign in"))
	b.WriteString("\n")
	return b.String()
}
