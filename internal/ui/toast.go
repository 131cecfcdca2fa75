package ui

import (
	"strings"
	"time"
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

const toastLifetime = 4 * time.Second

// toast is a transient notification rendered under the header.
type toast struct {
	level   toastLevel
	text    string
	expires time.Time
}

func newToast(level toastLevel, text string) toast {
	return toast{level: level, text: text, expires: time.Now().Add(toastLifetime)}
}

// pushToast appends a notification, keeping at most five on screen.
func (m *Model) pushToast(level toastLevel, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	m.toasts = append(m.toasts, newToast(level, text))
	if len(m.toasts) > 5 {
		m.toasts = m.toasts[len(m.toasts)-5:]
	}
}

// pruneToasts drops expired notifications. Called from the UI tick.
func (m *Model) pruneToasts(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// renderToasts renders active notifications, one per line.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder
	for _, t := range m.toasts {
		var line string
		switch t.level {
		case toastSuccess:
			line = styles.SuccessText.Render("✓ " + t.text)
		case toastWarning:
			line = styles.WarningText.Render("! " + t.text)
		case toastError:
			line = styles.DangerText.Render("✗ " + t.text)
		default:
			line = styles.InfoText.Render("• " + t.text)
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
