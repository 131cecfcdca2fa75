package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/validate"
)

// reportRouteDelay leaves the success notice on screen before the
// browse view replaces it.
const reportRouteDelay = 2 * time.Second

const (
	reportFieldName = iota
	reportFieldDescription
	reportFieldLocation
	reportFieldStatus
	reportFieldImage
	reportFieldCount
)

type reportState struct {
	name        textinput.Model
	description textarea.Model
	location    textinput.Model
	status      api.ItemStatus
	imagePath   textinput.Model

	image    validate.ImageInfo
	hasImage bool

	focusIdx int
	pending  bool
}

func newReportState() reportState {
	name := textinput.New()
	name.Placeholder = "What is it?"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	description := textarea.New()
	description.Placeholder = "Distinguishing details..."
	description.CharLimit = 2000
	description.SetWidth(40)
	description.SetHeight(3)

	location := textinput.New()
	location.Placeholder = "Where was it lost or found?"
	location.CharLimit = 100
	location.Width = 40

	imagePath := textinput.New()
	imagePath.Placeholder = "/path/to/photo.jpg"
	imagePath.CharLimit = 512
	imagePath.Width = 40

	return reportState{
		name:        name,
		description: description,
		location:    location,
		status:      api.StatusLost,
		imagePath:   imagePath,
	}
}

type createItemResultMsg struct {
	message string
	err     error
}

func createItemCmd(ctx context.Context, client api.Service, item api.NewItem) tea.Cmd {
	return func() tea.Msg {
		message, err := client.CreateItem(ctx, item)
		return createItemResultMsg{message: message, err: err}
	}
}

func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.report.pending {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.navigate(RouteBrowse)

	case "tab":
		return m, m.report.focusField((m.report.focusIdx + 1) % reportFieldCount)

	case "shift+tab":
		return m, m.report.focusField((m.report.focusIdx - 1 + reportFieldCount) % reportFieldCount)

	case "ctrl+x":
		m.report.imagePath.Reset()
		m.report.image = validate.ImageInfo{}
		m.report.hasImage = false
		m.pushToast(toastInfo, "Image cleared")
		return m, nil

	case "ctrl+s":
		return m.submitReport()
	}

	// Status is a toggle, not a text field
	if m.report.focusIdx == reportFieldStatus {
		switch msg.String() {
		case "left", "right", " ", "enter":
			if m.report.status == api.StatusLost {
				m.report.status = api.StatusFound
			} else {
				m.report.status = api.StatusLost
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.report.focusIdx {
	case reportFieldName:
		m.report.name, cmd = m.report.name.Update(msg)
	case reportFieldDescription:
		m.report.description, cmd = m.report.description.Update(msg)
	case reportFieldLocation:
		m.report.location, cmd = m.report.location.Update(msg)
	case reportFieldImage:
		m.report.imagePath, cmd = m.report.imagePath.Update(msg)
		m.report.probeImage()
	}
	return m, cmd
}

// probeImage re-validates the image path as it is typed so the preview
// line tracks the input.
func (s *reportState) probeImage() {
	path := strings.TrimSpace(s.imagePath.Value())
	if path == "" {
		s.image = validate.ImageInfo{}
		s.hasImage = false
		return
	}
	info, err := validate.ImageFile(path)
	if err != nil {
		s.image = validate.ImageInfo{}
		s.hasImage = false
		return
	}
	s.image = info
	s.hasImage = true
}

// submitReport runs the client-side guards, reads the image, and fires
// the multipart upload.
func (m Model) submitReport() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.report.name.Value())
	description := strings.TrimSpace(m.report.description.Value())
	location := strings.TrimSpace(m.report.location.Value())
	imagePath := strings.TrimSpace(m.report.imagePath.Value())

	failed := false
	if name == "" {
		m.pushToast(toastWarning, "Item name is required")
		failed = true
	}
	if description == "" {
		m.pushToast(toastWarning, "Description is required")
		failed = true
	}
	if location == "" {
		m.pushToast(toastWarning, "Location is required")
		failed = true
	}
	if imagePath == "" {
		m.pushToast(toastWarning, "An image of the item is required")
		failed = true
	}
	if failed {
		return m, nil
	}

	info, err := validate.ImageFile(imagePath)
	if err != nil {
		m.pushToast(toastWarning, err.Error())
		return m, nil
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		m.pushToast(toastError, "Could not read image: "+err.Error())
		return m, nil
	}

	m.report.pending = true
	item := api.NewItem{
		Name:        name,
		Description: description,
		Location:    location,
		Status:      m.report.status,
		ImageName:   info.Name,
		ImageData:   data,
	}
	return m, createItemCmd(m.ctx, m.client, item)
}

// handleCreateItemResult routes to the browse view after a pause so
// the new item is visible in the refreshed feed.
func (m Model) handleCreateItemResult(msg createItemResultMsg) (tea.Model, tea.Cmd) {
	m.report.pending = false
	if msg.err != nil {
		if fields := api.FieldErrors(msg.err); len(fields) > 0 {
			for _, text := range fields {
				m.pushToast(toastError, text)
			}
			return m, nil
		}
		return m.handleActionError(msg.err, "Item not reported")
	}

	m.pushToast(toastSuccess, defaultText(msg.message, "Item reported"))
	if m.feed != nil {
		m.feed.Kick()
	}
	return m, navigateAfterCmd(reportRouteDelay, RouteBrowse)
}

func (s *reportState) focusField(idx int) tea.Cmd {
	s.name.Blur()
	s.description.Blur()
	s.location.Blur()
	s.imagePath.Blur()

	s.focusIdx = idx
	switch idx {
	case reportFieldName:
		return s.name.Focus()
	case reportFieldDescription:
		return s.description.Focus()
	case reportFieldLocation:
		return s.location.Focus()
	case reportFieldImage:
		return s.imagePath.Focus()
	}
	return nil
}

func (s reportState) update(msg tea.Msg) (reportState, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	cmds = append(cmds, cmd)
	s.description, cmd = s.description.Update(msg)
	cmds = append(cmds, cmd)
	s.location, cmd = s.location.Update(msg)
	cmds = append(cmds, cmd)
	s.imagePath, cmd = s.imagePath.Update(msg)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

func (m Model) renderReport() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(styles.Text.Bold(true).Render("Report an Item"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Name", m.report.focusIdx == reportFieldName))
	b.WriteString(m.report.name.View())
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Description", m.report.focusIdx == reportFieldDescription))
	b.WriteString("\n")
	b.WriteString(indent(m.report.description.View()))
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Location", m.report.focusIdx == reportFieldLocation))
	b.WriteString(m.report.location.View())
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Status", m.report.focusIdx == reportFieldStatus))
	lost := ternary(m.report.status == api.StatusLost, "[x] LOST", "[ ] LOST")
	found := ternary(m.report.status == api.StatusFound, "[x] FOUND", "[ ] FOUND")
	if m.report.focusIdx == reportFieldStatus {
		b.WriteString(styles.AccentText.Render(lost + "   " + found))
	} else {
		b.WriteString(styles.Text.Render(lost + "   " + found))
	}
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Image", m.report.focusIdx == reportFieldImage))
	b.WriteString(m.report.imagePath.View())
	b.WriteString("\n")
	if m.report.hasImage {
		preview := fmt.Sprintf("%s  %s  %.1f KiB",
			m.report.image.Name, m.report.image.MIME, float64(m.report.image.Size)/1024)
		b.WriteString(indent(styles.SuccessText.Render("✓ " + preview)))
	} else if strings.TrimSpace(m.report.imagePath.Value()) != "" {
		b.WriteString(indent(styles.WarningText.Render("Not a usable image (max 5 MiB, image types only)")))
	}
	b.WriteString("\n")

	if m.report.pending {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("Uploading..."))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(styles.FaintText.Render("Tab: Next field   Ctrl+S: Submit   Ctrl+X: Clear image   Esc: Cancel"))
	b.WriteString("\n")
	return b.String()
}
