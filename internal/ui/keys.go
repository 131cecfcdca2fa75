package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Logout     key.Binding

	// View switching
	ViewHome    key.Binding
	ViewBrowse  key.Binding
	ViewNewItem key.Binding
	ViewAdmin   key.Binding

	// Browse actions
	Search      key.Binding
	CycleFilter key.Binding
	Claim       key.Binding
	Compose     key.Binding
	Refresh     key.Binding

	// List actions
	Reply  key.Binding
	Delete key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Tab    key.Binding

	// Forms
	Confirm    key.Binding
	Submit     key.Binding
	ClearImage key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / back"),
		),
		Logout: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "Sign out"),
		),

		// View switching
		ViewHome: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Dashboard"),
		),
		ViewBrowse: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Browse items"),
		),
		ViewNewItem: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Report item"),
		),
		ViewAdmin: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Admin"),
		),

		// Browse actions
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search items"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle status filter"),
		),
		Claim: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Claim item"),
		),
		Compose: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Message owner"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Refresh now"),
		),

		// List actions
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reply"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field/section"),
		),

		// Forms
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit"),
		),
		ClearImage: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Clear image"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewHome, k.ViewBrowse, k.ViewNewItem, k.ViewAdmin},
		{k.Up, k.Down, k.Top, k.Bottom, k.Tab},
		{k.Search, k.CycleFilter, k.Claim, k.Compose},
		{k.Reply, k.Delete, k.Submit},
		{k.CycleTheme, k.Logout, k.Help, k.Quit},
	}
}
