package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type firedMsg struct{}

func fireMarker() tea.Msg { return firedMsg{} }

func TestConfirmModal_ConfirmFiresAction(t *testing.T) {
	keys := DefaultKeyMap()
	modal := newConfirmModal("Claim Item", "Claim it?", fireMarker)

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEnter}, runeKey("y")} {
		_, cmd, closed := modal.Update(msg, keys)
		if !closed {
			t.Fatalf("Update(%q) closed = false, want true", msg.String())
		}
		if cmd == nil {
			t.Fatalf("Update(%q) cmd = nil, want the action", msg.String())
		}
		if _, ok := cmd().(firedMsg); !ok {
			t.Fatalf("Update(%q) cmd produced wrong msg", msg.String())
		}
	}
}

func TestConfirmModal_DeclineClosesSilently(t *testing.T) {
	keys := DefaultKeyMap()
	modal := newConfirmModal("Claim Item", "Claim it?", fireMarker)

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runeKey("n")} {
		_, cmd, closed := modal.Update(msg, keys)
		if !closed {
			t.Fatalf("Update(%q) closed = false, want true", msg.String())
		}
		if cmd != nil {
			t.Fatalf("Update(%q) cmd = non-nil, want no action on decline", msg.String())
		}
	}
}

func TestConfirmModal_OtherKeysKeepItOpen(t *testing.T) {
	keys := DefaultKeyMap()
	modal := newConfirmModal("Claim Item", "Claim it?", fireMarker)

	_, cmd, closed := modal.Update(runeKey("x"), keys)
	if closed || cmd != nil {
		t.Fatalf("unrelated key closed the modal or fired the action")
	}
}

func TestComposeModal_EmptyDraftIsRejectedLocally(t *testing.T) {
	keys := DefaultKeyMap()
	var built bool
	modal := newComposeModal("Message", "...", func(string) tea.Cmd {
		built = true
		return fireMarker
	})

	next, cmd, closed := modal.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys)
	if closed || cmd != nil || built {
		t.Fatalf("empty draft submitted, want local validation failure")
	}
	if next.(composeModal).err == "" {
		t.Fatalf("err = empty, want a validation message shown inline")
	}
}

func TestComposeModal_SubmitBuildsTrimmedText(t *testing.T) {
	keys := DefaultKeyMap()
	var got string
	var modal Modal = newComposeModal("Message", "...", func(text string) tea.Cmd {
		got = text
		return fireMarker
	})

	for _, r := range " I think this is mine " {
		modal, _, _ = modal.Update(runeKey(string(r)), keys)
	}
	_, cmd, closed := modal.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys)
	if !closed || cmd == nil {
		t.Fatalf("valid draft not submitted: closed=%v cmd=%v", closed, cmd)
	}
	if got != "I think this is mine" {
		t.Fatalf("built text = %q, want trimmed draft", got)
	}
}

func TestComposeModal_EscapeCancelsWithoutBuilding(t *testing.T) {
	keys := DefaultKeyMap()
	var built bool
	var modal Modal = newComposeModal("Message", "...", func(string) tea.Cmd {
		built = true
		return fireMarker
	})

	modal, _, _ = modal.Update(runeKey("d"), keys)
	_, cmd, closed := modal.Update(tea.KeyMsg{Type: tea.KeyEsc}, keys)
	if !closed {
		t.Fatalf("closed = false, want true on escape")
	}
	if cmd != nil || built {
		t.Fatalf("escape built or fired the command, want silent cancel")
	}
}
