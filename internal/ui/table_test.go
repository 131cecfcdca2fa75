package ui

import (
	"strings"
	"testing"
)

func TestMoveSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		count    int
		key      string
		want     int
	}{
		{"down", 0, 5, "j", 1},
		{"down at bottom stays", 4, 5, "j", 4},
		{"up", 3, 5, "k", 2},
		{"up at top stays", 0, 5, "up", 0},
		{"top", 3, 5, "g", 0},
		{"bottom", 0, 5, "G", 4},
		{"end alias", 1, 5, "end", 4},
		{"empty list", 2, 0, "j", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moveSelection(tt.selected, tt.count, tt.key); got != tt.want {
				t.Fatalf("moveSelection(%d, %d, %q) = %d, want %d",
					tt.selected, tt.count, tt.key, got, tt.want)
			}
		})
	}
}

func TestClampSelection(t *testing.T) {
	if got := clampSelection(7, 3); got != 2 {
		t.Fatalf("clampSelection(7, 3) = %d, want 2", got)
	}
	if got := clampSelection(-1, 3); got != 0 {
		t.Fatalf("clampSelection(-1, 3) = %d, want 0", got)
	}
	if got := clampSelection(1, 0); got != 0 {
		t.Fatalf("clampSelection(1, 0) = %d, want 0", got)
	}
}

func TestRenderTable_EmptyPlaceholder(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	cols := []tableColumn{{"NAME", 10}, {"STATUS", 8}}

	out := renderTable(styles, cols, nil, -1, "Nothing here.")
	if !strings.Contains(out, "Nothing here.") {
		t.Fatalf("empty table output missing placeholder:\n%s", out)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "STATUS") {
		t.Fatalf("empty table output missing header:\n%s", out)
	}
}

func TestRenderTable_TruncatesLongCells(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	cols := []tableColumn{{"NAME", 8}}
	rows := [][]string{{"a very long item name"}}

	out := renderTable(styles, cols, rows, -1, "")
	if !strings.Contains(out, "a ver...") {
		t.Fatalf("long cell not truncated to column width:\n%s", out)
	}
	if strings.Contains(out, "a very long item name") {
		t.Fatalf("long cell rendered untruncated:\n%s", out)
	}
}
