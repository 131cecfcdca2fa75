package ui

import (
	"testing"

	"trove/internal/api"
)

func TestSearchDebounce_OnlyLatestTimerApplies(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteBrowse
	m.browse.searching = true
	m.browse.search.Focus()

	m, _ = apply(t, m, runeKey("a"))
	m, _ = apply(t, m, runeKey("b"))
	if m.browse.debounceSeq != 2 {
		t.Fatalf("debounceSeq = %d, want 2 after two keystrokes", m.browse.debounceSeq)
	}

	// The first keystroke's timer fires with a stale sequence.
	m, _ = apply(t, m, debounceFiredMsg{seq: 1})
	feed := m.feed.(*fakeFeed)
	if feed.kicks != 0 {
		t.Fatalf("kicks = %d after stale fire, want 0", feed.kicks)
	}
	if _, seq := m.store.CurrentQuery(); seq != 0 {
		t.Fatalf("store seq = %d after stale fire, want untouched", seq)
	}

	m, _ = apply(t, m, debounceFiredMsg{seq: 2})
	query, seq := m.store.CurrentQuery()
	if seq == 0 {
		t.Fatalf("store seq = 0 after latest fire, want bumped")
	}
	if query.Search != "ab" {
		t.Fatalf("query.Search = %q, want %q", query.Search, "ab")
	}
	if feed.kicks != 1 {
		t.Fatalf("kicks = %d after latest fire, want 1", feed.kicks)
	}
}

func TestStatusFilter_CyclesAndDebounces(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteBrowse

	m, _ = apply(t, m, runeKey("f"))
	if m.browse.filter != api.StatusLost {
		t.Fatalf("filter = %q, want LOST after first cycle", m.browse.filter)
	}
	if m.browse.debounceSeq != 1 {
		t.Fatalf("debounceSeq = %d, want filter changes debounced too", m.browse.debounceSeq)
	}

	m, _ = apply(t, m, debounceFiredMsg{seq: 1})
	query, _ := m.store.CurrentQuery()
	if query.Status != api.StatusLost {
		t.Fatalf("query.Status = %q, want LOST", query.Status)
	}
}

func TestNextStatusFilter_FullCycle(t *testing.T) {
	order := []api.ItemStatus{"", api.StatusLost, api.StatusFound, api.StatusClaimed, ""}
	for i := 0; i < len(order)-1; i++ {
		if got := nextStatusFilter(order[i]); got != order[i+1] {
			t.Fatalf("nextStatusFilter(%q) = %q, want %q", order[i], got, order[i+1])
		}
	}
}

func TestClaimBlockedNotice(t *testing.T) {
	viewer := &api.User{ID: 5}
	tests := []struct {
		name string
		item api.Item
		want string
	}{
		{
			name: "already claimed",
			item: api.Item{Status: api.StatusClaimed, CreatedBy: 9},
			want: "This item has already been claimed",
		},
		{
			name: "own item",
			item: api.Item{Status: api.StatusFound, CreatedBy: 5},
			want: "You reported this item",
		},
		{
			name: "lost item",
			item: api.Item{Status: api.StatusLost, CreatedBy: 9},
			want: "Lost items can only be messaged about",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claimBlockedNotice(tt.item, viewer); got != tt.want {
				t.Fatalf("claimBlockedNotice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClaimSelected_BlockedItemNeverOpensModal(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteBrowse
	m.user = &api.User{ID: 5}
	m.browse.snapshot.Loaded = true
	m.browse.snapshot.Items = []api.Item{
		{ID: 1, Name: "Keys", Status: api.StatusClaimed, CreatedBy: 9},
	}

	m, _ = apply(t, m, runeKey("c"))
	if m.modal != nil {
		t.Fatalf("modal opened for a claimed item, want blocked notice")
	}
	if got := lastToast(t, m); got.text != "This item has already been claimed" {
		t.Fatalf("toast = %q, want the blocked notice", got.text)
	}
}

func TestClaimSelected_EligibleItemOpensConfirm(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteBrowse
	m.user = &api.User{ID: 5}
	m.browse.snapshot.Loaded = true
	m.browse.snapshot.Items = []api.Item{
		{ID: 1, Name: "Keys", Status: api.StatusFound, CreatedBy: 9, Location: "Library"},
	}

	m, _ = apply(t, m, runeKey("c"))
	if _, ok := m.modal.(confirmModal); !ok {
		t.Fatalf("modal = %T, want confirmModal", m.modal)
	}
}

func TestSyncSelection_FollowsItemAcrossReorder(t *testing.T) {
	s := browseState{selected: 0, selectedID: 2}
	s.snapshot.Items = []api.Item{{ID: 1}, {ID: 3}, {ID: 2}}

	s.syncSelection()
	if s.selected != 2 {
		t.Fatalf("selected = %d, want the row holding item 2", s.selected)
	}

	// The selected item dropped out of the feed: clamp and re-anchor.
	s.snapshot.Items = []api.Item{{ID: 1}}
	s.syncSelection()
	if s.selected != 0 || s.selectedID != 1 {
		t.Fatalf("selected = %d id = %d, want clamped to the only row", s.selected, s.selectedID)
	}
}
