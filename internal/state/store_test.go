package state

import (
	"errors"
	"testing"
	"time"

	"trove/internal/api"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	seq := s.SetQuery(api.ItemQuery{Search: "wallet"})
	items := []api.Item{{ID: 1, Name: "Wallet"}, {ID: 2, Name: "Keys"}}

	before := time.Now()
	s.Update(seq, items, nil)

	snap := s.Snapshot()
	if !snap.Loaded {
		t.Fatalf("Loaded = false, want true")
	}
	if len(snap.Items) != 2 || snap.Items[0].ID != 1 {
		t.Fatalf("snapshot items = %#v, want 2 items", snap.Items)
	}
	if snap.Query.Search != "wallet" {
		t.Fatalf("Query.Search = %q, want %q", snap.Query.Search, "wallet")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0].ID = 999
	snap2 := s.Snapshot()
	if snap2.Items[0].ID != 1 {
		t.Fatalf("Snapshot should clone items; got id %d want 1", snap2.Items[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	seq := s.SetQuery(api.ItemQuery{})
	s.Update(seq, []api.Item{{ID: 1}}, nil)

	s.Update(seq, nil, errors.New("boom"))

	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("items changed on error: got %#v, want the previous item", snap.Items)
	}
	if snap.LastError == nil {
		t.Fatalf("LastError = nil, want boom")
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestStore_StaleSequenceIsDropped(t *testing.T) {
	var s Store

	oldSeq := s.SetQuery(api.ItemQuery{Search: "a"})
	newSeq := s.SetQuery(api.ItemQuery{Search: "ab"})
	if oldSeq == newSeq {
		t.Fatalf("SetQuery did not bump sequence: %d == %d", oldSeq, newSeq)
	}

	// The response for the abandoned query arrives late.
	s.Update(oldSeq, []api.Item{{ID: 1, Name: "stale"}}, nil)
	snap := s.Snapshot()
	if snap.Loaded {
		t.Fatalf("stale update applied; Loaded = true, want false")
	}

	// The response for the intended query wins.
	s.Update(newSeq, []api.Item{{ID: 2, Name: "fresh"}}, nil)
	snap = s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Name != "fresh" {
		t.Fatalf("items = %#v, want the fresh result only", snap.Items)
	}
}

func TestStore_SetQuerySameValueKeepsSequence(t *testing.T) {
	var s Store

	first := s.SetQuery(api.ItemQuery{Search: "phone"})
	second := s.SetQuery(api.ItemQuery{Search: "phone"})
	if first != second {
		t.Fatalf("identical query bumped sequence: %d then %d", first, second)
	}
}

func TestSnapshot_IsOffline(t *testing.T) {
	snap := Snapshot{ConsecutiveFailures: 1}
	if snap.IsOffline() {
		t.Fatalf("IsOffline() = true after one failure, want false")
	}
	snap.ConsecutiveFailures = 2
	if !snap.IsOffline() {
		t.Fatalf("IsOffline() = false after two failures, want true")
	}
}
