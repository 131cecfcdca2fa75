package policy

import (
	"testing"

	"trove/internal/api"
)

var viewer = &api.User{ID: 7, Name: "Ada", Role: api.RoleUser}

func TestItemActions(t *testing.T) {
	tests := []struct {
		name   string
		item   api.Item
		viewer *api.User
		want   []Action
	}{
		{
			name:   "found item owned by another offers claim and message",
			item:   api.Item{Status: api.StatusFound, CreatedBy: 2},
			viewer: viewer,
			want:   []Action{ActionClaim, ActionMessage},
		},
		{
			name:   "lost item owned by another offers message only",
			item:   api.Item{Status: api.StatusLost, CreatedBy: 2},
			viewer: viewer,
			want:   []Action{ActionMessage},
		},
		{
			name:   "claimed item offers nothing",
			item:   api.Item{Status: api.StatusClaimed, CreatedBy: 2},
			viewer: viewer,
			want:   nil,
		},
		{
			name:   "own found item offers nothing",
			item:   api.Item{Status: api.StatusFound, CreatedBy: 7},
			viewer: viewer,
			want:   nil,
		},
		{
			name:   "own lost item offers nothing",
			item:   api.Item{Status: api.StatusLost, CreatedBy: 7},
			viewer: viewer,
			want:   nil,
		},
		{
			name:   "anonymous viewer sees found actions",
			item:   api.Item{Status: api.StatusFound, CreatedBy: 2},
			viewer: nil,
			want:   []Action{ActionClaim, ActionMessage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemActions(tt.item, tt.viewer)
			if len(got) != len(tt.want) {
				t.Fatalf("ItemActions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ItemActions() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestItemActions_Deterministic(t *testing.T) {
	item := api.Item{Status: api.StatusFound, CreatedBy: 2}
	first := ItemActions(item, viewer)
	for i := 0; i < 10; i++ {
		again := ItemActions(item, viewer)
		if len(again) != len(first) {
			t.Fatalf("ItemActions() varied between calls: %v then %v", first, again)
		}
	}
}

func TestAllows(t *testing.T) {
	found := api.Item{Status: api.StatusFound, CreatedBy: 2}
	lost := api.Item{Status: api.StatusLost, CreatedBy: 2}

	if !Allows(found, viewer, ActionClaim) {
		t.Fatalf("Allows(found, claim) = false, want true")
	}
	if Allows(lost, viewer, ActionClaim) {
		t.Fatalf("Allows(lost, claim) = true, want false")
	}
	if !Allows(lost, viewer, ActionMessage) {
		t.Fatalf("Allows(lost, message) = false, want true")
	}
}

func TestCanDeleteUser(t *testing.T) {
	if CanDeleteUser(api.User{Role: api.RoleAdmin}) {
		t.Fatalf("CanDeleteUser(admin) = true, want false")
	}
	if !CanDeleteUser(api.User{Role: api.RoleUser}) {
		t.Fatalf("CanDeleteUser(user) = false, want true")
	}
}

func TestRequireAdmin(t *testing.T) {
	if RequireAdmin(nil) {
		t.Fatalf("RequireAdmin(nil) = true, want false")
	}
	if RequireAdmin(&api.User{Role: api.RoleUser}) {
		t.Fatalf("RequireAdmin(user) = true, want false")
	}
	if !RequireAdmin(&api.User{Role: api.RoleAdmin}) {
		t.Fatalf("RequireAdmin(admin) = false, want true")
	}
}
