// Package policy is the single capability evaluator consulted by every
// view. It decides which actions a user may take on a record so the
// rules are never duplicated per view. The remote API remains the sole
// authoritative enforcer; these checks only shape the UI.
package policy

import "trove/internal/api"

// Action is a capability a viewer may exercise on an item.
type Action int

const (
	// ActionClaim asserts ownership of a found item.
	ActionClaim Action = iota
	// ActionMessage starts a conversation with the item's poster.
	ActionMessage
)

// ItemActions returns the actions available to viewer on item. The
// result is a pure function of (status, creator, viewer): claimed items
// and the viewer's own items offer nothing, found items owned by others
// offer claim and message, lost items owned by others offer message only.
func ItemActions(item api.Item, viewer *api.User) []Action {
	if item.Status == api.StatusClaimed {
		return nil
	}
	if viewer != nil && item.CreatedBy == viewer.ID {
		return nil
	}
	switch item.Status {
	case api.StatusFound:
		return []Action{ActionClaim, ActionMessage}
	case api.StatusLost:
		return []Action{ActionMessage}
	default:
		return nil
	}
}

// Allows reports whether action is in the set returned by ItemActions.
func Allows(item api.Item, viewer *api.User, action Action) bool {
	for _, a := range ItemActions(item, viewer) {
		if a == action {
			return true
		}
	}
	return false
}

// OwnedBy reports whether viewer posted the item.
func OwnedBy(item api.Item, viewer *api.User) bool {
	return viewer != nil && item.CreatedBy == viewer.ID
}

// CanDeleteUser reports whether an admin may delete the account. ADMIN
// accounts are protected from the UI entirely.
func CanDeleteUser(u api.User) bool {
	return u.Role != api.RoleAdmin
}

// RequireAdmin reports whether u is an authenticated admin. It gates the
// admin view before any admin data is requested.
func RequireAdmin(u *api.User) bool {
	return u != nil && u.Role == api.RoleAdmin
}
