// Package ui provides the terminal user interface for Trove.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's Model/Update/View loop with Lip Gloss
// styling. A single root Model owns the active route, the identity, and
// one state struct per view; keyboard input flows through handleKey,
// which gives modals and focused text inputs first pick before global
// bindings apply.
//
// # Views
//
//   - Login / Register: credential forms with client-side validation
//   - Home: the signed-in user's items, claims, messages, and feedback editor
//   - Browse: the shared item feed with search, status filter, and item actions
//   - Report: the multipart item submission form with image preview
//   - Admin: moderation tables over items, claims, users, and feedback
//
// # Data Flow
//
//  1. A background poller (internal/app) refreshes the item store on an
//     interval; the browse view reads snapshots from it once per second.
//  2. Search and filter edits arm a debounce timer; only the latest
//     timer updates the store query and kicks the poller.
//  3. Every other server interaction is a tea.Cmd that resolves to a
//     typed result message handled by the owning view.
//
// # Key Bindings
//
//   - H/B/R: Dashboard, Browse, Report views
//   - A: Admin view (admin role required)
//   - /: Search the item feed
//   - f: Cycle the status filter
//   - c / m: Claim or message about the selected item
//   - r: Reply to the selected message
//   - x: Delete the selected row (admin)
//   - T: Cycle theme, Q: Sign out, ctrl+c: Quit
package ui
