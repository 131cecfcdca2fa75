// Package session holds the process-wide identity cache. Every view
// needs the current user and role; caching one identity fetch behind a
// TTL avoids a redundant round trip per view while explicit invalidation
// on login, logout, and session expiry keeps it honest.
package session

import (
	"context"
	"sync"
	"time"

	"trove/internal/api"
)

// Identity is the subset of the API the cache depends on.
type Identity interface {
	Me(ctx context.Context) (*api.User, error)
}

// DefaultTTL is how long a resolved identity is trusted before the next
// Current call re-fetches it.
const DefaultTTL = time.Minute

// Cache memoizes the current identity. Absence of a session is a normal
// state: a failed identity fetch resolves to anonymous (nil user), never
// to an error the caller must handle.
type Cache struct {
	mu      sync.Mutex
	api     Identity
	ttl     time.Duration
	user    *api.User
	fetched time.Time
	known   bool

	now func() time.Time // test hook
}

// NewCache builds a Cache over the given identity source. A zero ttl
// uses DefaultTTL.
func NewCache(identity Identity, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{api: identity, ttl: ttl, now: time.Now}
}

// Current returns the cached identity when fresh, otherwise fetches it.
// A nil result means no authenticated session.
func (c *Cache) Current(ctx context.Context) *api.User {
	c.mu.Lock()
	if c.known && c.now().Sub(c.fetched) < c.ttl {
		user := cloneUser(c.user)
		c.mu.Unlock()
		return user
	}
	c.mu.Unlock()

	// Fetch outside the lock so a slow request never blocks readers.
	user, err := c.api.Me(ctx)
	if err != nil {
		user = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = cloneUser(user)
	c.fetched = c.now()
	c.known = true
	return cloneUser(c.user)
}

// Set records a freshly authenticated identity, as returned by login or
// registration.
func (c *Cache) Set(user *api.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = cloneUser(user)
	c.fetched = c.now()
	c.known = true
}

// Invalidate discards the cached identity. The next Current call hits
// the identity endpoint again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.known = false
}

func cloneUser(u *api.User) *api.User {
	if u == nil {
		return nil
	}
	dup := *u
	return &dup
}
