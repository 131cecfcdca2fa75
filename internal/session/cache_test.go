package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"trove/internal/api"
)

type fakeIdentity struct {
	user  *api.User
	err   error
	calls int
}

func (f *fakeIdentity) Me(context.Context) (*api.User, error) {
	f.calls++
	return f.user, f.err
}

func TestCurrent_CachesWithinTTL(t *testing.T) {
	fake := &fakeIdentity{user: &api.User{ID: 1, Name: "Ada", Role: api.RoleUser}}
	c := NewCache(fake, time.Minute)

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	u := c.Current(context.Background())
	if u == nil || u.ID != 1 {
		t.Fatalf("Current() = %v, want user 1", u)
	}

	now = now.Add(30 * time.Second)
	_ = c.Current(context.Background())
	if fake.calls != 1 {
		t.Fatalf("Me calls = %d, want 1 (cache hit within TTL)", fake.calls)
	}
}

func TestCurrent_RefetchesAfterTTL(t *testing.T) {
	fake := &fakeIdentity{user: &api.User{ID: 1}}
	c := NewCache(fake, time.Minute)

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Current(context.Background())
	now = now.Add(61 * time.Second)
	_ = c.Current(context.Background())
	if fake.calls != 2 {
		t.Fatalf("Me calls = %d, want 2 (TTL expired)", fake.calls)
	}
}

func TestCurrent_FailureResolvesToAnonymous(t *testing.T) {
	fake := &fakeIdentity{err: errors.New("network down")}
	c := NewCache(fake, time.Minute)

	if u := c.Current(context.Background()); u != nil {
		t.Fatalf("Current() = %v, want nil on fetch failure", u)
	}
}

func TestSet_SkipsNextFetch(t *testing.T) {
	fake := &fakeIdentity{user: &api.User{ID: 2}}
	c := NewCache(fake, time.Minute)

	c.Set(&api.User{ID: 9, Name: "Root", Role: api.RoleAdmin})
	u := c.Current(context.Background())
	if u == nil || u.ID != 9 {
		t.Fatalf("Current() = %v, want the identity recorded by Set", u)
	}
	if fake.calls != 0 {
		t.Fatalf("Me calls = %d, want 0 after Set", fake.calls)
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	fake := &fakeIdentity{user: &api.User{ID: 1}}
	c := NewCache(fake, time.Minute)

	_ = c.Current(context.Background())
	c.Invalidate()
	_ = c.Current(context.Background())
	if fake.calls != 2 {
		t.Fatalf("Me calls = %d, want 2 after Invalidate", fake.calls)
	}
}

func TestCurrent_ReturnsClone(t *testing.T) {
	fake := &fakeIdentity{user: &api.User{ID: 1, Name: "Ada"}}
	c := NewCache(fake, time.Minute)

	u := c.Current(context.Background())
	u.Name = "mutated"

	again := c.Current(context.Background())
	if again.Name != "Ada" {
		t.Fatalf("cached identity mutated through returned pointer: %q", again.Name)
	}
}
