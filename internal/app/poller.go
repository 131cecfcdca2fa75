package app

import (
	"context"
	"log"
	"time"

	"trove/internal/api"
	"trove/internal/state"
)

const defaultPollInterval = 60 * time.Second

// ItemLister is the slice of the API the poller needs.
type ItemLister interface {
	ListItems(ctx context.Context, query api.ItemQuery) ([]api.Item, error)
}

// Poller refreshes the item store at a fixed cadence. Kick forces an
// immediate refresh ahead of the next tick.
type Poller struct {
	kick chan struct{}
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client ItemLister, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	p := &Poller{kick: make(chan struct{}, 1)}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refresh(ctx, store, client)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-p.kick:
			}
		}
	}()
	return p
}

// Kick requests an immediate refresh. Safe to call from any goroutine;
// kicks coalesce while a refresh is in flight.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func refresh(ctx context.Context, store *state.Store, client ItemLister) {
	query, seq := store.CurrentQuery()
	if seq == 0 {
		seq = store.SetQuery(query)
	}
	items, err := client.ListItems(ctx, query)
	if err != nil {
		store.Update(seq, nil, err)
		log.Printf("item poll failed: %v", err)
		return
	}
	store.Update(seq, items, nil)
}
