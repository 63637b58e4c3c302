// Package notify implements the advisory change-notification registry for
// the transaction collection. Delivery is at-least-once and carries no
// ordering guarantee relative to the write that triggered it: subscribers
// must re-fetch rather than apply the event incrementally.
package notify

import "sync"

// Event describes a change to the transaction collection.
type Event struct {
	Kind          string // "insert", "update", "delete"
	TransactionID uint
}

// Callback receives change events. Callbacks run synchronously on the
// notifying goroutine and should be quick.
type Callback func(Event)

// Registry is a set of subscribed callbacks. The zero value is ready to use.
type Registry struct {
	mu    sync.Mutex
	next  int
	subs  map[int]Callback
}

// Subscribe registers cb and returns a token for Unsubscribe.
func (r *Registry) Subscribe(cb Callback) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs == nil {
		r.subs = make(map[int]Callback)
	}
	r.next++
	r.subs[r.next] = cb
	return r.next
}

// Unsubscribe removes the callback registered under token. Unknown tokens
// are ignored.
func (r *Registry) Unsubscribe(token int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, token)
}

// Notify delivers ev to every subscriber. Subscribers registered during
// delivery may or may not see ev.
func (r *Registry) Notify(ev Event) {
	r.mu.Lock()
	cbs := make([]Callback, 0, len(r.subs))
	for _, cb := range r.subs {
		cbs = append(cbs, cb)
	}
	r.mu.Unlock()

	for _, cb := range cbs {
		cb(ev)
	}
}
