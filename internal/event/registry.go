package event

import (
	"slices"
	"sync"
)

// registry holds subscriptions in dispatch order: descending priority,
// then subscription order.
type registry[E any] struct {
	mu      sync.RWMutex
	subs    []*subscription[E]
	byID    map[string]*subscription[E]
	nextSeq uint64
}

func newRegistry[E any]() *registry[E] {
	return &registry[E]{
		byID: make(map[string]*subscription[E]),
	}
}

// add inserts a subscription after every subscription of equal or higher
// priority.
func (r *registry[E]) add(sub *subscription[E]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub.seq = r.nextSeq
	r.nextSeq++

	i, _ := slices.BinarySearchFunc(r.subs, sub, compareDispatch[E])
	r.subs = slices.Insert(r.subs, i, sub)
	r.byID[sub.id] = sub
}

// remove removes a subscription by ID.
func (r *registry[E]) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	r.subs = slices.DeleteFunc(r.subs, func(s *subscription[E]) bool { return s == sub })
	return true
}

// get returns a subscription by ID.
func (r *registry[E]) get(id string) (*subscription[E], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.byID[id]
	return sub, ok
}

// snapshot returns the subscriptions in dispatch order.
// The copy is unaffected by later adds and removes.
func (r *registry[E]) snapshot() []*subscription[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.subs)
}

// count returns the total number of subscriptions.
func (r *registry[E]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs)
}

// countActive returns the number of active subscriptions.
func (r *registry[E]) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, sub := range r.subs {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// clear removes all subscriptions.
func (r *registry[E]) clear() []*subscription[E] {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.subs
	r.subs = nil
	r.byID = make(map[string]*subscription[E])
	return old
}

func compareDispatch[E any](a, b *subscription[E]) int {
	if a.config.Priority != b.config.Priority {
		if a.config.Priority > b.config.Priority {
			return -1
		}
		return 1
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}
