package state

// Listener receives every snapshot produced by Update
type Listener func(AppState)

type subscription struct {
	id int
	fn Listener
}

// Store owns the application state. It is driven from a single goroutine
// (the state thread) and takes no locks.
//
// Updates made by a listener while a notification is running are applied
// immediately; their notifications are queued and delivered in order once
// the current one finishes, so every listener sees every snapshot.
type Store struct {
	state     AppState
	subs      []subscription
	nextID    int
	notifying bool
	pending   []AppState
}

// NewStore creates a store holding initial
func NewStore(initial AppState) *Store {
	return &Store{state: initial}
}

// Snapshot returns the current state
func (s *Store) Snapshot() AppState {
	return s.state
}

// Update applies mutate to a copy of the current state, replaces the state
// with the result and notifies every listener.
func (s *Store) Update(mutate func(*AppState)) {
	next := s.state
	if next.Detail != nil {
		ref := *next.Detail
		next.Detail = &ref
	}
	mutate(&next)
	s.state = next

	s.pending = append(s.pending, next)
	if s.notifying {
		return
	}

	s.notifying = true
	defer func() {
		s.notifying = false
		s.pending = nil
	}()
	for len(s.pending) > 0 {
		snap := s.pending[0]
		s.pending = s.pending[1:]
		for _, sub := range s.subs {
			sub.fn(snap)
		}
	}
}

// Subscribe registers fn for future snapshots and returns a function that
// removes it. Subscribing or unsubscribing from inside a listener panics.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if s.notifying {
		panic("state: Subscribe called during notification")
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		if s.notifying {
			panic("state: unsubscribe called during notification")
		}
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
