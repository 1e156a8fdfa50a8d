package state

import "sync"

// Store holds one snapshot of S. Updates are read-modify-write under a single
// lock so concurrent transforms compose; subscribers are notified on the
// Dispatcher and always observe the snapshot current at delivery time, so
// intermediate values may be conflated.
type Store[S any] struct {
	dispatcher Dispatcher

	mu     sync.Mutex
	value  S
	closed bool
	subs   map[uint64]func(S)
	nextID uint64
}

func NewStore[S any](initial S, d Dispatcher) *Store[S] {
	if d == nil {
		d = Immediate
	}
	return &Store[S]{dispatcher: d, value: initial, subs: map[uint64]func(S){}}
}

func (s *Store[S]) Value() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Update replaces the snapshot with fn(current). It returns false, without
// calling fn, once the store is closed.
func (s *Store[S]) Update(fn func(S) S) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.value = fn(s.value)
	ids := s.subscriberIDs()
	s.mu.Unlock()

	for _, id := range ids {
		s.notify(id)
	}
	return true
}

// Subscribe registers fn and posts the current snapshot to it. The returned
// cancel func is idempotent; a cancelled subscriber receives nothing further,
// including notifications already posted.
func (s *Store[S]) Subscribe(fn func(S)) (cancel func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()

	s.notify(id)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drops every subscriber and rejects further updates.
func (s *Store[S]) Close() {
	s.mu.Lock()
	s.closed = true
	s.subs = map[uint64]func(S){}
	s.mu.Unlock()
}

func (s *Store[S]) subscriberIDs() []uint64 {
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store[S]) notify(id uint64) {
	s.dispatcher.Post(func() {
		s.mu.Lock()
		fn, ok := s.subs[id]
		v := s.value
		s.mu.Unlock()
		if ok {
			fn(v)
		}
	})
}
