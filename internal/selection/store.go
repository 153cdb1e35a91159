package selection

import (
	"log/slog"
	"sync"

	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
)

// Sources identify who replaced the selection.
const (
	SourceClick    = "click"
	SourceMarquee  = "marquee"
	SourceMenu     = "menu"
	SourceRollback = "rollback"
	SourceScript   = "script"
	SourceReplay   = "replay"
)

// Change is delivered to observers after the selection was replaced.
type Change struct {
	// Old is the selection before the change.
	Old Set

	// New is the selection after the change.
	New Set

	// Source identifies where the change came from.
	Source string
}

// Observer is called after every selection change.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.store != nil {
		s.store.unsubscribe(s.id)
	}
}

// Store is the current selection of one scene.
//
// Store is safe for concurrent use. Observers run synchronously on the
// goroutine that made the change, outside the lock, so an observer may read
// the store but must not replace the selection from inside the callback.
type Store struct {
	mu        sync.RWMutex
	current   Set
	observers map[uint64]Observer
	nextID    uint64

	log     *slog.Logger
	metrics *metrics.Metrics
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the store logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = logging.WithComponent(l, "selection")
	}
}

// WithStoreMetrics sets the metrics sink.
func WithStoreMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		observers: make(map[uint64]Observer),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a copy of the current selection.
func (s *Store) Current() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Replace sets the selection. Observers are notified only when next differs
// from the current selection. It reports whether anything changed.
func (s *Store) Replace(next Set, source string) bool {
	next = next.Clone()

	s.mu.Lock()
	if s.current.Equal(next) {
		s.mu.Unlock()
		return false
	}
	old := s.current
	s.current = next
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	s.metrics.SelectionCommitted(source)
	s.log.Debug("selection changed",
		"source", source,
		"count", next.Len(),
		"selection", next.String(),
	)

	change := Change{Old: old, New: next.Clone(), Source: source}
	for _, obs := range observers {
		obs(change)
	}
	return true
}

// Clear empties the selection.
func (s *Store) Clear(source string) bool {
	return s.Replace(Set{}, source)
}

// Subscribe registers an observer for every change.
func (s *Store) Subscribe(observer Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = observer

	return &Subscription{id: id, store: s}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}
