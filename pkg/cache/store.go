// Package cache keeps a client-side view of the LazySpender transaction
// list consistent with the server without a full refetch after every
// mutation. It holds paginated listings keyed by query identity, patches
// them in place on create/update/delete, and invalidates derived caches
// through an explicit dependency graph.
package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// ErrFetchInFlight is returned when a page fetch is requested for an
// identity that already has one pending.
var ErrFetchInFlight = errors.New("page fetch already in flight")

// ErrOutOfSequence is returned when a page index other than 0 or the
// next unfetched index is requested.
var ErrOutOfSequence = errors.New("page index out of sequence")

// TransactionService is the remote boundary the cache manager drives.
// *lazyspender.Client satisfies it.
type TransactionService interface {
	ListTransactions(page, size int) (*lazyspender.Page[lazyspender.Transaction], error)
	CreateTransaction(req lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error)
	UpdateTransaction(id string, req lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error)
	DeleteTransaction(id string) error
}

// Identity is the query identity of one cached listing. Every fetch with
// the same identity lands in the same entry.
type Identity struct {
	PageSize int
}

// entry holds all pages fetched so far for one identity. The generation
// counter increments on every invalidation and optimistic patch; a fetch
// that resolves under an older generation is discarded.
type entry struct {
	pages      []lazyspender.Page[lazyspender.Transaction]
	loading    bool
	stale      bool
	generation uint64
}

// Store is a paginated, append-only view of the server's transaction
// list. All mutation of cached state goes through Store; readers get
// copies.
type Store struct {
	svc   TransactionService
	graph *Graph

	mu      sync.Mutex
	entries map[Identity]*entry
}

// NewStore creates a transaction cache store over the given service.
// If graph is non-nil the store registers itself under KeyTransactions
// so dependent caches can be invalidated when transaction data changes.
func NewStore(svc TransactionService, graph *Graph) *Store {
	s := &Store{
		svc:     svc,
		graph:   graph,
		entries: make(map[Identity]*entry),
	}
	if graph != nil {
		graph.Register(KeyTransactions, s)
	}
	return s
}

func (s *Store) entryLocked(identity Identity) *entry {
	e, ok := s.entries[identity]
	if !ok {
		e = &entry{}
		s.entries[identity] = e
	}
	return e
}

// FetchPage fetches one page from the service and stores it. Index 0
// (re)starts the entry; any other index must be the next unfetched one.
func (s *Store) FetchPage(identity Identity, index int) error {
	s.mu.Lock()
	e := s.entryLocked(identity)
	if e.loading {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	if index != 0 && index != len(e.pages) {
		s.mu.Unlock()
		return fmt.Errorf("%w: got %d, want 0 or %d", ErrOutOfSequence, index, len(e.pages))
	}
	e.loading = true
	gen := e.generation
	s.mu.Unlock()

	return s.completeFetch(identity, index, gen)
}

// LoadNext fetches the page after the last stored one. It reports false
// without fetching when the last page has no successor or a fetch is
// already in flight. An empty or stale entry restarts at page 0.
func (s *Store) LoadNext(identity Identity) (bool, error) {
	s.mu.Lock()
	e := s.entryLocked(identity)
	if e.loading {
		s.mu.Unlock()
		return false, nil
	}

	index := 0
	if len(e.pages) > 0 && !e.stale {
		last := e.pages[len(e.pages)-1]
		if !last.HasNext {
			s.mu.Unlock()
			return false, nil
		}
		index = last.PageNumber + 1
	}
	e.loading = true
	gen := e.generation
	s.mu.Unlock()

	return true, s.completeFetch(identity, index, gen)
}

// Ensure makes the entry usable for a first read: it fetches page 0 when
// nothing is cached yet or the entry was invalidated, and is a no-op on a
// fresh entry.
func (s *Store) Ensure(identity Identity) error {
	s.mu.Lock()
	e := s.entryLocked(identity)
	if len(e.pages) > 0 && !e.stale {
		s.mu.Unlock()
		return nil
	}
	if e.loading {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	e.loading = true
	gen := e.generation
	s.mu.Unlock()

	return s.completeFetch(identity, 0, gen)
}

// completeFetch performs the remote call and commits the page. A failed
// fetch leaves stored pages untouched; the caller may retry the same
// call. A response arriving under a stale generation is dropped.
func (s *Store) completeFetch(identity Identity, index int, gen uint64) error {
	page, err := s.svc.ListTransactions(index, identity.PageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(identity)
	e.loading = false

	if err != nil {
		return fmt.Errorf("failed to fetch page %d: %w", index, err)
	}
	if e.generation != gen {
		// The entry was invalidated or patched while the request was in
		// flight. Committing would overwrite newer state.
		return nil
	}

	if index == 0 {
		e.pages = e.pages[:0]
		e.stale = false
	}
	e.pages = append(e.pages, *page)
	return nil
}

// Flatten returns the concatenation of all stored pages' content, in
// stored order. The result is a copy.
func (s *Store) Flatten(identity Identity) []lazyspender.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identity]
	if !ok {
		return nil
	}

	var flat []lazyspender.Transaction
	for _, page := range e.pages {
		flat = append(flat, page.Content...)
	}
	return flat
}

// TotalElements returns the server-reported total for the identity, or 0
// when nothing is cached.
func (s *Store) TotalElements(identity Identity) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identity]
	if !ok || len(e.pages) == 0 {
		return 0
	}
	return e.pages[0].TotalElements
}

// HasNext reports whether the last stored page has a successor.
func (s *Store) HasNext(identity Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identity]
	if !ok || len(e.pages) == 0 {
		return false
	}
	return e.pages[len(e.pages)-1].HasNext
}

// Stale reports whether the entry must be refetched before its contents
// can be trusted.
func (s *Store) Stale(identity Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identity]
	if !ok {
		return false
	}
	return e.stale
}

// MarkStale marks every entry stale, forcing a refetch on the next
// Ensure/LoadNext. Stored pages remain readable until then.
func (s *Store) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		e.stale = true
		e.generation++
	}
}
