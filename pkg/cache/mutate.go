package cache

import (
	"fmt"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// Create submits a new transaction. On success the returned record is
// prepended to page 0 of every entry and totals are bumped, so the head
// of the list is current without a refetch. On failure the cache is
// untouched.
func (s *Store) Create(req lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error) {
	created, err := s.svc.CreateTransaction(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.mu.Lock()
	for _, e := range s.entries {
		if len(e.pages) == 0 {
			continue
		}
		e.pages[0].Content = append([]lazyspender.Transaction{*created}, e.pages[0].Content...)
		for i := range e.pages {
			e.pages[i].TotalElements++
		}
	}
	s.mu.Unlock()

	if s.graph != nil {
		s.graph.InvalidateDependents(KeyTransactions)
	}
	return created, nil
}

// Update submits changed fields for a transaction. On success the stored
// occurrence of the ID is replaced with the server's record; nothing else
// is altered. On failure the cache is untouched.
func (s *Store) Update(id string, req lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error) {
	updated, err := s.svc.UpdateTransaction(id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", id, err)
	}

	s.mu.Lock()
	for _, e := range s.entries {
		for i := range e.pages {
			for j := range e.pages[i].Content {
				if e.pages[i].Content[j].ID == updated.ID {
					e.pages[i].Content[j] = *updated
				}
			}
		}
	}
	s.mu.Unlock()

	if s.graph != nil {
		s.graph.InvalidateDependents(KeyTransactions)
	}
	return updated, nil
}

// Delete removes a transaction optimistically: the row disappears from
// the cache before the server confirms, and the pre-delete state is
// restored in full if the request fails. Whether the delete succeeds or
// not, entries are marked stale afterwards to reconcile pagination drift
// and dependent caches are invalidated.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.removeLocked(id)
	// Invalidate in-flight fetches so a slow response cannot resurrect
	// the deleted row.
	for _, e := range s.entries {
		e.generation++
	}
	s.mu.Unlock()

	err := s.svc.DeleteTransaction(id)

	s.mu.Lock()
	if err != nil {
		s.restoreLocked(snapshot)
	}
	s.mu.Unlock()

	// Settle runs on success and failure alike.
	if s.graph != nil {
		s.graph.Invalidate(KeyTransactions)
	} else {
		s.MarkStale()
	}

	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return nil
}

func (s *Store) snapshotLocked() map[Identity][]lazyspender.Page[lazyspender.Transaction] {
	snapshot := make(map[Identity][]lazyspender.Page[lazyspender.Transaction], len(s.entries))
	for identity, e := range s.entries {
		pages := make([]lazyspender.Page[lazyspender.Transaction], len(e.pages))
		for i, page := range e.pages {
			page.Content = append([]lazyspender.Transaction(nil), page.Content...)
			pages[i] = page
		}
		snapshot[identity] = pages
	}
	return snapshot
}

func (s *Store) restoreLocked(snapshot map[Identity][]lazyspender.Page[lazyspender.Transaction]) {
	for identity, pages := range snapshot {
		if e, ok := s.entries[identity]; ok {
			e.pages = pages
		}
	}
}

func (s *Store) removeLocked(id string) {
	for _, e := range s.entries {
		removed := false
		for i := range e.pages {
			content := e.pages[i].Content[:0:0]
			for _, tx := range e.pages[i].Content {
				if tx.ID != id {
					content = append(content, tx)
				} else {
					removed = true
				}
			}
			e.pages[i].Content = content
		}
		if removed {
			for i := range e.pages {
				e.pages[i].TotalElements--
			}
		}
	}
}
