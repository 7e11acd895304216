package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/drios/docscope/internal/document"
)

var (
	// ErrRemoveNotConfirmed reports that the user declined the delete
	// confirmation; nothing was sent to the store.
	ErrRemoveNotConfirmed = errors.New("delete was not confirmed")

	// ErrRefreshSuperseded reports that a newer refresh was initiated
	// while this one was in flight; its results were discarded.
	ErrRefreshSuperseded = errors.New("refresh superseded by a newer one")
)

// Confirmer asks the user to confirm a destructive removal.
type Confirmer func(doc document.StoredDocument) bool

// Store is the in-memory cache of the stored document collection plus its
// dashboard aggregate. It is the only shared mutable state on the client;
// mutation happens exclusively through Refresh and Remove.
type Store struct {
	collaborator Fetcher
	confirm      Confirmer

	mu     sync.Mutex
	docs   []document.StoredDocument
	stats  document.DashboardStats
	loaded bool
	gen    uint64
}

// NewStore creates an empty store. A nil confirmer refuses every removal,
// which is the safe default for a destructive, irreversible command.
func NewStore(collaborator Fetcher, confirm Confirmer) *Store {
	return &Store{
		collaborator: collaborator,
		confirm:      confirm,
	}
}

// Refresh replaces the whole cached state with the collaborator's current
// listing and aggregate. The two fetches run concurrently but apply
// atomically: if either fails, nothing changes and the prior state stays
// visible. Overlapping refreshes are resolved by generation; only the most
// recently initiated one applies.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var (
		docs  []document.StoredDocument
		stats *document.DashboardStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.collaborator.ListDocuments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.collaborator.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refreshing collection: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return ErrRefreshSuperseded
	}
	if docs == nil {
		docs = []document.StoredDocument{}
	}
	s.docs = docs
	s.stats = *stats
	s.loaded = true
	return nil
}

// Remove asks the user to confirm, issues the delete, then refreshes so
// the cache reflects server-side state rather than a local subtraction.
func (s *Store) Remove(ctx context.Context, id int64) error {
	doc, _ := s.lookup(id)
	doc.ID = id

	if s.confirm == nil || !s.confirm(doc) {
		return ErrRemoveNotConfirmed
	}

	if err := s.collaborator.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("deleting document %d: %w", id, err)
	}
	return s.Refresh(ctx)
}

// Documents returns the cached listing in fetch order.
func (s *Store) Documents() []document.StoredDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]document.StoredDocument, len(s.docs))
	copy(out, s.docs)
	return out
}

// Stats returns the cached dashboard aggregate.
func (s *Store) Stats() document.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Loaded reports whether at least one refresh has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Store) lookup(id int64) (document.StoredDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return document.StoredDocument{}, false
}
