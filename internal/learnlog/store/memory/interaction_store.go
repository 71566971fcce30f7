package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

// InteractionStore is an in-memory append-only interaction log.
// It is intended for use in tests and dev environments.
type InteractionStore struct {
	mu     sync.RWMutex
	nextID int64
	logs   []types.InteractionLog
}

var _ store.InteractionStore = (*InteractionStore)(nil)

func NewInteractionStore() *InteractionStore {
	return &InteractionStore{nextID: 1}
}

func (s *InteractionStore) ListInteractions(_ context.Context) ([]types.InteractionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.InteractionLog, len(s.logs))
	copy(out, s.logs)
	return out, nil
}

func (s *InteractionStore) GetInteraction(_ context.Context, id int64) (types.InteractionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return types.InteractionLog{}, store.ErrNotFound
}

func (s *InteractionStore) RecordInteraction(_ context.Context, rec store.InteractionRecord) (types.InteractionLog, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := types.InteractionLog{
		ID:        s.nextID,
		LearnerID: rec.LearnerID,
		ItemID:    rec.ItemID,
		Kind:      rec.Kind,
		CreatedAt: rec.CreatedAt.UTC(),
	}
	s.nextID++
	s.logs = append(s.logs, l)
	return l, nil
}

func (s *InteractionStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.logs[:0]
	var deleted int64
	for _, l := range s.logs {
		if l.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, l)
	}
	s.logs = kept
	return deleted, nil
}
