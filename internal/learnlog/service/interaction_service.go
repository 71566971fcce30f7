package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

var (
	ErrInvalidLearnerID    = errors.New("learner_id is required")
	ErrInvalidItemID       = errors.New("item_id is required")
	ErrInvalidKind         = errors.New("kind is required")
	ErrInteractionNotFound = errors.New("interaction not found")
)

type InteractionService struct {
	store store.InteractionStore
	now   func() time.Time
}

func NewInteractionService(st store.InteractionStore) *InteractionService {
	return &InteractionService{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns every stored interaction, narrowed to a single item when
// itemID is non-nil.
func (s *InteractionService) List(ctx context.Context, itemID *int64) ([]types.InteractionLog, error) {
	logs, err := s.store.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return FilterByItemID(logs, itemID), nil
}

func (s *InteractionService) Get(ctx context.Context, id int64) (types.InteractionLog, error) {
	l, err := s.store.GetInteraction(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return types.InteractionLog{}, ErrInteractionNotFound
	}
	if err != nil {
		return types.InteractionLog{}, fmt.Errorf("get interaction %d: %w", id, err)
	}
	return l, nil
}

func (s *InteractionService) Record(ctx context.Context, req types.RecordInteractionRequest) (types.InteractionLog, error) {
	if req.LearnerID == nil {
		return types.InteractionLog{}, ErrInvalidLearnerID
	}
	if req.ItemID == nil {
		return types.InteractionLog{}, ErrInvalidItemID
	}
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		return types.InteractionLog{}, ErrInvalidKind
	}

	l, err := s.store.RecordInteraction(ctx, store.InteractionRecord{
		LearnerID: *req.LearnerID,
		ItemID:    *req.ItemID,
		Kind:      kind,
		CreatedAt: s.now(),
	})
	if err != nil {
		return types.InteractionLog{}, fmt.Errorf("record interaction: %w", err)
	}
	return l, nil
}

// Import records reqs in order and stops at the first failure. It returns
// how many were stored before that point.
func (s *InteractionService) Import(ctx context.Context, reqs []types.RecordInteractionRequest) (int, error) {
	for i, req := range reqs {
		if _, err := s.Record(ctx, req); err != nil {
			return i, fmt.Errorf("import entry %d: %w", i, err)
		}
	}
	return len(reqs), nil
}
