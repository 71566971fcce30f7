package store

import (
	"context"
	"errors"
	"time"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

var ErrNotFound = errors.New("interaction not found")

// InteractionRecord is what the service hands to a store. The store assigns
// the id.
type InteractionRecord struct {
	LearnerID int64
	ItemID    int64
	Kind      string
	CreatedAt time.Time
}

// InteractionStore persists interactions as an append-only log.
// ListInteractions returns records in ascending id order.
type InteractionStore interface {
	ListInteractions(ctx context.Context) ([]types.InteractionLog, error)
	GetInteraction(ctx context.Context, id int64) (types.InteractionLog, error)
	RecordInteraction(ctx context.Context, rec InteractionRecord) (types.InteractionLog, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
