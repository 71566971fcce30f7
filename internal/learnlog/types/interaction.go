package types

import "time"

// InteractionLog is a single learner interaction with an item. Values are
// treated as immutable once read from a store.
type InteractionLog struct {
	ID        int64     `json:"id"`
	LearnerID int64     `json:"learner_id"`
	ItemID    int64     `json:"item_id"`
	Kind      string    `json:"kind"` // e.g. "attempt"
	CreatedAt time.Time `json:"created_at"`
}

// RecordInteractionRequest is the inbound shape for new interactions.
// Pointers distinguish a missing id from a legitimate zero.
type RecordInteractionRequest struct {
	LearnerID *int64 `json:"learner_id" yaml:"learner_id"`
	ItemID    *int64 `json:"item_id" yaml:"item_id"`
	Kind      string `json:"kind" yaml:"kind"`
}
