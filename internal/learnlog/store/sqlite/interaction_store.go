package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/learnlog/internal/db"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

type InteractionStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

var _ store.InteractionStore = (*InteractionStore)(nil)

func NewInteractionStore(db *sql.DB, writer *dbpkg.Worker) *InteractionStore {
	return &InteractionStore{db: db, writer: writer}
}

func (s *InteractionStore) ListInteractions(ctx context.Context) ([]types.InteractionLog, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, learner_id, item_id, kind, created_at_ms
FROM interactions
ORDER BY id ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("ListInteractions query: %w", err)
	}
	defer rows.Close()

	out := []types.InteractionLog{}
	for rows.Next() {
		l, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListInteractions scan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListInteractions rows: %w", err)
	}
	return out, nil
}

func (s *InteractionStore) GetInteraction(ctx context.Context, id int64) (types.InteractionLog, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, learner_id, item_id, kind, created_at_ms
FROM interactions
WHERE id = ?;
`, id)

	l, err := scanInteraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.InteractionLog{}, store.ErrNotFound
	}
	if err != nil {
		return types.InteractionLog{}, fmt.Errorf("GetInteraction %d: %w", id, err)
	}
	return l, nil
}

func (s *InteractionStore) RecordInteraction(ctx context.Context, rec store.InteractionRecord) (types.InteractionLog, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	createdMs := rec.CreatedAt.UTC().UnixMilli()

	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO interactions(learner_id, item_id, kind, created_at_ms)
VALUES (?, ?, ?, ?);
`, rec.LearnerID, rec.ItemID, rec.Kind, createdMs)
		if err != nil {
			return fmt.Errorf("RecordInteraction insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("RecordInteraction last id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.InteractionLog{}, err
	}

	return types.InteractionLog{
		ID:        id,
		LearnerID: rec.LearnerID,
		ItemID:    rec.ItemID,
		Kind:      rec.Kind,
		CreatedAt: time.UnixMilli(createdMs).UTC(),
	}, nil
}

// PruneOlderThan deletes interactions created before cutoff and returns the
// number of rows removed. Backed by idx_interactions_created.
func (s *InteractionStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM interactions
WHERE created_at_ms < ?;
`, cutoffMs)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(r rowScanner) (types.InteractionLog, error) {
	var (
		l         types.InteractionLog
		createdMs int64
	)
	if err := r.Scan(&l.ID, &l.LearnerID, &l.ItemID, &l.Kind, &createdMs); err != nil {
		return types.InteractionLog{}, err
	}
	l.CreatedAt = time.UnixMilli(createdMs).UTC()
	return l, nil
}
