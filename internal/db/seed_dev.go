package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var devInteractions = []struct {
	learnerID int64
	itemID    int64
	kind      string
}{
	{1, 1, "attempt"},
	{2, 1, "attempt"},
	{1, 2, "view"},
	{3, 2, "submit"},
	{2, 0, "view"},
}

// SeedDev inserts a handful of sample interactions into an empty database.
// It returns the number of rows inserted (0 when data already exists).
func SeedDev(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("seed count: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin: %w", err)
	}

	now := time.Now().UTC().UnixMilli()
	for i, in := range devInteractions {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO interactions(learner_id, item_id, kind, created_at_ms)
VALUES (?, ?, ?, ?);`, in.learnerID, in.itemID, in.kind, now+int64(i)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("seed interaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}
	return len(devInteractions), nil
}
