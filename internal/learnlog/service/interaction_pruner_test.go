package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store/memory"
)

func seedAged(t *testing.T, st *memory.InteractionStore, daysAgo ...int) {
	t.Helper()
	for _, d := range daysAgo {
		_, err := st.RecordInteraction(context.Background(), store.InteractionRecord{
			LearnerID: 1, ItemID: 1, Kind: "attempt",
			CreatedAt: time.Now().UTC().AddDate(0, 0, -d),
		})
		require.NoError(t, err)
	}
}

func TestInteractionPruner_DisabledWhenRetentionZero(t *testing.T) {
	st := memory.NewInteractionStore()
	seedAged(t, st, 400)

	pruner := service.NewInteractionPruner(st, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, zerolog.Nop())

	pruner.Start(context.Background())
	pruner.Stop()

	logs, err := st.ListInteractions(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 1, "disabled pruner must not delete anything")
}

func TestInteractionPruner_PrunesOnStart(t *testing.T) {
	st := memory.NewInteractionStore()
	seedAged(t, st, 40, 1)

	pruner := service.NewInteractionPruner(st, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, zerolog.Nop())

	pruner.Start(context.Background())
	defer pruner.Stop()

	require.Eventually(t, func() bool {
		logs, err := st.ListInteractions(context.Background())
		return err == nil && len(logs) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestInteractionPruner_PruneOnce(t *testing.T) {
	st := memory.NewInteractionStore()
	seedAged(t, st, 90, 60, 5)

	pruner := service.NewInteractionPruner(st, service.PrunerConfig{RetentionDays: 30}, zerolog.Nop())

	deleted, err := pruner.PruneOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = pruner.PruneOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestInteractionPruner_StopIsIdempotent(t *testing.T) {
	pruner := service.NewInteractionPruner(memory.NewInteractionStore(), service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	pruner.Stop()
	pruner.Stop()
}
