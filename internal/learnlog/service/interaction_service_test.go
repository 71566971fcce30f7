package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store/memory"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

func recordReq(learnerID, itemID int64, kind string) types.RecordInteractionRequest {
	return types.RecordInteractionRequest{LearnerID: &learnerID, ItemID: &itemID, Kind: kind}
}

// newTestInteractionService returns a service over a fresh memory store
// seeded with (learner, item) pairs.
func newTestInteractionService(t *testing.T, pairs ...[2]int64) (*service.InteractionService, *memory.InteractionStore) {
	t.Helper()

	st := memory.NewInteractionStore()
	svc := service.NewInteractionService(st)
	for _, p := range pairs {
		_, err := svc.Record(context.Background(), recordReq(p[0], p[1], "attempt"))
		require.NoError(t, err)
	}
	return svc, st
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestList_NoFilterReturnsAll(t *testing.T) {
	svc, _ := newTestInteractionService(t, [2]int64{1, 1}, [2]int64{2, 2})

	logs, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(logs))
}

func TestList_FiltersByItem(t *testing.T) {
	svc, _ := newTestInteractionService(t,
		[2]int64{1, 5}, [2]int64{2, 5}, [2]int64{3, 5}, [2]int64{4, 6},
	)

	logs, err := svc.List(context.Background(), ptr(5))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(logs))

	logs, err = svc.List(context.Background(), ptr(99))
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

type failingStore struct {
	store.InteractionStore
	err error
}

func (f failingStore) ListInteractions(context.Context) ([]types.InteractionLog, error) {
	return nil, f.err
}

func (f failingStore) GetInteraction(context.Context, int64) (types.InteractionLog, error) {
	return types.InteractionLog{}, f.err
}

func (f failingStore) RecordInteraction(context.Context, store.InteractionRecord) (types.InteractionLog, error) {
	return types.InteractionLog{}, f.err
}

func TestList_StoreErrorWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := service.NewInteractionService(failingStore{err: boom})

	_, err := svc.List(context.Background(), ptr(1))
	assert.ErrorIs(t, err, boom)
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestGet_FoundAndMissing(t *testing.T) {
	svc, _ := newTestInteractionService(t, [2]int64{7, 3})

	l, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), l.LearnerID)
	assert.Equal(t, int64(3), l.ItemID)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrInteractionNotFound)
}

func TestGet_StoreErrorIsNotNotFound(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewInteractionService(failingStore{err: boom})

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrInteractionNotFound)
}

// ── Record ───────────────────────────────────────────────────────────────────

func TestRecord_StoresTrimmedKindAndTimestamp(t *testing.T) {
	svc, st := newTestInteractionService(t)

	before := time.Now().UTC().Add(-time.Second)
	l, err := svc.Record(context.Background(), recordReq(1, 0, "  attempt "))
	require.NoError(t, err)
	assert.Equal(t, "attempt", l.Kind)
	assert.Equal(t, int64(0), l.ItemID)
	assert.True(t, l.CreatedAt.After(before))

	logs, err := st.ListInteractions(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, l, logs[0])
}

func TestRecord_Validation(t *testing.T) {
	one := int64(1)
	cases := []struct {
		name string
		req  types.RecordInteractionRequest
		want error
	}{
		{"missing learner", types.RecordInteractionRequest{ItemID: &one, Kind: "attempt"}, service.ErrInvalidLearnerID},
		{"missing item", types.RecordInteractionRequest{LearnerID: &one, Kind: "attempt"}, service.ErrInvalidItemID},
		{"blank kind", types.RecordInteractionRequest{LearnerID: &one, ItemID: &one, Kind: "   "}, service.ErrInvalidKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, st := newTestInteractionService(t)

			_, err := svc.Record(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)

			logs, err := st.ListInteractions(context.Background())
			require.NoError(t, err)
			assert.Empty(t, logs, "nothing should be stored on validation failure")
		})
	}
}

// ── Import ───────────────────────────────────────────────────────────────────

func TestImport_AllOrUpToFailure(t *testing.T) {
	svc, st := newTestInteractionService(t)

	n, err := svc.Import(context.Background(), []types.RecordInteractionRequest{
		recordReq(1, 1, "attempt"),
		recordReq(2, 1, "view"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Import(context.Background(), []types.RecordInteractionRequest{
		recordReq(3, 2, "attempt"),
		{Kind: "broken"},
		recordReq(4, 2, "attempt"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidLearnerID)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Equal(t, 1, n)

	logs, err := st.ListInteractions(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
