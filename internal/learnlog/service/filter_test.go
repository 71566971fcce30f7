package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

func makeLog(id, learnerID, itemID int64) types.InteractionLog {
	return types.InteractionLog{ID: id, LearnerID: learnerID, ItemID: itemID, Kind: "attempt"}
}

func ids(logs []types.InteractionLog) []int64 {
	out := make([]int64, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.ID)
	}
	return out
}

func ptr(v int64) *int64 { return &v }

func TestFilterByItemID_NilReturnsInputUnchanged(t *testing.T) {
	logs := []types.InteractionLog{makeLog(1, 1, 1), makeLog(2, 2, 2)}

	got := service.FilterByItemID(logs, nil)
	assert.Equal(t, logs, got)

	assert.Empty(t, service.FilterByItemID([]types.InteractionLog{}, nil))
	assert.Nil(t, service.FilterByItemID(nil, nil))
}

func TestFilterByItemID_EmptyInput(t *testing.T) {
	got := service.FilterByItemID([]types.InteractionLog{}, ptr(1))
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = service.FilterByItemID(nil, ptr(1))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByItemID_SingleMatch(t *testing.T) {
	logs := []types.InteractionLog{makeLog(1, 1, 1), makeLog(2, 2, 2)}

	got := service.FilterByItemID(logs, ptr(1))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterByItemID_IgnoresLearnerID(t *testing.T) {
	// Record 1 matches on item but not learner; record 2 matches on learner
	// but not item. Only item counts.
	logs := []types.InteractionLog{makeLog(1, 2, 1), makeLog(2, 1, 2)}

	got := service.FilterByItemID(logs, ptr(1))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(1), got[0].ItemID)
	assert.Equal(t, int64(2), got[0].LearnerID)
}

func TestFilterByItemID_AllMatchingEntries(t *testing.T) {
	logs := []types.InteractionLog{
		makeLog(1, 1, 5),
		makeLog(2, 2, 5),
		makeLog(3, 3, 5),
		makeLog(4, 4, 6),
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(service.FilterByItemID(logs, ptr(5))))
}

func TestFilterByItemID_NoMatch(t *testing.T) {
	logs := []types.InteractionLog{makeLog(1, 1, 1), makeLog(2, 2, 2)}

	got := service.FilterByItemID(logs, ptr(99))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByItemID_ZeroAndNegative(t *testing.T) {
	logs := []types.InteractionLog{makeLog(1, 1, 0), makeLog(2, 2, -1), makeLog(3, 3, 0)}

	assert.Equal(t, []int64{1, 3}, ids(service.FilterByItemID(logs, ptr(0))))
	assert.Equal(t, []int64{2}, ids(service.FilterByItemID(logs, ptr(-1))))
}

func TestFilterByItemID_PreservesOrder(t *testing.T) {
	logs := []types.InteractionLog{
		makeLog(10, 1, 7),
		makeLog(11, 2, 8),
		makeLog(12, 3, 7),
		makeLog(13, 4, 7),
	}

	assert.Equal(t, []int64{10, 12, 13}, ids(service.FilterByItemID(logs, ptr(7))))
}

func TestFilterByItemID_DuplicatesKept(t *testing.T) {
	dup := makeLog(1, 1, 3)
	logs := []types.InteractionLog{dup, dup, makeLog(2, 1, 4)}

	assert.Equal(t, []int64{1, 1}, ids(service.FilterByItemID(logs, ptr(3))))
}

func TestFilterByItemID_DoesNotMutateInput(t *testing.T) {
	logs := []types.InteractionLog{makeLog(1, 1, 1), makeLog(2, 2, 2), makeLog(3, 3, 1)}
	before := append([]types.InteractionLog(nil), logs...)

	got := service.FilterByItemID(logs, ptr(1))
	require.Len(t, got, 2)
	got[0].Kind = "changed"

	assert.Equal(t, before, logs)
}

// Every returned record matches, and every matching input record is returned.
func TestFilterByItemID_ExactSubset(t *testing.T) {
	var logs []types.InteractionLog
	for i := int64(0); i < 50; i++ {
		logs = append(logs, makeLog(i, i%4, i%7-3))
	}

	for target := int64(-4); target <= 4; target++ {
		got := service.FilterByItemID(logs, ptr(target))

		want := 0
		for _, l := range logs {
			if l.ItemID == target {
				want++
			}
		}
		assert.Len(t, got, want, "item_id=%d", target)
		for _, l := range got {
			assert.Equal(t, target, l.ItemID)
		}
	}
}
