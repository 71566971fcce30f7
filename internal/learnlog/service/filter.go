package service

import "github.com/BrandonDHaskell/learnlog/internal/learnlog/types"

// FilterByItemID returns the interactions whose ItemID equals *itemID, in
// their original order. A nil itemID means "no filter" and returns records
// as given. Zero and negative ids are ordinary values.
//
// records is never modified; a filtered result is always a fresh, non-nil
// slice.
func FilterByItemID(records []types.InteractionLog, itemID *int64) []types.InteractionLog {
	if itemID == nil {
		return records
	}

	out := make([]types.InteractionLog, 0, len(records))
	for _, r := range records {
		if r.ItemID == *itemID {
			out = append(out, r)
		}
	}
	return out
}
