package logparse

import "sort"

// mergeEarliest folds per-process observation maps, keeping the earliest
// timestamp per id. This reconciles duplicate observations of the same
// process, not independent witnesses; quorum merging is mergeQuorum.
func mergeEarliest(maps ...map[uint64]float64) map[uint64]float64 {
	merged := make(map[uint64]float64)
	for _, m := range maps {
		for id, ts := range m {
			if prev, ok := merged[id]; !ok || ts < prev {
				merged[id] = ts
			}
		}
	}
	return merged
}

// validityThreshold is the minimum number of distinct honest confirmations
// expected from a committee of the given size under a 3f+1 fault model.
// An unknown committee size (zero) trusts a single confirmation.
func validityThreshold(committeeSize int) int {
	if committeeSize <= 0 {
		return 1
	}
	return (committeeSize + 2) / 3
}

// mergeQuorum combines the certificate times reported by every shard into one
// logical commit time per id: the validity-th smallest report, i.e. the
// earliest point at which a quorum of nodes had all certified the
// transaction. Ids reported by fewer than validity shards are not yet
// committed and are dropped.
func mergeQuorum(reports []map[uint64]float64, committeeSize int) map[uint64]float64 {
	validity := validityThreshold(committeeSize)

	byID := make(map[uint64][]float64)
	for _, m := range reports {
		for id, ts := range m {
			byID[id] = append(byID[id], ts)
		}
	}

	merged := make(map[uint64]float64, len(byID))
	for id, times := range byID {
		if len(times) < validity {
			continue
		}
		sort.Float64s(times)
		merged[id] = times[validity-1]
	}
	return merged
}
