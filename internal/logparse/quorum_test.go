package logparse

import "testing"

func TestMergeEarliestDisjoint(t *testing.T) {
	merged := mergeEarliest(
		map[uint64]float64{1: 10.0},
		map[uint64]float64{2: 20.0},
	)
	if len(merged) != 2 || merged[1] != 10.0 || merged[2] != 20.0 {
		t.Errorf("unexpected merge result: %v", merged)
	}
}

func TestMergeEarliestOverlap(t *testing.T) {
	merged := mergeEarliest(
		map[uint64]float64{1: 12.0, 2: 20.0},
		map[uint64]float64{1: 10.0, 2: 25.0},
	)
	if merged[1] != 10.0 || merged[2] != 20.0 {
		t.Errorf("expected earliest timestamps to win: %v", merged)
	}
}

func TestValidityThreshold(t *testing.T) {
	cases := []struct {
		committee int
		want      int
	}{
		{0, 1}, // unknown committee trusts a single report
		{1, 1},
		{4, 2},
		{7, 3},
		{10, 4},
	}
	for _, c := range cases {
		if got := validityThreshold(c.committee); got != c.want {
			t.Errorf("committee %d: expected validity %d, got %d", c.committee, c.want, got)
		}
	}
}

func TestMergeQuorumTakesValiditySmallest(t *testing.T) {
	reports := []map[uint64]float64{
		{7: 100.0},
		{7: 105.0},
		{7: 101.0},
	}
	merged := mergeQuorum(reports, 4) // validity = 2
	if merged[7] != 101.0 {
		t.Errorf("expected 2nd-smallest report 101.0, got %f", merged[7])
	}
}

func TestMergeQuorumDropsUnderQuorumIDs(t *testing.T) {
	reports := []map[uint64]float64{
		{7: 100.0, 8: 102.0},
		{7: 101.0},
	}
	merged := mergeQuorum(reports, 4) // validity = 2
	if _, ok := merged[8]; ok {
		t.Errorf("expected id 8 to be dropped, got %v", merged)
	}
	if merged[7] != 101.0 {
		t.Errorf("unexpected commit time for id 7: %f", merged[7])
	}
}

func TestMergeQuorumUnknownCommittee(t *testing.T) {
	reports := []map[uint64]float64{
		{7: 105.0},
		{7: 100.0},
	}
	merged := mergeQuorum(reports, 0) // validity = 1
	if merged[7] != 100.0 {
		t.Errorf("expected earliest report 100.0, got %f", merged[7])
	}
}
