package runner

import "testing"

func TestDedupFilterAgainstQueued(t *testing.T) {
	got := dedupFilter([]int{1, 2, 3}, []int{2}, nil)
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDedupFilterAgainstInFlight(t *testing.T) {
	inFlight := map[uint64][]int{1: {5, 6}}
	got := dedupFilter([]int{5, 7}, nil, inFlight)
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected only 7 to survive, got %v", got)
	}
}

func TestDedupFilterAgainstSelf(t *testing.T) {
	got := dedupFilter([]int{4, 4, 4}, nil, nil)
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("expected a single 4 to survive self-dedup, got %v", got)
	}
}

func TestDedupFilterEmptyWhenAllDuplicate(t *testing.T) {
	got := dedupFilter([]int{1, 2}, []int{1, 2}, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
