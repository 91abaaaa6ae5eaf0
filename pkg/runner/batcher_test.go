package runner

import (
	"reflect"
	"testing"
)

func TestBatcherFlushesFullBatches(t *testing.T) {
	var flushed [][]int
	b := newBatcher[int](2, func(batch []int) {
		flushed = append(flushed, append([]int(nil), batch...))
	})
	for _, v := range []int{1, 2, 3, 4, 5} {
		b.emit(v)
	}
	if len(flushed) != 2 {
		t.Fatalf("expected 2 full batches flushed during emit, got %d", len(flushed))
	}
	b.finish()
	if len(flushed) != 3 {
		t.Fatalf("expected residual batch flushed by finish, got %d batches", len(flushed))
	}
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(flushed, want) {
		t.Fatalf("unexpected batches: %v", flushed)
	}
}

func TestBatcherFinishNoOpWhenEmpty(t *testing.T) {
	calls := 0
	b := newBatcher[int](3, func(batch []int) { calls++ })
	b.finish()
	if calls != 0 {
		t.Fatalf("expected finish to be a no-op on an empty batcher, got %d calls", calls)
	}
}

func TestBatcherExactMultiple(t *testing.T) {
	var flushed [][]int
	b := newBatcher[int](2, func(batch []int) {
		flushed = append(flushed, append([]int(nil), batch...))
	})
	b.emit(1)
	b.emit(2)
	b.finish()
	if len(flushed) != 1 {
		t.Fatalf("expected exactly 1 flush for an exact multiple, got %d", len(flushed))
	}
}
