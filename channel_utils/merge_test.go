package channel_utils

import (
	"sort"
	"testing"

	"github.com/panjf2000/ants/v2"
)

func TestMergeChannels(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	first := make(chan int)
	second := make(chan int)

	go func() {
		defer close(first)
		first <- 1
		first <- 2
	}()
	go func() {
		defer close(second)
		second <- 3
	}()

	merged, err := MergeChannels[int](workerPool, first, second)
	if err != nil {
		t.Fatal("Failed to merge channels:", err)
	}

	got := make([]int, 0, 3)
	for val := range merged {
		got = append(got, val)
	}
	sort.Ints(got)

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("merged %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMergeChannelsClosedInputs(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	first := make(chan error)
	second := make(chan error)
	close(first)
	close(second)

	merged, err := MergeChannels[error](workerPool, first, second)
	if err != nil {
		t.Fatal("Failed to merge channels:", err)
	}

	if _, ok := <-merged; ok {
		t.Error("expected merged channel to close without values")
	}
}
