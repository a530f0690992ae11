package automap_test

import (
	"sync"
	"testing"

	"github.com/arnovian/automap/internal/typedarray"
	"github.com/arnovian/automap/pkg/automap"
)

func TestBuilderCoalescesConcurrentBuilds(t *testing.T) {
	view, err := typedarray.Freeze([]int64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	b := automap.NewBuilder()

	const n = 8
	results := make([]*automap.FrozenMap, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			fm, err := b.BuildFrozenFromArray(view, 0)
			if err != nil {
				t.Errorf("BuildFrozenFromArray: %v", err)
				return
			}
			results[i] = fm
		}()
	}
	wg.Wait()

	for i, fm := range results {
		if fm == nil {
			t.Fatalf("result %d is nil", i)
		}
		if fm.Len() != 5 {
			t.Fatalf("result %d Len() = %d, want 5", i, fm.Len())
		}
	}
}
