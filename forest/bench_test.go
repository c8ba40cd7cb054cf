package forest_test

import (
	"testing"

	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/forest"
)

func benchForest(b *testing.B, kind forest.Kind) {
	g, err := builder.BuildGalaxy([]builder.BuilderOption{builder.WithSeed(1)},
		builder.RandomSector(2000, 40, 3))
	if err != nil {
		b.Fatal(err)
	}
	store, err := builder.ToStore(g)
	if err != nil {
		b.Fatal(err)
	}
	f, err := forest.New(store, kind)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := f.ExpandForest([]int{i * 199}); err != nil {
			b.Fatal(err)
		}
	}
	buf := make([]float64, store.NodeCount())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.LowerBoundBulk(i%store.NodeCount(), buf)
	}
}

func BenchmarkLowerBoundBulkTrees(b *testing.B)  { benchForest(b, forest.KindTrees) }
func BenchmarkLowerBoundBulkPacked(b *testing.B) { benchForest(b, forest.KindPacked) }
