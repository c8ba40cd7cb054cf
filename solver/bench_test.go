package solver_test

import (
	"testing"

	"github.com/katalvlaran/starlane/solver"
)

func BenchmarkExplicit(b *testing.B) {
	g := randomConnected(b, 5000, 10000, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Explicit(g, []int{0}); err != nil {
			b.Fatal(err)
		}
	}
}
