package adjacency

import "errors"

// Sentinel errors returned by the adjacency store.
var (
	// ErrNodeRange indicates a node index outside [0, NodeCount()).
	ErrNodeRange = errors.New("adjacency: node index out of range")

	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("adjacency: self-loop not allowed")

	// ErrDuplicateEdge indicates the same undirected pair was given twice.
	ErrDuplicateEdge = errors.New("adjacency: duplicate edge")

	// ErrBadWeight indicates a negative, NaN or infinite weight.
	ErrBadWeight = errors.New("adjacency: weight must be finite and non-negative")

	// ErrEdgeNotFound indicates that no edge connects the requested pair.
	ErrEdgeNotFound = errors.New("adjacency: edge not found")

	// ErrWeightIncrease indicates an attempt to raise an edge weight.
	ErrWeightIncrease = errors.New("adjacency: edge weights may only decrease")

	// ErrReadOnly indicates a mutation attempted on a snapshot.
	ErrReadOnly = errors.New("adjacency: snapshot is read-only")
)

// Edge is an undirected weighted edge given to New.
type Edge struct {
	U, V   int
	Weight float64
}

// EdgeKey names an undirected edge without its weight.
type EdgeKey struct {
	U, V int
}

// View is the read side of the store. Algorithms accept a View so they can
// run against the live store or a worker snapshot alike.
//
// Slices returned by Neighbors alias internal storage and must not be
// modified by callers.
type View interface {
	NodeCount() int
	EdgeCount() int
	Neighbors(u int) ([]int32, []float64)
	Weight(u, v int) (float64, bool)
	HasEdge(u, v int) bool
	MinCost(u int) float64
	IndirectMinCost(u int) float64
}
