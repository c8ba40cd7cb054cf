package galaxy

import "errors"

// Sentinel errors for galaxy construction and lookup.
var (
	// ErrStarNotFound indicates an index outside [0, StarCount()).
	ErrStarNotFound = errors.New("galaxy: star not found")

	// ErrJumpNotFound indicates that no jump connects the two stars.
	ErrJumpNotFound = errors.New("galaxy: jump not found")

	// ErrSelfJump indicates a jump from a star to itself.
	ErrSelfJump = errors.New("galaxy: jump endpoints must differ")

	// ErrDuplicateJump indicates a second jump between the same pair of stars.
	ErrDuplicateJump = errors.New("galaxy: duplicate jump")

	// ErrBadWeight indicates a negative, NaN or infinite jump weight or distance.
	ErrBadWeight = errors.New("galaxy: jump weight must be finite and non-negative")
)

// NoComponent marks a star whose component has not been calculated yet.
const NoComponent = -1

// Hex is an axial hex-grid coordinate. The implicit third axis is S = -Q-R,
// so the three axes are 120° apart.
type Hex struct {
	Q, R int
}

// S returns the third cube axis.
func (h Hex) S() int { return -h.Q - h.R }

// Distance returns the hex distance between h and o.
func (h Hex) Distance(o Hex) int {
	dq := abs(h.Q - o.Q)
	dr := abs(h.R - o.R)
	ds := abs(h.S() - o.S())

	return (dq + dr + ds) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// Star is a node payload.
type Star struct {
	// Name is a human-readable label; it need not be unique.
	Name string

	// Region groups stars for intra-region batching (typically the sector).
	Region string

	// Hex is the axial position used for geometric landmark candidates.
	Hex Hex

	// Priority orders work; higher values are routed first.
	Priority float64

	// Component is set by CalculateComponents; NoComponent before that.
	Component int
}

// Jump is an undirected edge between two stars.
type Jump struct {
	// U and V are star indices with U < V.
	U, V int

	// Distance is the base length in parsecs. Reinforced weights approach it
	// from above but never drop below it.
	Distance float64

	// Weight is the initial routing cost.
	Weight float64

	// Trade accumulates the traffic value routed over this jump.
	Trade float64

	// Count is the number of routes that used this jump.
	Count int
}

// Query asks for a route between two stars. Higher Priority is routed first.
type Query struct {
	Source, Target int
	Priority       float64
	// Trade is credited to every jump of the route found.
	Trade float64
}

// pairKey normalises an undirected pair.
type pairKey struct{ a, b int }

func makeKey(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}

	return pairKey{a: u, b: v}
}
