// Package solver implements the label-correcting shortest-path solver that
// builds and repairs every tree of the landmark forest.
//
// Overview:
//
//   - Explicit runs a multi-source Dijkstra from a seed set: seeds start at
//     label 0, every other node at +Inf.
//   - Implicit re-relaxes an existing Tree from a frontier after edge weights
//     have decreased. Only the region whose labels can still improve is
//     touched; the nodes whose labels dropped are returned to the caller.
//   - Both modes relax with a divisor: cand = dist[u] + w/(1+epsilon). With
//     epsilon = 0 both reproduce exact Dijkstra labels; with epsilon > 0 every
//     label is the true distance scaled by 1/(1+epsilon), which the forest
//     turns back into upper bounds by multiplying the sum by (1+epsilon).
//
// Pruning:
//
//	The queue uses lazy decrease-key. A popped entry is discarded when its
//	cost no longer matches the node's label (stale) or when it exceeds the
//	node's MaxNeighbor entry: once a node's label is larger than every
//	neighbour label seen at its last scan, scanning it again cannot improve
//	any neighbour, because labels only ever decrease.
//
// Complexity:
//
//   - Explicit: O((V + E) log V) time, O(V + E) space.
//   - Implicit: O((V' + E') log V') where V', E' is the re-relaxed region.
//   - ValidateLabels: O(V).
//
// Errors (sentinel):
//
//   - ErrNoSeeds, ErrSeedRange           from Explicit.
//   - ErrFrontierRange, ErrNilTree       from Implicit.
//   - ErrLabelLength, ErrLabelNaN,
//     ErrLabelNegative, ErrNoFiniteLabel,
//     ErrAllZeroLabels                   from ValidateLabels (and Implicit).
//   - WithEpsilon / WithMaxDistance panic on invalid arguments.
package solver
