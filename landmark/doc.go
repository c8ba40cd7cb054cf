// Package landmark chooses the landmarks that seed the forest.
//
// Every connected component of n ≥ 2 stars receives a budget of
// min(MaxSlots, ⌈3·log10 n⌉) landmarks. Landmarks are organised in slots:
// slot i holds at most one landmark per component, and forest tree i is
// seeded with every landmark of slot i.
//
// Selection runs in rounds; round j fills one slot. Rounds that pick nothing
// are not stored, so Result.Slots[i] always seeds forest tree i.
//
// Round order:
//
//	0–5  geometric extremes: max/min Q, max/min R, max/min S (S = −Q−R).
//	6    traffic candidate: the most frequent source among high-priority
//	     queries whose endpoints are both still non-landmarks.
//	7+   farthest-subtree refinement.
//
// A candidate that is already a landmark of its component, or a missing
// traffic candidate, falls through to refinement for that round.
//
// Refinement:
//
//	Take the newest tree containing the component's landmarks. Each node
//	weighs max(0, d_T(node) − LB'(root, node)), where LB' is the forest
//	lower bound without that tree. Weights are summed from leaves to root;
//	subtrees holding a landmark count as zero. The heaviest subtree is
//	chosen and followed down its heaviest children to a leaf, which becomes
//	the new landmark. If no subtree weighs anything, the component stops
//	receiving refinement landmarks; a later traffic candidate may still apply.
//
// Extend adds one more refinement slot to an existing Result; landmarks are
// never removed.
package landmark
