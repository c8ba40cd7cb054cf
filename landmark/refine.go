package landmark

import "math"

// refine runs farthest-subtree refinement for component c on the newest tree
// that holds one of c's landmarks. It returns false when no landmark-free
// subtree has positive weight.
func (s *selector) refine(c int) (int, bool) {
	last, ok := s.lastSlot[c]
	if !ok {
		return 0, false
	}
	t := s.f.Tree(last)
	root := s.slots[last][c]
	members := s.members[c]

	pos := make(map[int]int, len(members))
	for i, v := range members {
		pos[v] = i
	}
	children := make([][]int, len(members))
	for i, v := range members {
		if p := t.Parent[v]; p >= 0 {
			if pi, ok := pos[int(p)]; ok {
				children[pi] = append(children[pi], i)
			}
		}
	}

	// node weights: what this tree adds over the rest of the forest
	others := make([][]float64, 0, s.f.Len())
	for i := 0; i < s.f.Len(); i++ {
		if i != last {
			others = append(others, s.f.Tree(i).Dist)
		}
	}
	weight := make([]float64, len(members))
	for i, v := range members {
		d := t.Dist[v]
		if math.IsInf(d, 1) {
			continue
		}
		lb := 0.0
		for _, od := range others {
			a, b := od[root], od[v]
			if math.IsInf(a, 1) || math.IsInf(b, 1) {
				continue
			}
			if x := math.Abs(a - b); x > lb {
				lb = x
			}
		}
		if w := d - lb; w > 0 {
			weight[i] = w
		}
	}

	// post-order accumulation from the root
	order := make([]int, 0, len(members))
	stack := []int{pos[root]}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, i)
		stack = append(stack, children[i]...)
	}
	sub := make([]float64, len(members))
	marked := make([]bool, len(members))
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		sum, mark := weight[i], s.chosen[members[i]]
		for _, ch := range children[i] {
			sum += sub[ch]
			mark = mark || marked[ch]
		}
		marked[i] = mark
		if !mark {
			sub[i] = sum
		}
	}

	// heaviest landmark-free subtree, then its heaviest branch down to a leaf
	best, bestW := -1, 0.0
	for _, i := range order {
		if sub[i] > bestW {
			best, bestW = i, sub[i]
		}
	}
	if best < 0 {
		return 0, false
	}
	for len(children[best]) > 0 {
		next := children[best][0]
		for _, ch := range children[best][1:] {
			if sub[ch] > sub[next] {
				next = ch
			}
		}
		best = next
	}

	return members[best], true
}
