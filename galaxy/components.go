package galaxy

// CalculateComponents labels every star with the id of its connected
// component and returns the labels in index order. Ids are assigned 0, 1, 2, …
// in order of each component's lowest star index, so the result is
// deterministic for a given graph. Isolated stars form singleton components.
//
// The labels are cached on the stars; calling again without mutations
// returns the cached result.
//
// Time:   O(V + E).
// Memory: O(V) for the queue and output.
func (g *Graph) CalculateComponents() []int {
	if g.componentsValid {
		return g.componentLabels()
	}

	for i := range g.stars {
		g.stars[i].Component = NoComponent
	}

	next := 0
	queue := make([]int, 0, len(g.stars))
	for root := range g.stars {
		if g.stars[root].Component != NoComponent {
			continue
		}
		// BFS to collect the component
		queue = append(queue[:0], root)
		g.stars[root].Component = next
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, pos := range g.adjacent[u] {
				j := g.jumps[pos]
				v := j.U
				if v == u {
					v = j.V
				}
				if g.stars[v].Component == NoComponent {
					g.stars[v].Component = next
					queue = append(queue, v)
				}
			}
		}
		next++
	}
	g.componentsValid = true

	return g.componentLabels()
}

// Components groups star indices by component id. Members of each group are in
// ascending index order. CalculateComponents is run first if needed.
func (g *Graph) Components() [][]int {
	labels := g.CalculateComponents()
	count := 0
	for _, c := range labels {
		if c+1 > count {
			count = c + 1
		}
	}
	out := make([][]int, count)
	for i, c := range labels {
		out[c] = append(out[c], i)
	}

	return out
}

func (g *Graph) componentLabels() []int {
	out := make([]int, len(g.stars))
	for i := range g.stars {
		out[i] = g.stars[i].Component
	}

	return out
}
