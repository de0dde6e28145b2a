package constraints

import (
	"sort"

	"github.com/Simplici0/printquote/internal/options"
)

// DetectCycle returns the sorted option definition ids that lie on a cycle of
// the dependency graph, or nil when the graph is acyclic. A self-edge is a
// cycle. Nodes that only lead into a cycle are not reported.
func DetectCycle(deps []options.OptionDependency) []int64 {
	adj := map[int64][]int64{}
	var nodes []int64
	seen := map[int64]bool{}
	addNode := func(n int64) {
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	for _, d := range deps {
		addNode(d.ParentOptionID)
		addNode(d.ChildOptionID)
		adj[d.ParentOptionID] = append(adj[d.ParentOptionID], d.ChildOptionID)
	}

	// Tarjan's strongly connected components: a component is cyclic when it
	// has more than one node or a self-edge.
	index := map[int64]int{}
	low := map[int64]int{}
	onStack := map[int64]bool{}
	var stack []int64
	var cyclic []int64
	next := 0

	var visit func(v int64)
	visit = func(v int64) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, ok := index[w]; !ok {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] != index[v] {
			return
		}
		var comp []int64
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		if len(comp) > 1 || hasSelfEdge(adj, v) {
			cyclic = append(cyclic, comp...)
		}
	}

	for _, n := range nodes {
		if _, ok := index[n]; !ok {
			visit(n)
		}
	}
	if len(cyclic) == 0 {
		return nil
	}
	sort.Slice(cyclic, func(i, j int) bool { return cyclic[i] < cyclic[j] })
	return cyclic
}

func hasSelfEdge(adj map[int64][]int64, v int64) bool {
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}
