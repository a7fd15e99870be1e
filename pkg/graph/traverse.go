package graph

// DFS returns the node indices reachable from the root in depth-first
// preorder. Children are visited in edge insertion order.
func (g *Graph) DFS() []int {
	if !g.Contains(g.root) {
		return nil
	}
	order := make([]int, 0, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	stack := []int{g.root}
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[index] {
			continue
		}
		visited[index] = true
		order = append(order, index)
		// Push in reverse so the first child is visited first.
		next := g.out[index]
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i]] {
				stack = append(stack, next[i])
			}
		}
	}
	return order
}

// BFS returns the node indices reachable from the root in breadth-first
// order.
func (g *Graph) BFS() []int {
	if !g.Contains(g.root) {
		return nil
	}
	order := make([]int, 0, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	visited[g.root] = true
	queue := []int{g.root}
	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]
		order = append(order, index)
		for _, next := range g.out[index] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return order
}

// Topo returns every live node index in topological order: each dependent
// precedes all of its dependencies. Kahn's algorithm over in-degrees; the
// graph is acyclic by construction so every live node appears exactly once.
func (g *Graph) Topo() []int {
	indegree := make([]int, len(g.nodes))
	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		for _, to := range g.out[i] {
			indegree[to]++
		}
	}

	var queue []int
	for i, n := range g.nodes {
		if n != nil && indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]
		order = append(order, index)
		for _, to := range g.out[index] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}
	return order
}
