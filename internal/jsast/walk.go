package jsast

// Walk visits every node reachable from nodes depth-first. A slice is a
// sequence: its elements are walked, the slice itself is never visited.
func Walk(nodes []*Node, visit func(*Node)) {
	for _, n := range nodes {
		WalkNode(n, visit)
	}
}

// WalkNode visits n, then its slots in fixed order: Params, Body, Value,
// Children. Nothing outside these slots is reached.
func WalkNode(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	Walk(n.Params, visit)
	WalkNode(n.Body, visit)
	WalkNode(n.Value, visit)
	Walk(n.Children, visit)
}
