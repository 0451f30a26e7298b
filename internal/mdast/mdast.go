// Package mdast provides a minimal markdown syntax tree with 1-based source
// positions, shaped the way the extractors consume it: nodes expose a type
// tag, children, and for code nodes the body text, info-string language, and
// line span.
package mdast

// Point is a 1-based source position.
type Point struct {
	Line   int
	Column int
}

// Position is the source span a node covers. For fenced code blocks the span
// includes the fence delimiter lines.
type Position struct {
	Start Point
	End   Point
}

// Node is one markdown syntax tree node.
type Node struct {
	// Type is the node kind: "root", "code", "heading", "paragraph", etc.
	Type string

	Children []*Node

	// Value is the code body for "code" nodes, without the trailing
	// newline and without fence or indent syntax.
	Value string

	// Lang is the fenced block info string. Empty for indented blocks.
	Lang string

	Position *Position
}

// Walk visits n and its descendants in pre-order. Visiting stops early if fn
// returns false.
func Walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// CodeNodes returns every "code" node under root in document order.
func CodeNodes(root *Node) []*Node {
	var nodes []*Node
	Walk(root, func(n *Node) bool {
		if n.Type == "code" {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}
