package mdast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parse:
// - Fenced blocks become code nodes with info-string language
// - Fenced block span includes both fence delimiter lines
// - Indented blocks become code nodes with no language
// - Body text excludes fence syntax, indent prefix, and trailing newline
// - Non-code blocks keep their structural type tags
// - CodeNodes returns blocks in document order

func TestParse_FencedCodeBlock(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n```js\na();\nb();\n```\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 1)

	code := nodes[0]
	assert.Equal(t, "a();\nb();", code.Value)
	assert.Equal(t, "js", code.Lang)
	require.NotNil(t, code.Position)
	assert.Equal(t, 3, code.Position.Start.Line) // opening fence
	assert.Equal(t, 6, code.Position.End.Line)   // closing fence
}

func TestParse_FencedCodeBlockNoInfoString(t *testing.T) {
	t.Parallel()

	src := "```\nx();\n```\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 1)
	assert.Equal(t, "x();", nodes[0].Value)
	assert.Empty(t, nodes[0].Lang)
	assert.Equal(t, 1, nodes[0].Position.Start.Line)
	assert.Equal(t, 3, nodes[0].Position.End.Line)
}

func TestParse_EmptyFencedBlock(t *testing.T) {
	t.Parallel()

	src := "```js\n```\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Value)
	assert.Equal(t, "js", nodes[0].Lang)
	assert.Equal(t, 1, nodes[0].Position.Start.Line)
	assert.Equal(t, 2, nodes[0].Position.End.Line)
}

func TestParse_BareEmptyFencePairSkipped(t *testing.T) {
	t.Parallel()

	// No info string, no body: nothing to recover a position from.
	root := Parse([]byte("```\n```\n"))
	assert.Empty(t, CodeNodes(root))
}

func TestParse_IndentedCodeBlock(t *testing.T) {
	t.Parallel()

	src := "para\n\n    c();\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 1)

	code := nodes[0]
	assert.Equal(t, "c();", code.Value)
	assert.Empty(t, code.Lang)
	assert.Equal(t, 3, code.Position.Start.Line)
	assert.Equal(t, 3, code.Position.End.Line)
}

func TestParse_MultiLineIndentedBlock(t *testing.T) {
	t.Parallel()

	src := "intro\n\n    one();\n    two();\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 1)
	assert.Equal(t, "one();\ntwo();", nodes[0].Value)
	assert.Equal(t, 3, nodes[0].Position.Start.Line)
	assert.Equal(t, 4, nodes[0].Position.End.Line)
}

func TestParse_DocumentOrder(t *testing.T) {
	t.Parallel()

	src := "```js\nfirst();\n```\n\ntext\n\n```go\nsecond()\n```\n"
	root := Parse([]byte(src))

	nodes := CodeNodes(root)
	require.Len(t, nodes, 2)
	assert.Equal(t, "first();", nodes[0].Value)
	assert.Equal(t, "second()", nodes[1].Value)
}

func TestParse_StructuralNodes(t *testing.T) {
	t.Parallel()

	root := Parse([]byte("# Title\n\npara\n"))
	require.Len(t, root.Children, 2)
	assert.Equal(t, "heading", root.Children[0].Type)
	assert.Equal(t, "paragraph", root.Children[1].Type)
}

func TestWalk_StopsEarly(t *testing.T) {
	t.Parallel()

	root := Parse([]byte("# a\n\n## b\n\n## c\n"))

	var visited int
	Walk(root, func(n *Node) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
