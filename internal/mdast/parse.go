package mdast

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse parses markdown source into a tree. Only block-level nodes are
// represented; inline content is not needed for example extraction.
func Parse(source []byte) *Node {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	idx := newLineIndex(source)
	root := &Node{Type: "root"}
	convertChildren(doc, root, source, idx)
	return root
}

func convertChildren(from gast.Node, to *Node, source []byte, idx lineIndex) {
	for child := from.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == gast.TypeInline {
			continue
		}
		node := convertNode(child, source, idx)
		if node == nil {
			continue
		}
		to.Children = append(to.Children, node)
		convertChildren(child, node, source, idx)
	}
}

func convertNode(n gast.Node, source []byte, idx lineIndex) *Node {
	switch block := n.(type) {
	case *gast.FencedCodeBlock:
		return convertFenced(block, source, idx)
	case *gast.CodeBlock:
		return convertIndented(block, source, idx)
	default:
		return &Node{Type: kindName(n)}
	}
}

// convertFenced builds a code node whose position span includes the fence
// delimiter lines, matching how markdown parsers conventionally report
// fenced blocks.
func convertFenced(block *gast.FencedCodeBlock, source []byte, idx lineIndex) *Node {
	lines := block.Lines()

	var startLine int
	switch {
	case block.Info != nil:
		startLine = idx.lineOf(block.Info.Segment.Start)
	case lines.Len() > 0:
		startLine = idx.lineOf(lines.At(0).Start) - 1
	default:
		// A bare fence pair with no info string and no body leaves nothing
		// to recover a position from; the block is skipped entirely.
		return nil
	}

	endLine := startLine + 1
	if lines.Len() > 0 {
		endLine = idx.lineOf(lines.At(lines.Len()-1).Stop-1) + 1
	}

	var lang string
	if block.Info != nil {
		lang = string(block.Language(source))
	}

	return &Node{
		Type:  "code",
		Value: segmentsValue(lines, source),
		Lang:  lang,
		Position: &Position{
			Start: Point{Line: startLine, Column: 1},
			End:   Point{Line: endLine, Column: 1},
		},
	}
}

func convertIndented(block *gast.CodeBlock, source []byte, idx lineIndex) *Node {
	lines := block.Lines()
	if lines.Len() == 0 {
		return nil
	}

	return &Node{
		Type:  "code",
		Value: segmentsValue(lines, source),
		Position: &Position{
			Start: Point{Line: idx.lineOf(lines.At(0).Start), Column: 1},
			End:   Point{Line: idx.lineOf(lines.At(lines.Len()-1).Stop - 1), Column: 1},
		},
	}
}

// segmentsValue joins a block's line segments into the body text, without
// the trailing newline.
func segmentsValue(lines *text.Segments, source []byte) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// kindName maps goldmark kind names ("Heading", "ListItem") to mdast-style
// type tags ("heading", "listItem").
func kindName(n gast.Node) string {
	name := n.Kind().String()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(source []byte) lineIndex {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) lineOf(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
