// Package docparse extracts structured documentation objects from source
// files. A tree-sitter scanner finds doc comments attached to declarations
// and parses them into per-symbol Documentation values: location, free-text
// description (as a markdown tree), ordered tags, and the symbol's container
// path. One scanner per language, configured over a shared walk.
package docparse

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/doctest/internal/mdast"
)

// Language is a doc-comment scanner for one source language.
type Language struct {
	name           string
	grammar        *sitter.Language
	commentKinds   map[string]bool
	declKinds      map[string]bool
	containerKinds map[string]bool

	// lineLeader is the line-comment doc marker ("///", "#"). Empty means
	// the language uses /** ... */ block comments.
	lineLeader string

	// nameOf overrides declaration name extraction when the grammar does
	// not expose a plain "name" field.
	nameOf func(n *sitter.Node, source []byte) string
}

// Name returns the language identifier ("typescript", "python", ...).
func (l *Language) Name() string { return l.name }

// ParseFile scans a source file and returns one Documentation per documented
// symbol, in source order.
func (l *Language) ParseFile(ctx context.Context, filePath string, source []byte) ([]*Documentation, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(l.grammar)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", l.name, filePath)
	}
	defer tree.Close()

	var docs []*Documentation
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if err := ctx.Err(); err != nil {
			return false
		}
		if !l.declKinds[n.Kind()] {
			return true
		}
		if doc := l.document(n, filePath, source); doc != nil {
			docs = append(docs, doc)
		}
		return true
	})
	return docs, ctx.Err()
}

// document builds the Documentation for one declaration, or nil when it has
// no doc comment directly above it.
func (l *Language) document(n *sitter.Node, filePath string, source []byte) *Documentation {
	name := l.declName(n, source)
	if name == "" {
		return nil
	}

	anchor, content := l.commentBlock(n, source)
	if content == nil {
		return nil
	}

	descLines, tags := splitTags(content)

	return &Documentation{
		Loc:         Loc{Start: Point{Line: anchor}},
		Context:     Context{File: filePath},
		Description: mdast.Parse([]byte(strings.Join(descLines, "\n"))),
		Tags:        tags,
		Path:        l.symbolPath(n, source, name),
	}
}

// commentBlock locates the doc comment directly above n and returns its
// anchor line plus the cleaned content lines (content line i sits at file
// line anchor+1+i). Returns nil content when there is no attached doc
// comment.
func (l *Language) commentBlock(n *sitter.Node, source []byte) (int, []string) {
	declLine := startLine(n)

	if l.lineLeader != "" {
		// Contiguous run of doc line comments ending on the line above the
		// declaration.
		var run []*sitter.Node
		wantLine := declLine - 1
		for prev := n.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
			if !l.commentKinds[prev.Kind()] || startLine(prev) != wantLine {
				break
			}
			text := nodeText(prev, source)
			if !strings.HasPrefix(strings.TrimLeft(text, " \t"), l.lineLeader) {
				break
			}
			run = append([]*sitter.Node{prev}, run...)
			wantLine--
		}
		if len(run) == 0 {
			return 0, nil
		}
		content := make([]string, len(run))
		for i, c := range run {
			content[i] = stripLineLeader(nodeText(c, source), l.lineLeader)
		}
		return startLine(run[0]) - 1, content
	}

	prev := n.PrevNamedSibling()
	if prev == nil || !l.commentKinds[prev.Kind()] || endLine(prev) != declLine-1 {
		return 0, nil
	}
	text := nodeText(prev, source)
	if !strings.HasPrefix(text, "/**") {
		return 0, nil
	}
	return startLine(prev), stripBlockComment(text)
}

func (l *Language) declName(n *sitter.Node, source []byte) string {
	if l.nameOf != nil {
		if name := l.nameOf(n, source); name != "" {
			return name
		}
	}
	return defaultName(n, source)
}

// defaultName reads the "name" field, falling back to the first declarator
// name for variable-style declarations.
func defaultName(n *sitter.Node, source []byte) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, source)
	}
	var name string
	walkTree(n, func(c *sitter.Node) bool {
		if name != "" {
			return false
		}
		if c.Kind() == "variable_declarator" {
			if nn := c.ChildByFieldName("name"); nn != nil {
				name = nodeText(nn, source)
				return false
			}
		}
		return true
	})
	return name
}

// symbolPath walks the ancestor chain collecting container names, outermost
// first, with the symbol itself last.
func (l *Language) symbolPath(n *sitter.Node, source []byte, name string) []PathSegment {
	segs := []PathSegment{{Name: name}}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if !l.containerKinds[p.Kind()] {
			continue
		}
		if pn := l.declName(p, source); pn != "" {
			segs = append([]PathSegment{{Name: pn}}, segs...)
		}
	}
	return segs
}

var tagPattern = regexp.MustCompile(`^@(\S+)[ \t]?`)

// splitTags separates cleaned comment content into the leading free-text
// description and the ordered tag list. A tag's body is the remainder of its
// own line plus continuation lines up to the next tag, with trailing blank
// lines dropped.
func splitTags(content []string) ([]string, []Tag) {
	first := len(content)
	for i, line := range content {
		if tagPattern.MatchString(line) {
			first = i
			break
		}
	}

	descLines := content[:first]
	var tags []Tag
	for i := first; i < len(content); i++ {
		m := tagPattern.FindStringSubmatch(content[i])
		if m == nil {
			continue
		}
		body := []string{content[i][len(m[0]):]}
		end := i + 1
		for ; end < len(content) && !tagPattern.MatchString(content[end]); end++ {
			body = append(body, content[end])
		}
		for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
			body = body[:len(body)-1]
		}
		tags = append(tags, Tag{
			Title:       m[1],
			Description: strings.Join(body, "\n"),
			LineNumber:  i,
		})
		i = end - 1
	}
	return descLines, tags
}

// stripBlockComment cleans a /** ... */ comment into content lines. The
// opening delimiter line is dropped (it is the anchor), the closing
// delimiter is removed, and each line loses its leading whitespace and "* "
// leader. Only prefixes are ever removed, so every cleaned line remains a
// suffix of its original source line.
func stripBlockComment(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		inner := strings.TrimSuffix(strings.TrimPrefix(lines[0], "/**"), "*/")
		return []string{strings.TrimSpace(inner)}
	}

	content := lines[1:]
	last := len(content) - 1
	if strings.TrimSpace(content[last]) == "*/" {
		content = content[:last]
	} else {
		content[last] = strings.TrimSuffix(strings.TrimRight(content[last], " \t"), "*/")
	}

	out := make([]string, len(content))
	for i, line := range content {
		out[i] = stripStarLeader(line)
	}
	return out
}

func stripStarLeader(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "* "):
		return trimmed[2:]
	case trimmed == "*":
		return ""
	default:
		return trimmed
	}
}

func stripLineLeader(line, leader string) string {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, leader)
	return strings.TrimPrefix(trimmed, " ")
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

func startLine(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

func endLine(n *sitter.Node) int {
	return int(n.EndPosition().Row) + 1
}

// walkTree visits node and its children in pre-order. Children are skipped
// when the visitor returns false.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// ForFile returns the scanner for a file path by extension, or nil when the
// language is not supported.
func ForFile(path string) *Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs":
		return NewTypeScript()
	case ".py":
		return NewPython()
	case ".rb":
		return NewRuby()
	case ".rs":
		return NewRust()
	case ".c", ".h":
		return NewC()
	case ".java":
		return NewJava()
	case ".php":
		return NewPHP()
	default:
		return nil
	}
}
