// Package extract turns parsed documentation sources into example records:
// code blocks found in markdown trees and examples attached to doc comments.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/doctest/internal/example"
	"github.com/mvp-joe/doctest/internal/mdast"
)

// Markdown walks a markdown tree and returns one example per code block, in
// document order. Names follow the "<basefile> #<index>" scheme with a
// zero-based block index; external tooling depends on that exact shape.
func Markdown(tree *mdast.Node, file string) []example.Example {
	var out []example.Example
	for i, node := range mdast.CodeNodes(tree) {
		if node.Position == nil {
			continue
		}
		out = append(out, example.Example{
			Name:       fmt.Sprintf("%s #%d", filepath.Base(file), i),
			Code:       node.Value,
			Language:   node.Lang,
			SourceFile: file,
			SourceLine: codeStartLine(node),
			Provenance: node,
		})
	}
	return out
}

// codeStartLine returns the 1-based line of the first body line. A fenced
// block's reported span includes the fence delimiters, so its span exceeds
// the body line count; the start line is then advanced past the opening
// fence. Indented blocks report the body span directly. An empty body has
// zero lines, so an empty fenced block still advances past the fence.
func codeStartLine(node *mdast.Node) int {
	bodyLines := 0
	if node.Value != "" {
		bodyLines = strings.Count(node.Value, "\n") + 1
	}
	span := node.Position.End.Line - node.Position.Start.Line
	if span > bodyLines {
		return node.Position.Start.Line + 1
	}
	return node.Position.Start.Line
}
