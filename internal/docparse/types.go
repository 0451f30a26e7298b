package docparse

import "github.com/mvp-joe/doctest/internal/mdast"

// Point is a 1-based source line position.
type Point struct {
	Line int
}

// Loc is the source span of a doc comment. Start.Line is the comment anchor
// line: cleaned comment content begins on the line after it. For block
// comments the anchor is the opening delimiter line; for runs of line
// comments it is the line above the first comment line, so both styles share
// one line-offset convention.
type Loc struct {
	Start Point
}

// Context records where a documented symbol came from.
type Context struct {
	File string
}

// Tag is one parsed annotation, e.g. "@example foo();".
type Tag struct {
	// Title is the annotation name without the leading "@".
	Title string

	// Description is the annotation body: the text after the title on the
	// tag's own line, plus any continuation lines up to the next tag, with
	// comment leaders stripped.
	Description string

	// LineNumber is the 0-based offset of the tag line within the cleaned
	// comment content (content line 0 is the line after Loc.Start.Line).
	LineNumber int
}

// PathSegment is one ancestor in a symbol's dotted path.
type PathSegment struct {
	Name string
}

// Documentation is the structured doc comment of one documented symbol.
type Documentation struct {
	Loc     Loc
	Context Context

	// Description is the free-text portion of the comment (everything
	// before the first tag), parsed as markdown. Line 1 of the tree
	// corresponds to content line 0.
	Description *mdast.Node

	// Tags are the annotations in source order.
	Tags []Tag

	// Path is the symbol's ancestry, outermost container first, the symbol
	// itself last.
	Path []PathSegment
}

// DottedPath joins the path segment names with dots.
func (d *Documentation) DottedPath() string {
	out := ""
	for i, seg := range d.Path {
		if i > 0 {
			out += "."
		}
		out += seg.Name
	}
	return out
}
