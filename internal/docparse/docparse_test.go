package docparse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/doctest/internal/mdast"
)

// Test Plan for docparse:
// - splitTags separates description lines from tags and records tag offsets
// - Tag bodies span continuation lines up to the next tag
// - stripBlockComment removes only prefixes and delimiters
// - TypeScript: JSDoc on functions and on methods inside classes,
//   with container path tracking
// - Python and Rust: line-comment blocks with the anchor-line convention
// - Undocumented declarations produce nothing

func TestSplitTags(t *testing.T) {
	t.Parallel()

	content := []string{
		"Adds numbers.",
		"",
		"@example add(1, 2);",
		"@param a first operand",
		"continued",
		"",
	}

	desc, tags := splitTags(content)
	assert.Equal(t, []string{"Adds numbers.", ""}, desc)
	require.Len(t, tags, 2)

	assert.Equal(t, "example", tags[0].Title)
	assert.Equal(t, "add(1, 2);", tags[0].Description)
	assert.Equal(t, 2, tags[0].LineNumber)

	assert.Equal(t, "param", tags[1].Title)
	assert.Equal(t, "a first operand\ncontinued", tags[1].Description)
	assert.Equal(t, 3, tags[1].LineNumber)
}

func TestSplitTags_NoTags(t *testing.T) {
	t.Parallel()

	desc, tags := splitTags([]string{"just text"})
	assert.Equal(t, []string{"just text"}, desc)
	assert.Empty(t, tags)
}

func TestStripBlockComment(t *testing.T) {
	t.Parallel()

	text := "/**\n * Summary line.\n *\n *     indented();\n */"
	lines := stripBlockComment(text)
	assert.Equal(t, []string{"Summary line.", "", "    indented();"}, lines)
}

func TestStripBlockComment_SingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Summary."}, stripBlockComment("/** Summary. */"))
}

func TestTypeScript_DocumentedFunction(t *testing.T) {
	t.Parallel()

	source := []byte(`/**
 * Adds numbers.
 *
 * @example add(1, 2) === 3;
 */
function add(a, b) { return a + b; }
`)

	docs, err := NewTypeScript().ParseFile(context.Background(), "math.js", source)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, 1, doc.Loc.Start.Line)
	assert.Equal(t, "math.js", doc.Context.File)
	assert.Equal(t, "add", doc.DottedPath())

	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "example", doc.Tags[0].Title)
	assert.Equal(t, "add(1, 2) === 3;", doc.Tags[0].Description)
	assert.Equal(t, 3, doc.Tags[0].LineNumber)
}

func TestTypeScript_MethodPathIncludesClass(t *testing.T) {
	t.Parallel()

	source := []byte(`class Point {
  /**
   * Moves the point.
   * @example p.move(1);
   */
  move(dx) {}
}
`)

	docs, err := NewTypeScript().ParseFile(context.Background(), "point.js", source)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "Point.move", docs[0].DottedPath())
	assert.Equal(t, 2, docs[0].Loc.Start.Line)
}

func TestTypeScript_DescriptionCodeBlock(t *testing.T) {
	t.Parallel()

	source := []byte("/**\n * Usage:\n *\n * ```js\n * add(1, 2);\n * ```\n */\nfunction add(a, b) {}\n")

	docs, err := NewTypeScript().ParseFile(context.Background(), "math.js", source)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	codes := mdast.CodeNodes(docs[0].Description)
	require.Len(t, codes, 1)
	assert.Equal(t, "add(1, 2);", codes[0].Value)
	assert.Equal(t, "js", codes[0].Lang)
	// Description line 3 is the opening fence; line 1 of the description is
	// file line Loc.Start.Line+1.
	assert.Equal(t, 3, codes[0].Position.Start.Line)
}

func TestTypeScript_UndocumentedDeclarationSkipped(t *testing.T) {
	t.Parallel()

	source := []byte("// plain comment\nfunction bare() {}\n")

	docs, err := NewTypeScript().ParseFile(context.Background(), "bare.js", source)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPython_LineCommentBlock(t *testing.T) {
	t.Parallel()

	source := []byte(`# Frobnicates.
#
# @example frob(1)
def frob(x):
    return x
`)

	docs, err := NewPython().ParseFile(context.Background(), "frob.py", source)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	// Anchor is the line above the first comment line, so content line 0
	// maps to file line 1.
	assert.Equal(t, 0, doc.Loc.Start.Line)
	assert.Equal(t, "frob", doc.DottedPath())
	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "example", doc.Tags[0].Title)
	assert.Equal(t, 2, doc.Tags[0].LineNumber)
}

func TestRust_DocComments(t *testing.T) {
	t.Parallel()

	source := []byte(`/// Doubles a value.
///
/// @example double(2)
fn double(x: i32) -> i32 { x * 2 }
`)

	docs, err := NewRust().ParseFile(context.Background(), "double.rs", source)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "double", doc.DottedPath())
	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "double(2)", doc.Tags[0].Description)
}

func TestForFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typescript", ForFile("a/b.ts").Name())
	assert.Equal(t, "typescript", ForFile("a/b.js").Name())
	assert.Equal(t, "python", ForFile("x.py").Name())
	assert.Equal(t, "rust", ForFile("x.rs").Name())
	assert.Nil(t, ForFile("x.txt"))
}
