// Package render turns example records into the final output text. The
// correlator wraps an arbitrary, source-map-unaware render function and still
// produces a byte-accurate source map: examples are substituted with opaque
// single-line placeholder tokens before rendering, and every placeholder
// occurrence in the rendered text is replaced by the real code afterwards,
// recording a mapping per emitted line.
package render

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mvp-joe/doctest/internal/example"
	"github.com/mvp-joe/doctest/internal/sourcemap"
)

// Func is an opaque renderer: examples in, output text out. The only
// contract is that each example's Code field is reproduced verbatim, each on
// its own line with at most a uniform whitespace indent before it.
type Func func(examples []example.Example) (string, error)

// placeholderPattern matches a substitution site: a placeholder alone on its
// line, preceded only by whitespace. The whitespace capture is the
// renderer's chosen indent for that occurrence.
var placeholderPattern = regexp.MustCompile(`(?m)^([ \t]*)<<doctest:([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})>>`)

// Placeholder formats the opaque marker for a token.
func Placeholder(token string) string {
	return fmt.Sprintf("<<doctest:%s>>", token)
}

// Correlate renders examples through renderFn and returns the output text
// plus a source map naming outFile as the generated file. The renderer only
// ever sees placeholder tokens, so it may reorder, duplicate, wrap, and
// indent examples freely. A placeholder the renderer drops simply yields no
// mappings for that example; a token that matches the placeholder syntax but
// is unknown is passed through untouched.
func Correlate(examples []example.Example, outFile string, renderFn Func) (string, *sourcemap.Map, error) {
	byToken := make(map[string]example.Example, len(examples))
	subs := make([]example.Example, len(examples))
	for i, ex := range examples {
		token := uuid.NewString()
		byToken[token] = ex
		subs[i] = ex
		subs[i].Code = Placeholder(token)
	}

	rendered, err := renderFn(subs)
	if err != nil {
		return "", nil, fmt.Errorf("rendering examples: %w", err)
	}

	gen := sourcemap.NewGenerator(outFile)
	cache := newFileCache(gen)

	var out strings.Builder
	out.Grow(len(rendered))
	outLine := 1
	last := 0

	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(rendered, -1) {
		indent := rendered[m[2]:m[3]]
		token := rendered[m[4]:m[5]]

		ex, ok := byToken[token]
		if !ok {
			// Rendered content that coincidentally matches the placeholder
			// syntax. Leave it for the next between-match span.
			continue
		}

		between := rendered[last:m[0]]
		out.WriteString(between)
		outLine += strings.Count(between, "\n")
		last = m[1]

		for k, codeLine := range strings.Split(ex.Code, "\n") {
			if k > 0 {
				out.WriteByte('\n')
				outLine++
			}
			out.WriteString(indent)
			out.WriteString(codeLine)

			origCol, err := cache.column(ex.SourceFile, ex.SourceLine+k, codeLine)
			if err != nil {
				return "", nil, err
			}
			gen.AddMapping(sourcemap.Mapping{
				Generated: sourcemap.Position{Line: outLine, Column: len(indent)},
				Source:    ex.SourceFile,
				Original:  sourcemap.Position{Line: ex.SourceLine + k, Column: origCol},
			})
		}
	}

	out.WriteString(rendered[last:])
	return out.String(), gen.Map(), nil
}

// fileCache reads original files at most once per Correlate call, for
// column recovery and sourcesContent embedding. Owned by a single call,
// never shared.
type fileCache struct {
	gen   *sourcemap.Generator
	lines map[string][]string
}

func newFileCache(gen *sourcemap.Generator) *fileCache {
	return &fileCache{gen: gen, lines: make(map[string][]string)}
}

// column recovers the original column of codeLine on the given 1-based line:
// the count of leading characters the extractor stripped, i.e. the original
// line length minus the code line length. Extractors only ever strip
// prefixes, so the code line is a suffix of the original.
func (c *fileCache) column(path string, lineNo int, codeLine string) (int, error) {
	lines, ok := c.lines[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading original source for map: %w", err)
		}
		c.gen.SetSourceContent(path, string(data))
		lines = strings.Split(string(data), "\n")
		c.lines[path] = lines
	}

	if lineNo < 1 || lineNo > len(lines) {
		return 0, nil
	}
	col := len(lines[lineNo-1]) - len(codeLine)
	if col < 0 {
		return 0, nil
	}
	return col, nil
}
