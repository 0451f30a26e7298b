package extract

import (
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/doctest/internal/docparse"
	"github.com/mvp-joe/doctest/internal/example"
)

// candidate is one example found in a doc comment, before names are
// assigned.
type candidate struct {
	key        string
	code       string
	language   string
	sourceFile string
	sourceLine int
	provenance any
}

// DocComments extracts examples from a batch of documented symbols. Two
// sources per symbol: explicit @example annotations, then code blocks inside
// the free-text description. Names follow
// "<basefile> <dotted symbol path> #<index>"; indexes are assigned per
// (basefile, path) key over the whole batch, so symbols that happen to share
// a key continue one counter instead of colliding.
func DocComments(docs []*docparse.Documentation) []example.Example {
	var cands []candidate
	for _, doc := range docs {
		cands = append(cands, docCandidates(doc)...)
	}

	counters := make(map[string]int)
	out := make([]example.Example, 0, len(cands))
	for _, c := range cands {
		idx := counters[c.key]
		counters[c.key]++
		out = append(out, example.Example{
			Name:       fmt.Sprintf("%s #%d", c.key, idx),
			Code:       c.code,
			Language:   c.language,
			SourceFile: c.sourceFile,
			SourceLine: c.sourceLine,
			Provenance: c.provenance,
		})
	}
	return out
}

// docCandidates yields one symbol's examples in encounter order: annotation
// examples in tag order, then description-derived blocks in extraction
// order. This is deliberately not sorted by source line.
func docCandidates(doc *docparse.Documentation) []candidate {
	key := fmt.Sprintf("%s %s", filepath.Base(doc.Context.File), doc.DottedPath())

	var out []candidate
	for _, tag := range doc.Tags {
		if tag.Title != "example" || tag.Description == "" {
			continue
		}
		// The +1 corrects how tag line offsets are reported. It is only
		// accurate when the annotation's content begins on the tag's own
		// line; bodies that start on the following line map one line high.
		out = append(out, candidate{
			key:        key,
			code:       tag.Description,
			sourceFile: doc.Context.File,
			sourceLine: tag.LineNumber + doc.Loc.Start.Line + 1,
			provenance: doc,
		})
	}

	if doc.Description == nil {
		return out
	}

	// Description line numbers are relative to the description text; shift
	// them by where the description actually starts in the file.
	offset := doc.Loc.Start.Line
	for _, tag := range doc.Tags {
		if tag.Title == "description" {
			offset += tag.LineNumber
		}
	}
	for _, rec := range Markdown(doc.Description, doc.Context.File) {
		out = append(out, candidate{
			key:        key,
			code:       rec.Code,
			language:   rec.Language,
			sourceFile: rec.SourceFile,
			sourceLine: rec.SourceLine + offset,
			provenance: rec.Provenance,
		})
	}
	return out
}
