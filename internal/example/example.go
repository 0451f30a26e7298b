// Package example defines the canonical record for one extracted code
// example. Records are produced by the extractors, optionally filtered by the
// caller, and consumed exactly once by the correlating renderer.
package example

// Example is one testable code sample with source provenance.
type Example struct {
	// Name is the human-readable test identifier. Extractors guarantee
	// uniqueness within one batch; downstream code treats it as an opaque
	// label.
	Name string

	// Code is the verbatim text of the example body, exactly as it appears
	// in the source file: internal indentation preserved, fence syntax and
	// comment leaders excluded. Every line of Code must be a suffix of the
	// corresponding line in SourceFile, or source-map column recovery
	// breaks.
	Code string

	// Language is the fenced block's info string ("js", "go", ...).
	// Empty for indented blocks.
	Language string

	// SourceFile is the path to the originating file.
	SourceFile string

	// SourceLine is the 1-based line in SourceFile where Code's first line
	// begins.
	SourceLine int

	// Provenance carries extractor-specific metadata (the originating AST
	// node or documentation object). Never interpreted downstream.
	Provenance any
}

// LineCount returns the number of newline-delimited lines in Code.
func (e Example) LineCount() int {
	n := 1
	for _, c := range e.Code {
		if c == '\n' {
			n++
		}
	}
	return n
}

// Filter returns the examples for which keep returns true, preserving order.
// Filtering before rendering never affects the mappings of the surviving
// examples.
func Filter(examples []Example, keep func(Example) bool) []Example {
	out := make([]Example, 0, len(examples))
	for _, ex := range examples {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	return out
}
