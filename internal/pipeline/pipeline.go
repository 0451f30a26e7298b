// Package pipeline composes discovery, extraction, filtering, and the
// correlating renderer into one end-to-end run: root paths in, rendered test
// file plus source map out.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/doctest/internal/docparse"
	"github.com/mvp-joe/doctest/internal/example"
	"github.com/mvp-joe/doctest/internal/extract"
	"github.com/mvp-joe/doctest/internal/mdast"
	"github.com/mvp-joe/doctest/internal/render"
	"github.com/mvp-joe/doctest/internal/sourcemap"
)

// Options configures one pipeline run.
type Options struct {
	Root string

	// SourcePatterns select doc-commented source files; MarkdownPatterns
	// select markdown documents. IgnorePatterns exclude paths from both.
	SourcePatterns   []string
	MarkdownPatterns []string
	IgnorePatterns   []string

	// OutFile names the generated file inside the source map.
	OutFile string

	// Renderer produces the output text. Defaults to the built-in tape
	// harness template.
	Renderer render.Func

	// Filter drops examples before rendering. Nil keeps everything.
	Filter func(example.Example) bool

	// Progress is called after each file is extracted. Nil disables
	// reporting.
	Progress func(done, total int)

	// Cache memoizes per-file extraction across runs. Nil extracts every
	// file every run.
	Cache *ExtractionCache
}

// Result is the outcome of a pipeline run.
type Result struct {
	Output    string
	SourceMap *sourcemap.Map
	Examples  []example.Example
	Files     int
}

// DefaultSourcePatterns matches the languages the doc-comment scanners
// support.
func DefaultSourcePatterns() []string {
	return []string{
		"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mjs",
		"**/*.py", "**/*.rb", "**/*.rs", "**/*.c", "**/*.h",
		"**/*.java", "**/*.php",
	}
}

// DefaultMarkdownPatterns matches markdown documents.
func DefaultMarkdownPatterns() []string {
	return []string{"**/*.md", "**/*.markdown"}
}

// DefaultIgnorePatterns excludes dependency and build output directories.
func DefaultIgnorePatterns() []string {
	return []string{
		"node_modules/**", "vendor/**", ".git/**",
		"dist/**", "build/**", "target/**",
	}
}

// Run executes discovery → extraction → filter → correlated render.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.SourcePatterns == nil {
		opts.SourcePatterns = DefaultSourcePatterns()
	}
	if opts.MarkdownPatterns == nil {
		opts.MarkdownPatterns = DefaultMarkdownPatterns()
	}
	if opts.IgnorePatterns == nil {
		opts.IgnorePatterns = DefaultIgnorePatterns()
	}
	if opts.OutFile == "" {
		opts.OutFile = "doctest.js"
	}
	if opts.Renderer == nil {
		opts.Renderer = render.Default()
	}

	discovery, err := NewFileDiscovery(opts.Root, opts.SourcePatterns, opts.MarkdownPatterns, opts.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("compiling discovery patterns: %w", err)
	}
	sourceFiles, markdownFiles, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	total := len(sourceFiles) + len(markdownFiles)
	done := 0
	report := func() {
		done++
		if opts.Progress != nil {
			opts.Progress(done, total)
		}
	}

	extractFile := func(file string, fn func() ([]example.Example, error)) ([]example.Example, error) {
		if opts.Cache != nil {
			if batch, ok := opts.Cache.Get(file); ok {
				return batch, nil
			}
		}
		batch, err := fn()
		if err != nil {
			return nil, err
		}
		if opts.Cache != nil {
			opts.Cache.Put(file, batch)
		}
		return batch, nil
	}

	var examples []example.Example
	for _, file := range markdownFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := extractFile(file, func() ([]example.Example, error) {
			return ExtractMarkdownFile(file)
		})
		if err != nil {
			return nil, err
		}
		examples = append(examples, batch...)
		report()
	}
	for _, file := range sourceFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := extractFile(file, func() ([]example.Example, error) {
			return ExtractSourceFile(ctx, file)
		})
		if err != nil {
			return nil, err
		}
		examples = append(examples, batch...)
		report()
	}

	if opts.Filter != nil {
		examples = example.Filter(examples, opts.Filter)
	}

	output, smap, err := render.Correlate(examples, opts.OutFile, opts.Renderer)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:    output,
		SourceMap: smap,
		Examples:  examples,
		Files:     total,
	}, nil
}

// ExtractMarkdownFile reads and extracts one markdown document.
func ExtractMarkdownFile(file string) ([]example.Example, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return extract.Markdown(mdast.Parse(data), file), nil
}

// ExtractSourceFile parses one source file's doc comments and extracts their
// examples. Files without a supported language extension yield nothing.
func ExtractSourceFile(ctx context.Context, file string) ([]example.Example, error) {
	lang := docparse.ForFile(file)
	if lang == nil {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	docs, err := lang.ParseFile(ctx, file, data)
	if err != nil {
		return nil, err
	}
	return extract.DocComments(docs), nil
}
