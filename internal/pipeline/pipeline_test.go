package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/doctest/internal/example"
)

// Test Plan for the pipeline:
// - Discovery separates markdown from source files and honors ignores
// - Markdown and doc-comment examples flow into one render batch
// - Filtering drops examples before rendering
// - Map sources point at the files the examples came from
// - Progress is reported once per file

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestDiscovery_SplitsAndIgnores(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"README.md":            "# hi\n",
		"docs/guide.md":        "# guide\n",
		"src/math.js":          "function add() {}\n",
		"node_modules/x/y.md":  "# dep\n",
		"node_modules/x/y.js":  "ignored();\n",
		"build/out.md":         "# built\n",
		"src/notes.txt":        "not matched\n",
	})

	fd, err := NewFileDiscovery(root, DefaultSourcePatterns(), DefaultMarkdownPatterns(), DefaultIgnorePatterns())
	require.NoError(t, err)

	sources, markdown, err := fd.DiscoverFiles()
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.True(t, strings.HasSuffix(sources[0], filepath.Join("src", "math.js")))

	require.Len(t, markdown, 2)
	assert.True(t, strings.HasSuffix(markdown[0], "README.md"))
	assert.True(t, strings.HasSuffix(markdown[1], filepath.Join("docs", "guide.md")))
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"docs/guide.md": "# Guide\n\n```js\nguideExample();\n```\n",
		"src/math.js": "/**\n" +
			" * Adds numbers.\n" +
			" * @example add(1, 2);\n" +
			" */\n" +
			"function add(a, b) { return a + b; }\n",
	})

	var progressCalls int
	result, err := Run(context.Background(), Options{
		Root:     root,
		Progress: func(done, total int) { progressCalls++ },
	})
	require.NoError(t, err)

	require.Len(t, result.Examples, 2)
	names := []string{result.Examples[0].Name, result.Examples[1].Name}
	assert.Contains(t, names, "guide.md #0")
	assert.Contains(t, names, "math.js add #0")

	assert.Contains(t, result.Output, "guideExample();")
	assert.Contains(t, result.Output, "add(1, 2);")
	assert.NotContains(t, result.Output, "<<doctest:")

	require.Len(t, result.SourceMap.Sources, 2)
	assert.Equal(t, 2, progressCalls)
	assert.Equal(t, 2, result.Files)
}

func TestRun_Filter(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.md": "```js\njsCode();\n```\n\n```sh\nechoed\n```\n",
	})

	result, err := Run(context.Background(), Options{
		Root:   root,
		Filter: func(ex example.Example) bool { return ex.Language == "js" },
	})
	require.NoError(t, err)

	require.Len(t, result.Examples, 1)
	assert.Equal(t, "js", result.Examples[0].Language)
	assert.NotContains(t, result.Output, "echoed")
}

func TestRun_UnparseableReadFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// Dangling symlink: discovered as a markdown file, unreadable at
	// extraction time.
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.md"), filepath.Join(root, "a.md")))

	_, err := Run(context.Background(), Options{Root: root})
	require.Error(t, err)
}
