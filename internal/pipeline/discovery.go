package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery walks a root directory and splits matching files into
// markdown documents and doc-commented source files.
type FileDiscovery struct {
	rootDir          string
	sourcePatterns   []compiledPattern
	markdownPatterns []compiledPattern
	ignorePatterns   []compiledPattern
}

// NewFileDiscovery compiles the glob pattern sets for a root directory.
func NewFileDiscovery(rootDir string, sourcePatterns, markdownPatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}

	var err error
	if fd.sourcePatterns, err = compilePatterns(sourcePatterns); err != nil {
		return nil, err
	}
	if fd.markdownPatterns, err = compilePatterns(markdownPatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	var compiled []compiledPattern
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// DiscoverFiles walks the directory tree and returns source and markdown
// files, each sorted for deterministic downstream naming.
func (fd *FileDiscovery) DiscoverFiles() (sourceFiles []string, markdownFiles []string, err error) {
	sourceFiles = []string{}
	markdownFiles = []string{}

	err = filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if fd.shouldIgnore(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.sourcePatterns) {
			sourceFiles = append(sourceFiles, path)
			return nil
		}
		if fd.matchesAnyPattern(relPath, fd.markdownPatterns) {
			markdownFiles = append(markdownFiles, path)
		}
		return nil
	})

	sort.Strings(sourceFiles)
	sort.Strings(markdownFiles)
	return sourceFiles, markdownFiles, err
}

func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// A bare directory name should also match its "dir/**" ignore pattern.
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// "**/*.md" should match root-level "README.md" too; retry with the
	// **/ prefix removed for paths in the root.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}
	return false
}
