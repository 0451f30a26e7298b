package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// NewPython returns a scanner for Python sources documented with "#" comment
// blocks directly above a def or class.
func NewPython() *Language {
	return &Language{
		name:       "python",
		grammar:    sitter.NewLanguage(python.Language()),
		lineLeader: "#",
		commentKinds: map[string]bool{
			"comment": true,
		},
		declKinds: map[string]bool{
			"function_definition": true,
			"class_definition":    true,
		},
		containerKinds: map[string]bool{
			"class_definition": true,
		},
	}
}
