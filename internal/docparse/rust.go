package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// NewRust returns a scanner for Rust sources documented with "///" doc
// comments.
func NewRust() *Language {
	return &Language{
		name:       "rust",
		grammar:    sitter.NewLanguage(rust.Language()),
		lineLeader: "///",
		commentKinds: map[string]bool{
			"line_comment": true,
		},
		declKinds: map[string]bool{
			"function_item": true,
			"struct_item":   true,
			"enum_item":     true,
			"trait_item":    true,
			"const_item":    true,
			"static_item":   true,
			"mod_item":      true,
		},
		containerKinds: map[string]bool{
			"mod_item": true,
		},
	}
}
