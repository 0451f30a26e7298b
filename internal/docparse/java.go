package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// NewJava returns a scanner for Java sources documented with Javadoc /** */
// comments.
func NewJava() *Language {
	return &Language{
		name:    "java",
		grammar: sitter.NewLanguage(java.Language()),
		commentKinds: map[string]bool{
			"block_comment": true,
		},
		declKinds: map[string]bool{
			"class_declaration":       true,
			"interface_declaration":   true,
			"enum_declaration":        true,
			"method_declaration":      true,
			"constructor_declaration": true,
			"field_declaration":       true,
		},
		containerKinds: map[string]bool{
			"class_declaration":     true,
			"interface_declaration": true,
			"enum_declaration":      true,
		},
	}
}
