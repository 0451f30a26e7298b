package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// NewTypeScript returns a scanner for TypeScript and JavaScript sources
// documented with JSDoc-style /** */ comments.
func NewTypeScript() *Language {
	return &Language{
		name:    "typescript",
		grammar: sitter.NewLanguage(typescript.LanguageTypescript()),
		commentKinds: map[string]bool{
			"comment": true,
		},
		declKinds: map[string]bool{
			"class_declaration":      true,
			"interface_declaration":  true,
			"type_alias_declaration": true,
			"enum_declaration":       true,
			"function_declaration":   true,
			"method_definition":      true,
			"lexical_declaration":    true,
			"variable_declaration":   true,
		},
		containerKinds: map[string]bool{
			"class_declaration":     true,
			"interface_declaration": true,
			"enum_declaration":      true,
		},
	}
}
