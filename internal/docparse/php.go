package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// NewPHP returns a scanner for PHP sources documented with PHPDoc /** */
// comments.
func NewPHP() *Language {
	return &Language{
		name:    "php",
		grammar: sitter.NewLanguage(php.LanguagePHP()),
		commentKinds: map[string]bool{
			"comment": true,
		},
		declKinds: map[string]bool{
			"function_definition":   true,
			"method_declaration":    true,
			"class_declaration":     true,
			"interface_declaration": true,
			"trait_declaration":     true,
		},
		containerKinds: map[string]bool{
			"class_declaration":     true,
			"interface_declaration": true,
			"trait_declaration":     true,
		},
	}
}
