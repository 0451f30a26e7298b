package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// NewRuby returns a scanner for Ruby sources documented with "#" comment
// blocks.
func NewRuby() *Language {
	return &Language{
		name:       "ruby",
		grammar:    sitter.NewLanguage(ruby.Language()),
		lineLeader: "#",
		commentKinds: map[string]bool{
			"comment": true,
		},
		declKinds: map[string]bool{
			"method":           true,
			"singleton_method": true,
			"class":            true,
			"module":           true,
		},
		containerKinds: map[string]bool{
			"class":  true,
			"module": true,
		},
	}
}
