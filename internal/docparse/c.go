package docparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// NewC returns a scanner for C sources documented with /** */ comments.
func NewC() *Language {
	return &Language{
		name:    "c",
		grammar: sitter.NewLanguage(c.Language()),
		commentKinds: map[string]bool{
			"comment": true,
		},
		declKinds: map[string]bool{
			"function_definition": true,
			"struct_specifier":    true,
			"enum_specifier":      true,
			"type_definition":     true,
			"declaration":         true,
		},
		containerKinds: map[string]bool{},
		nameOf:         cName,
	}
}

// cName resolves declaration names through declarator chains: a
// function_definition's name lives under its "declarator" field, not a
// "name" field.
func cName(n *sitter.Node, source []byte) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, source)
	}
	decl := n.ChildByFieldName("declarator")
	if decl == nil {
		return ""
	}
	var name string
	walkTree(decl, func(c *sitter.Node) bool {
		if name != "" {
			return false
		}
		switch c.Kind() {
		case "identifier", "type_identifier", "field_identifier":
			name = nodeText(c, source)
			return false
		}
		return true
	})
	return name
}
