// Package sourcemap generates source map v3 documents: the JSON shape
// (version, sources, sourcesContent, names, mappings) with base64 VLQ
// encoded mappings, consumable by any standard source-map reader.
package sourcemap

import (
	"encoding/json"
	"sort"
)

// Position is a location in a text document. Line is 1-based, Column is
// 0-based, following the convention of source map tooling APIs.
type Position struct {
	Line   int
	Column int
}

// Mapping associates one generated position with its original position.
type Mapping struct {
	Generated Position
	Source    string
	Original  Position
}

// Map is the serialized source map v3 document.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// JSON serializes the map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Generator accumulates mappings and produces a Map. Not safe for concurrent
// use; each render call owns its own generator.
type Generator struct {
	file        string
	sources     []string
	sourceIndex map[string]int
	content     map[string]string
	mappings    []Mapping
}

// NewGenerator returns a generator for the given generated file name.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:        file,
		sourceIndex: make(map[string]int),
		content:     make(map[string]string),
	}
}

// AddMapping records one generated→original association. Sources are indexed
// in order of first appearance.
func (g *Generator) AddMapping(m Mapping) {
	if _, ok := g.sourceIndex[m.Source]; !ok {
		g.sourceIndex[m.Source] = len(g.sources)
		g.sources = append(g.sources, m.Source)
	}
	g.mappings = append(g.mappings, m)
}

// SetSourceContent embeds the original text of a source file in the map.
func (g *Generator) SetSourceContent(source, content string) {
	g.content[source] = content
}

// Map encodes the accumulated mappings into a source map v3 document.
func (g *Generator) Map() *Map {
	mappings := make([]Mapping, len(g.mappings))
	copy(mappings, g.mappings)
	sort.SliceStable(mappings, func(i, j int) bool {
		if mappings[i].Generated.Line != mappings[j].Generated.Line {
			return mappings[i].Generated.Line < mappings[j].Generated.Line
		}
		return mappings[i].Generated.Column < mappings[j].Generated.Column
	})

	out := &Map{
		Version:  3,
		File:     g.file,
		Sources:  g.sources,
		Names:    []string{},
		Mappings: g.encode(mappings),
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}

	if len(g.content) > 0 {
		out.SourcesContent = make([]*string, len(g.sources))
		for i, src := range g.sources {
			if text, ok := g.content[src]; ok {
				text := text
				out.SourcesContent[i] = &text
			}
		}
	}

	return out
}

// encode produces the semicolon/comma structured VLQ mappings string. All
// deltas are relative to the previous segment, except the generated column
// which resets at each line boundary.
func (g *Generator) encode(mappings []Mapping) string {
	var (
		buf          []byte
		prevGenLine  = 1
		prevGenCol   int
		prevSource   int
		prevOrigLine int
		prevOrigCol  int
		lineHasSeg   bool
	)

	for _, m := range mappings {
		for prevGenLine < m.Generated.Line {
			buf = append(buf, ';')
			prevGenLine++
			prevGenCol = 0
			lineHasSeg = false
		}
		if lineHasSeg {
			buf = append(buf, ',')
		}
		lineHasSeg = true

		srcIdx := g.sourceIndex[m.Source]
		origLine := m.Original.Line - 1 // 0-based in the wire format

		buf = appendVLQ(buf, m.Generated.Column-prevGenCol)
		buf = appendVLQ(buf, srcIdx-prevSource)
		buf = appendVLQ(buf, origLine-prevOrigLine)
		buf = appendVLQ(buf, m.Original.Column-prevOrigCol)

		prevGenCol = m.Generated.Column
		prevSource = srcIdx
		prevOrigLine = origLine
		prevOrigCol = m.Original.Column
	}

	return string(buf)
}

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// appendVLQ appends the base64 VLQ encoding of n: sign in the low bit, then
// 5-bit groups least significant first, with bit 6 as the continuation flag.
func appendVLQ(buf []byte, n int) []byte {
	v := n << 1
	if n < 0 {
		v = (-n)<<1 | 1
	}
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			digit |= 0x20
		}
		buf = append(buf, base64Chars[digit])
		if v == 0 {
			return buf
		}
	}
}
