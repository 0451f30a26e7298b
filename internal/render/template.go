package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/mvp-joe/doctest/internal/example"
)

// defaultTemplate wraps each example in a tape test. The code placeholder
// sits alone on its line with a uniform two-space indent, as the correlator
// requires.
const defaultTemplate = `var test = require('tape');
{{range .}}
test({{printf "%q" .Name}}, function (t) {
  {{.Code}}
  t.end();
});
{{end}}`

// Default returns the built-in tape-harness renderer.
func Default() Func {
	fn, err := Template(defaultTemplate)
	if err != nil {
		panic(err)
	}
	return fn
}

// AppendMappingURL appends the standard source map reference trailer to the
// output text.
func AppendMappingURL(output, mapName string) string {
	if output != "" && !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	return output + "//# sourceMappingURL=" + mapName + "\n"
}

// Template compiles a text/template into a render Func. The template is
// executed with the example slice as its data; it must emit each example's
// Code field on its own line, unmodified apart from indentation.
func Template(text string) (Func, error) {
	tmpl, err := template.New("doctest").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing render template: %w", err)
	}
	return func(examples []example.Example) (string, error) {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, examples); err != nil {
			return "", fmt.Errorf("executing render template: %w", err)
		}
		return sb.String(), nil
	}, nil
}
