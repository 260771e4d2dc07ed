package dump

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/pyhdl/ast"
)

// YAML renders n as a YAML document. Keys keep declaration order.
func YAML(n ast.Node, opts Options) (string, error) {
	data, err := yaml.Marshal(toMapSlice(build(n), opts))
	if err != nil {
		return "", fmt.Errorf("failed to marshal tree: %w", err)
	}

	return string(data), nil
}

func toMapSlice(e *element, opts Options) any {
	if e == nil {
		return nil
	}

	m := yaml.MapSlice{{Key: "kind", Value: e.kind}}

	if opts.Positions && !e.pos.IsZero() {
		m = append(m, yaml.MapItem{Key: "pos", Value: yaml.MapSlice{
			{Key: "line", Value: e.pos.Line},
			{Key: "col", Value: e.pos.Column},
			{Key: "offset", Value: e.pos.Offset},
		}})
	}

	for _, a := range e.attrs {
		m = append(m, yaml.MapItem{Key: a.name, Value: a.value})
	}

	for _, f := range e.fields {
		if !f.list {
			m = append(m, yaml.MapItem{Key: f.name, Value: toMapSlice(f.items[0], opts)})
			continue
		}

		items := make([]any, 0, len(f.items))
		for _, item := range f.items {
			items = append(items, toMapSlice(item, opts))
		}

		m = append(m, yaml.MapItem{Key: f.name, Value: items})
	}

	return m
}
