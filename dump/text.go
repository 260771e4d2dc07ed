package dump

import (
	"fmt"
	"strings"

	"github.com/shibukawa/pyhdl/ast"
)

// Text renders n as an indented tree, one node per line. Empty links are
// printed as "-" and empty lists as "[]".
func Text(n ast.Node, opts Options) string {
	var sb strings.Builder

	root := build(n)
	if root == nil {
		return "-\n"
	}

	writeText(&sb, root, 0, opts)

	return sb.String()
}

func writeText(sb *strings.Builder, e *element, depth int, opts Options) {
	indent := strings.Repeat("  ", depth)

	sb.WriteString(indent)
	sb.WriteString(e.kind)

	for _, a := range e.attrs {
		fmt.Fprintf(sb, " %s=%s", a.name, a.value)
	}

	if opts.Positions && !e.pos.IsZero() {
		fmt.Fprintf(sb, " @%s", e.pos)
	}

	sb.WriteString("\n")

	for _, f := range e.fields {
		sb.WriteString(indent)
		sb.WriteString("  ")
		sb.WriteString(f.name)

		switch {
		case f.list && len(f.items) == 0:
			sb.WriteString(": []\n")
			continue
		case !f.list && f.items[0] == nil:
			sb.WriteString(": -\n")
			continue
		}

		sb.WriteString(":\n")

		for _, item := range f.items {
			writeText(sb, item, depth+2, opts)
		}
	}
}
