package dump

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shibukawa/pyhdl/ast"
)

// XML renders n as an XML document. Every node becomes an element named after
// its kind; child fields become wrapper elements named after the field.
func XML(n ast.Node, opts Options) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	tree := doc.CreateElement("tree")
	if root := build(n); root != nil {
		writeXML(tree, root, opts)
	}

	doc.Indent(2)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to write xml: %w", err)
	}

	return out, nil
}

func writeXML(parent *etree.Element, e *element, opts Options) {
	el := parent.CreateElement(e.kind)

	if opts.Positions && !e.pos.IsZero() {
		el.CreateAttr("line", strconv.Itoa(e.pos.Line))
		el.CreateAttr("col", strconv.Itoa(e.pos.Column))
	}

	for _, a := range e.attrs {
		el.CreateAttr(a.name, a.value)
	}

	for _, f := range e.fields {
		fe := el.CreateElement(f.name)

		for _, item := range f.items {
			if item != nil {
				writeXML(fe, item, opts)
			}
		}
	}
}
