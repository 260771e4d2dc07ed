// Package dump renders trees for the downstream stage and for diagnostics.
//
// All formats share one ordered intermediate form: an element per node holding
// its scalar attributes and child fields in declaration order.
package dump

import (
	"fmt"

	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// Options controls rendering.
type Options struct {
	// Positions adds line/column information to every node.
	Positions bool
}

// Render renders n in the given format.
func Render(n ast.Node, format Format, opts Options) (string, error) {
	switch format {
	case FormatText, "":
		return Text(n, opts), nil
	case FormatYAML:
		return YAML(n, opts)
	case FormatXML:
		return XML(n, opts)
	default:
		return "", fmt.Errorf("%w: '%s': must be one of text, yaml, xml", pyhdl.ErrUnsupportedOutputFormat, format)
	}
}

type attribute struct {
	name  string
	value string
}

type field struct {
	name  string
	list  bool
	items []*element // a nil item is an empty link
}

type element struct {
	kind   string
	pos    ast.Position
	attrs  []attribute
	fields []field
}

func (e *element) attr(name, value string) *element {
	e.attrs = append(e.attrs, attribute{name: name, value: value})
	return e
}

func (e *element) one(name string, n ast.Node) *element {
	e.fields = append(e.fields, field{name: name, items: []*element{build(n)}})
	return e
}

func (e *element) exprs(name string, list []ast.Expr) *element {
	items := make([]*element, 0, len(list))
	for _, x := range list {
		items = append(items, build(x))
	}

	e.fields = append(e.fields, field{name: name, list: true, items: items})

	return e
}

func (e *element) stmts(name string, list []ast.Stmt) *element {
	items := make([]*element, 0, len(list))
	for _, x := range list {
		items = append(items, build(x))
	}

	e.fields = append(e.fields, field{name: name, list: true, items: items})

	return e
}

func (e *element) raw(name string, items []*element) *element {
	e.fields = append(e.fields, field{name: name, list: true, items: items})
	return e
}

func newElement(n ast.Node) *element {
	return &element{kind: n.Kind().String(), pos: n.Pos()}
}

func build(n ast.Node) *element {
	if n == nil {
		return nil
	}

	e := newElement(n)

	switch n := n.(type) {
	case *ast.Module:
		e.stmts("body", n.Body)
	case *ast.FunctionDef:
		params := make([]*element, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, (&element{kind: "Param", pos: p.Position}).attr("name", p.Name))
		}

		e.attr("name", n.Name).raw("params", params).stmts("body", n.Body).exprs("decorators", n.Decorators)
	case *ast.Assign:
		e.exprs("targets", n.Targets).one("value", n.Value)
	case *ast.AugAssign:
		e.attr("op", n.Op).one("target", n.Target).one("value", n.Value)
	case *ast.ExprStmt:
		e.one("value", n.Value)
	case *ast.If:
		e.one("test", n.Test).stmts("body", n.Body).stmts("orelse", n.OrElse)
	case *ast.For:
		e.one("target", n.Target).one("iter", n.Iter).stmts("body", n.Body).stmts("orelse", n.OrElse)
	case *ast.While:
		e.one("test", n.Test).stmts("body", n.Body).stmts("orelse", n.OrElse)
	case *ast.Return:
		e.one("value", n.Value)
	case *ast.Pass, *ast.Break, *ast.Continue:
	case *ast.Name:
		e.attr("id", n.ID)
	case *ast.Num:
		e.attr("value", n.Value.String())
	case *ast.Str:
		e.attr("value", fmt.Sprintf("%q", n.Value))
	case *ast.NameConstant:
		e.attr("value", n.Value)
	case *ast.Attribute:
		e.attr("attr", n.Attr).one("value", n.Value)
	case *ast.Subscript:
		e.one("value", n.Value).one("slice", n.Slice)
	case *ast.Index:
		e.one("value", n.Value)
	case *ast.Slice:
		e.one("lower", n.Lower).one("upper", n.Upper).one("step", n.Step)
	case *ast.BinOp:
		e.attr("op", n.Op).one("left", n.Left).one("right", n.Right)
	case *ast.UnaryOp:
		e.attr("op", n.Op).one("operand", n.Operand)
	case *ast.BoolOp:
		e.attr("op", n.Op).exprs("values", n.Values)
	case *ast.Compare:
		ops := make([]*element, 0, len(n.Ops))
		for _, op := range n.Ops {
			ops = append(ops, &element{kind: op})
		}

		e.one("left", n.Left).raw("ops", ops).exprs("comparators", n.Comparators)
	case *ast.Call:
		keywords := make([]*element, 0, len(n.Keywords))
		for _, kw := range n.Keywords {
			keywords = append(keywords, (&element{kind: "Keyword", pos: kw.Position}).attr("arg", kw.Arg).one("value", kw.Value))
		}

		e.one("func", n.Func).exprs("args", n.Args).raw("keywords", keywords)
	case *ast.Tuple:
		e.exprs("elts", n.Elts)
	case *ast.List:
		e.exprs("elts", n.Elts)
	case *ast.IfExp:
		e.one("test", n.Test).one("body", n.Body).one("orelse", n.OrElse)
	case *ast.BaseRef:
		e.attr("name", n.Name).one("next", n.Next)
	case *ast.LocalRef:
		e.attr("name", n.Name)
	case *ast.Member:
		e.attr("attr", n.Attr).one("next", n.Next)
	case *ast.IndexAccess:
		e.one("key", n.Key).one("next", n.Next)
	case *ast.SliceAccess:
		e.one("lower", n.Lower).one("upper", n.Upper).one("next", n.Next)
	}

	return e
}
