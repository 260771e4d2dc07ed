package importer

import (
	"fmt"

	"github.com/bblfsh/sdk/v3/uast"
	"github.com/bblfsh/sdk/v3/uast/nodes"
	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
	"github.com/shopspring/decimal"
)

// decoder walks the generic tree. Problems are collected rather than returned
// so one run reports every broken node.
type decoder struct {
	errs ParseError
}

func (d *decoder) fail(obj nodes.Object, sentinel error, format string, args ...any) {
	d.errs.Add(fmt.Errorf("%w: %s at %s", sentinel, fmt.Sprintf(format, args...), position(obj)))
}

func (d *decoder) module(obj nodes.Object) *ast.Module {
	if typ := uast.TypeOf(obj); typ != "Module" {
		d.fail(obj, pyhdl.ErrInvalidTree, "root is '%s', want Module", typ)
		return nil
	}

	return &ast.Module{Position: position(obj), Body: d.stmts(obj, "body")}
}

// object returns the child object under key. Absent and null children are nil.
func (d *decoder) object(parent nodes.Object, key string) nodes.Object {
	switch v := parent[key].(type) {
	case nil:
		return nil
	case nodes.Object:
		return v
	default:
		d.fail(parent, pyhdl.ErrInvalidTree, "field '%s' of %s is %s, want an object", key, uast.TypeOf(parent), kindOf(v))
		return nil
	}
}

func (d *decoder) array(parent nodes.Object, key string) []nodes.Object {
	var arr nodes.Array

	switch v := parent[key].(type) {
	case nil:
		return nil
	case nodes.Array:
		arr = v
	default:
		d.fail(parent, pyhdl.ErrInvalidTree, "field '%s' of %s is %s, want a list", key, uast.TypeOf(parent), kindOf(v))
		return nil
	}

	result := make([]nodes.Object, 0, len(arr))

	for i, item := range arr {
		obj, ok := item.(nodes.Object)
		if !ok {
			d.fail(parent, pyhdl.ErrInvalidTree, "%s.%s[%d] is %s, want an object", uast.TypeOf(parent), key, i, kindOf(item))
			continue
		}

		result = append(result, obj)
	}

	return result
}

func (d *decoder) str(obj nodes.Object, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case nodes.String:
		return string(v)
	default:
		d.fail(obj, pyhdl.ErrInvalidTree, "field '%s' of %s is %s, want a string", key, uast.TypeOf(obj), kindOf(v))
		return ""
	}
}

// required reports a missing mandatory child.
func (d *decoder) required(obj nodes.Object, key string) bool {
	if obj[key] == nil {
		d.fail(obj, pyhdl.ErrInvalidTree, "%s has no '%s'", uast.TypeOf(obj), key)
		return false
	}

	return true
}

// op reads an operator written either as its class name or as an object.
func (d *decoder) op(obj nodes.Object, key string) string {
	return d.opName(obj, key, obj[key])
}

func (d *decoder) opName(parent nodes.Object, key string, n nodes.Node) string {
	switch v := n.(type) {
	case nodes.String:
		return string(v)
	case nodes.Object:
		if typ := uast.TypeOf(v); typ != "" {
			return typ
		}
	}

	d.fail(parent, pyhdl.ErrInvalidTree, "operator '%s' of %s is %s", key, uast.TypeOf(parent), kindOf(n))

	return ""
}

func (d *decoder) stmts(parent nodes.Object, key string) []ast.Stmt {
	objs := d.array(parent, key)
	if objs == nil {
		return nil
	}

	result := make([]ast.Stmt, 0, len(objs))
	for _, obj := range objs {
		if st := d.stmt(obj); st != nil {
			result = append(result, st)
		}
	}

	return result
}

func (d *decoder) stmt(obj nodes.Object) ast.Stmt {
	pos := position(obj)

	switch typ := uast.TypeOf(obj); typ {
	case "FunctionDef":
		return d.functionDef(obj)
	case "Assign":
		d.required(obj, "value")
		return &ast.Assign{Position: pos, Targets: d.exprs(obj, "targets"), Value: d.child(obj, "value")}
	case "AugAssign":
		d.required(obj, "target")
		d.required(obj, "value")

		return &ast.AugAssign{Position: pos, Target: d.child(obj, "target"), Op: d.op(obj, "op"), Value: d.child(obj, "value")}
	case "Expr":
		d.required(obj, "value")
		return &ast.ExprStmt{Position: pos, Value: d.child(obj, "value")}
	case "If":
		d.required(obj, "test")
		return &ast.If{Position: pos, Test: d.child(obj, "test"), Body: d.stmts(obj, "body"), OrElse: d.stmts(obj, "orelse")}
	case "While":
		d.required(obj, "test")
		return &ast.While{Position: pos, Test: d.child(obj, "test"), Body: d.stmts(obj, "body"), OrElse: d.stmts(obj, "orelse")}
	case "For":
		d.required(obj, "target")
		d.required(obj, "iter")

		return &ast.For{
			Position: pos,
			Target:   d.child(obj, "target"),
			Iter:     d.child(obj, "iter"),
			Body:     d.stmts(obj, "body"),
			OrElse:   d.stmts(obj, "orelse"),
		}
	case "Return":
		return &ast.Return{Position: pos, Value: d.child(obj, "value")}
	case "Pass":
		return &ast.Pass{Position: pos}
	case "Break":
		return &ast.Break{Position: pos}
	case "Continue":
		return &ast.Continue{Position: pos}
	case "":
		d.fail(obj, pyhdl.ErrInvalidTree, "statement without '%s'", uast.KeyType)
	default:
		d.fail(obj, pyhdl.ErrUnhandledNodeKind, "statement '%s'", typ)
	}

	return nil
}

func (d *decoder) functionDef(obj nodes.Object) *ast.FunctionDef {
	fn := &ast.FunctionDef{
		Position:   position(obj),
		Name:       d.str(obj, "name"),
		Body:       d.stmts(obj, "body"),
		Decorators: d.exprs(obj, "decorator_list"),
	}

	if args := d.object(obj, "args"); args != nil {
		for _, a := range d.array(args, "args") {
			fn.Params = append(fn.Params, d.param(a))
		}
	}

	return fn
}

// param accepts both the `arg` class and the older `Name` parameter form.
func (d *decoder) param(obj nodes.Object) ast.Param {
	p := ast.Param{Position: position(obj)}

	switch typ := uast.TypeOf(obj); typ {
	case "arg":
		p.Name = d.str(obj, "arg")
	case "Name":
		p.Name = d.str(obj, "id")
	default:
		d.fail(obj, pyhdl.ErrUnhandledNodeKind, "parameter '%s'", typ)
	}

	return p
}

func (d *decoder) child(parent nodes.Object, key string) ast.Expr {
	obj := d.object(parent, key)
	if obj == nil {
		return nil
	}

	return d.expr(obj)
}

func (d *decoder) exprs(parent nodes.Object, key string) []ast.Expr {
	objs := d.array(parent, key)
	if objs == nil {
		return nil
	}

	result := make([]ast.Expr, 0, len(objs))
	for _, obj := range objs {
		if e := d.expr(obj); e != nil {
			result = append(result, e)
		}
	}

	return result
}

func (d *decoder) expr(obj nodes.Object) ast.Expr {
	pos := position(obj)

	switch typ := uast.TypeOf(obj); typ {
	case "Name":
		return &ast.Name{Position: pos, ID: d.str(obj, "id")}
	case "Num":
		return d.num(obj, "n")
	case "Constant":
		return d.constant(obj)
	case "Str":
		return &ast.Str{Position: pos, Value: d.str(obj, "s")}
	case "NameConstant":
		return &ast.NameConstant{Position: pos, Value: d.nameConstant(obj, obj["value"])}
	case "Attribute":
		d.required(obj, "value")
		return &ast.Attribute{Position: pos, Value: d.child(obj, "value"), Attr: d.str(obj, "attr")}
	case "Subscript":
		d.required(obj, "value")
		d.required(obj, "slice")

		return &ast.Subscript{Position: pos, Value: d.child(obj, "value"), Slice: d.child(obj, "slice")}
	case "Index":
		d.required(obj, "value")
		return &ast.Index{Position: pos, Value: d.child(obj, "value")}
	case "Slice":
		return &ast.Slice{Position: pos, Lower: d.child(obj, "lower"), Upper: d.child(obj, "upper"), Step: d.child(obj, "step")}
	case "BinOp":
		return &ast.BinOp{Position: pos, Left: d.child(obj, "left"), Op: d.op(obj, "op"), Right: d.child(obj, "right")}
	case "UnaryOp":
		return &ast.UnaryOp{Position: pos, Op: d.op(obj, "op"), Operand: d.child(obj, "operand")}
	case "BoolOp":
		return &ast.BoolOp{Position: pos, Op: d.op(obj, "op"), Values: d.exprs(obj, "values")}
	case "Compare":
		return d.compare(obj)
	case "Call":
		return d.call(obj)
	case "Tuple":
		return &ast.Tuple{Position: pos, Elts: d.exprs(obj, "elts")}
	case "List":
		return &ast.List{Position: pos, Elts: d.exprs(obj, "elts")}
	case "IfExp":
		return &ast.IfExp{Position: pos, Test: d.child(obj, "test"), Body: d.child(obj, "body"), OrElse: d.child(obj, "orelse")}
	case "":
		d.fail(obj, pyhdl.ErrInvalidTree, "expression without '%s'", uast.KeyType)
	default:
		d.fail(obj, pyhdl.ErrUnhandledNodeKind, "expression '%s'", typ)
	}

	return nil
}

func (d *decoder) num(obj nodes.Object, key string) ast.Expr {
	value, ok := numeric(obj[key])
	if !ok {
		d.fail(obj, pyhdl.ErrInvalidTree, "%s.%s is %s, want a number", uast.TypeOf(obj), key, kindOf(obj[key]))
		return nil
	}

	return &ast.Num{Position: position(obj), Value: value}
}

// constant maps the unified literal class onto Num, Str and NameConstant.
func (d *decoder) constant(obj nodes.Object) ast.Expr {
	switch v := obj["value"].(type) {
	case nodes.String:
		return &ast.Str{Position: position(obj), Value: string(v)}
	case nil, nodes.Bool:
		return &ast.NameConstant{Position: position(obj), Value: d.nameConstant(obj, v)}
	default:
		return d.num(obj, "value")
	}
}

func (d *decoder) nameConstant(obj nodes.Object, n nodes.Node) string {
	switch v := n.(type) {
	case nil:
		return "None"
	case nodes.Bool:
		if v {
			return "True"
		}

		return "False"
	case nodes.String:
		switch s := string(v); s {
		case "True", "False", "None":
			return s
		}
	}

	d.fail(obj, pyhdl.ErrInvalidTree, "%s value is %v, want True, False or None", uast.TypeOf(obj), n)

	return ""
}

func (d *decoder) compare(obj nodes.Object) ast.Expr {
	c := &ast.Compare{Position: position(obj), Left: d.child(obj, "left"), Comparators: d.exprs(obj, "comparators")}

	ops, ok := obj["ops"].(nodes.Array)
	if !ok && obj["ops"] != nil {
		d.fail(obj, pyhdl.ErrInvalidTree, "field 'ops' of Compare is %s, want a list", kindOf(obj["ops"]))
	}

	for _, op := range ops {
		c.Ops = append(c.Ops, d.opName(obj, "ops", op))
	}

	if len(c.Ops) != len(c.Comparators) {
		d.fail(obj, pyhdl.ErrInvalidTree, "Compare has %d operators for %d comparators", len(c.Ops), len(c.Comparators))
	}

	return c
}

func (d *decoder) call(obj nodes.Object) ast.Expr {
	d.required(obj, "func")

	c := &ast.Call{Position: position(obj), Func: d.child(obj, "func"), Args: d.exprs(obj, "args")}

	for _, kw := range d.array(obj, "keywords") {
		if typ := uast.TypeOf(kw); typ != "keyword" {
			d.fail(kw, pyhdl.ErrUnhandledNodeKind, "call keyword '%s'", typ)
			continue
		}

		c.Keywords = append(c.Keywords, ast.Keyword{Position: position(kw), Arg: d.str(kw, "arg"), Value: d.child(kw, "value")})
	}

	return c
}

func numeric(n nodes.Node) (decimal.Decimal, bool) {
	switch v := n.(type) {
	case nodes.Int:
		return decimal.NewFromInt(int64(v)), true
	case nodes.Uint:
		d, err := decimal.NewFromString(nodes.ToString(v))
		return d, err == nil
	case nodes.Float:
		return decimal.NewFromFloat(float64(v)), true
	case nodes.String:
		d, err := decimal.NewFromString(string(v))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// position reads the start position from "@pos", or from the host's
// lineno/col_offset pair whose column is 0-based.
func position(obj nodes.Object) ast.Position {
	if obj == nil {
		return ast.Position{}
	}

	if pos, ok := obj[uast.KeyPos].(nodes.Object); ok {
		if start, ok := pos[uast.KeyStart].(nodes.Object); ok {
			return ast.Position{
				Line:   intValue(start[uast.KeyPosLine]),
				Column: intValue(start[uast.KeyPosCol]),
				Offset: intValue(start[uast.KeyPosOff]),
			}
		}
	}

	if _, ok := obj["lineno"]; ok {
		return ast.Position{
			Line:   intValue(obj["lineno"]),
			Column: intValue(obj["col_offset"]) + 1,
		}
	}

	return ast.Position{}
}

func intValue(n nodes.Node) int {
	switch v := n.(type) {
	case nodes.Int:
		return int(v)
	case nodes.Uint:
		return int(v)
	case nodes.Float:
		return int(v)
	default:
		return 0
	}
}

func kindOf(n nodes.Node) string {
	if n == nil {
		return "null"
	}

	return nodes.KindOf(n).String()
}
