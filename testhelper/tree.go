package testhelper

import (
	"github.com/shibukawa/pyhdl/ast"
	"github.com/shopspring/decimal"
)

// Builders for position-less trees in the shape the host parser emits.

func Name(id string) *ast.Name {
	return &ast.Name{ID: id}
}

func Attr(value ast.Expr, attr string) *ast.Attribute {
	return &ast.Attribute{Value: value, Attr: attr}
}

// Sub builds `value[key]` with the key wrapped in an Index node.
func Sub(value, key ast.Expr) *ast.Subscript {
	return &ast.Subscript{Value: value, Slice: &ast.Index{Value: key}}
}

func SliceOf(value, lower, upper ast.Expr) *ast.Subscript {
	return &ast.Subscript{Value: value, Slice: &ast.Slice{Lower: lower, Upper: upper}}
}

func Num(v int64) *ast.Num {
	return &ast.Num{Value: decimal.NewFromInt(v)}
}

func Assign(target, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{target}, Value: value}
}

func Call(fn ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: fn, Args: args}
}

func Func(name string, params []string, body ...ast.Stmt) *ast.FunctionDef {
	fn := &ast.FunctionDef{Name: name, Body: body}
	for _, p := range params {
		fn.Params = append(fn.Params, ast.Param{Name: p})
	}

	return fn
}

func Module(body ...ast.Stmt) *ast.Module {
	return &ast.Module{Body: body}
}
