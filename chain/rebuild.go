package chain

import (
	"fmt"

	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
)

// Steps returns the elements of a normalized chain in reading order, root first.
// Keys and bounds are not expanded.
func Steps(root ast.Expr) []ast.Expr {
	if root == nil {
		return nil
	}

	steps := []ast.Expr{root}

	var next ast.Access

	switch n := root.(type) {
	case *ast.BaseRef:
		next = n.Next
	case ast.Access:
		next = n.Successor()
	}

	for ; next != nil; next = next.Successor() {
		steps = append(steps, next)
	}

	return steps
}

// Rebuild converts a normalized chain back into the left-deep parsed form.
// Keys are wrapped in Index nodes the way the host parser emits them.
func Rebuild(root ast.Expr) (ast.Expr, error) {
	var (
		cur  ast.Expr
		next ast.Access
	)

	switch n := root.(type) {
	case nil:
		return nil, nil
	case *ast.BaseRef:
		cur = &ast.Name{Position: n.Position, ID: n.Name}
		next = n.Next
	case *ast.LocalRef:
		return &ast.Name{Position: n.Position, ID: n.Name}, nil
	case *ast.Num:
		num := *n
		return &num, nil
	case *ast.SliceAccess:
		if n.Next != nil {
			return nil, fmt.Errorf("%w: slice at %s cannot start a chain", pyhdl.ErrUnhandledNodeKind, n.Pos())
		}

		slice, err := rebuildSlice(n)
		if err != nil {
			return nil, err
		}

		return slice, nil
	default:
		return nil, fmt.Errorf("%w: %s at %s is not a chain root", pyhdl.ErrUnhandledNodeKind, root.Kind(), root.Pos())
	}

	for ; next != nil; next = next.Successor() {
		switch a := next.(type) {
		case *ast.Member:
			cur = &ast.Attribute{Position: a.Position, Value: cur, Attr: a.Attr}
		case *ast.IndexAccess:
			key, err := Rebuild(a.Key)
			if err != nil {
				return nil, err
			}

			cur = &ast.Subscript{Position: a.Position, Value: cur, Slice: &ast.Index{Position: key.Pos(), Value: key}}
		case *ast.SliceAccess:
			slice, err := rebuildSlice(a)
			if err != nil {
				return nil, err
			}

			cur = &ast.Subscript{Position: a.Position, Value: cur, Slice: slice}
		}
	}

	return cur, nil
}

func rebuildSlice(a *ast.SliceAccess) (*ast.Slice, error) {
	lower, err := Rebuild(a.Lower)
	if err != nil {
		return nil, err
	}

	upper, err := Rebuild(a.Upper)
	if err != nil {
		return nil, err
	}

	return &ast.Slice{Position: a.Position, Lower: lower, Upper: upper}, nil
}
