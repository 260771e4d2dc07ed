// Package chain converts left-deep access expressions such as `s.mem[i].val`
// into right-linked chains that read in source order:
//
//	BaseRef(s) -> Member(mem) -> IndexAccess(LocalRef(i)) -> Member(val)
package chain

import (
	"fmt"

	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
)

// Reverse converts the left-deep chain rooted at root into the equivalent
// right-linked chain. The returned root is a BaseRef for chains ending at a
// variable read, or the literal itself for a numeric literal.
//
// Subscript keys and slice bounds are normalized independently. A slice with a
// step fails with ErrMalformedSlice; any node outside the chain kinds fails
// with ErrUnhandledNodeKind.
func Reverse(root ast.Expr) (ast.Expr, error) {
	r := &reverser{}
	if err := r.visit(root); err != nil {
		return nil, err
	}

	return r.link()
}

// frame is a pushed chain element waiting to be linked.
type frame struct {
	kind  ast.Kind
	pos   ast.Position
	name  string
	key   ast.Expr
	lower ast.Expr
	upper ast.Expr
	num   *ast.Num
}

type reverser struct {
	stack []frame
}

func (r *reverser) push(f frame) {
	r.stack = append(r.stack, f)
}

func (r *reverser) visit(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Attribute:
		r.push(frame{kind: ast.KindMember, pos: n.Position, name: n.Attr})
		return r.visit(n.Value)
	case *ast.Subscript:
		return r.visitSubscript(n)
	case *ast.Index:
		return r.visit(n.Value)
	case *ast.Slice:
		lower, upper, err := bounds(n)
		if err != nil {
			return err
		}

		r.push(frame{kind: ast.KindSliceAccess, pos: n.Position, lower: lower, upper: upper})

		return nil
	case *ast.Num:
		r.push(frame{kind: ast.KindNum, pos: n.Position, num: n})
		return nil
	case *ast.Name:
		r.push(frame{kind: ast.KindBaseRef, pos: n.Position, name: n.ID})
		return nil
	case nil:
		return fmt.Errorf("%w: access chain has no base", pyhdl.ErrUnhandledNodeKind)
	default:
		return fmt.Errorf("%w: %s at %s inside an access chain", pyhdl.ErrUnhandledNodeKind, e.Kind(), e.Pos())
	}
}

func (r *reverser) visitSubscript(n *ast.Subscript) error {
	if s, ok := n.Slice.(*ast.Slice); ok {
		lower, upper, err := bounds(s)
		if err != nil {
			return err
		}

		r.push(frame{kind: ast.KindSliceAccess, pos: n.Position, lower: lower, upper: upper})

		return r.visit(n.Value)
	}

	key, err := operand(n.Slice)
	if err != nil {
		return err
	}

	if key == nil {
		return fmt.Errorf("%w: subscript at %s has no key", pyhdl.ErrUnhandledNodeKind, n.Pos())
	}

	r.push(frame{kind: ast.KindIndexAccess, pos: n.Position, key: key})

	return r.visit(n.Value)
}

// link pops the stack: the last pushed frame becomes the root and every
// earlier frame its successor, ending with an empty link.
func (r *reverser) link() (ast.Expr, error) {
	if len(r.stack) == 0 {
		return nil, fmt.Errorf("%w: empty access chain", pyhdl.ErrUnhandledNodeKind)
	}

	top := len(r.stack) - 1

	// Links are built from the outermost accessor inward so that every node
	// is complete when it is created.
	var next ast.Access

	for _, f := range r.stack[:top] {
		acc, err := f.access(next)
		if err != nil {
			return nil, err
		}

		next = acc
	}

	return r.stack[top].root(next)
}

func (f frame) access(next ast.Access) (ast.Access, error) {
	switch f.kind {
	case ast.KindMember:
		return &ast.Member{Position: f.pos, Attr: f.name, Next: next}, nil
	case ast.KindIndexAccess:
		return &ast.IndexAccess{Position: f.pos, Key: f.key, Next: next}, nil
	case ast.KindSliceAccess:
		return &ast.SliceAccess{Position: f.pos, Lower: f.lower, Upper: f.upper, Next: next}, nil
	default:
		return nil, fmt.Errorf("%w: %s at %s cannot follow another chain element", pyhdl.ErrUnhandledNodeKind, f.kind, f.pos)
	}
}

func (f frame) root(next ast.Access) (ast.Expr, error) {
	switch f.kind {
	case ast.KindBaseRef:
		return &ast.BaseRef{Position: f.pos, Name: f.name, Next: next}, nil
	case ast.KindNum:
		if next != nil {
			return nil, fmt.Errorf("%w: numeric literal at %s cannot be the base of an access chain", pyhdl.ErrUnhandledNodeKind, f.pos)
		}

		num := *f.num

		return &num, nil
	default:
		acc, err := f.access(next)
		if err != nil {
			return nil, err
		}

		return acc, nil
	}
}

// operand normalizes a subscript key or slice bound in its own context.
// A bare variable read is a Local Reference; nil stays nil for open bounds.
func operand(e ast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case nil:
		return nil, nil
	case *ast.Index:
		return operand(n.Value)
	case *ast.Name:
		return &ast.LocalRef{Position: n.Position, Name: n.ID}, nil
	}

	return Reverse(e)
}

func bounds(s *ast.Slice) (ast.Expr, ast.Expr, error) {
	if s.Step != nil {
		return nil, nil, fmt.Errorf("%w: slice at %s", pyhdl.ErrMalformedSlice, s.Pos())
	}

	lower, err := operand(s.Lower)
	if err != nil {
		return nil, nil, err
	}

	upper, err := operand(s.Upper)
	if err != nil {
		return nil, nil, err
	}

	return lower, upper, nil
}
