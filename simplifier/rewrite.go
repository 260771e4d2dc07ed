package simplifier

import (
	"fmt"

	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
	"github.com/shibukawa/pyhdl/chain"
)

func (s *Simplifier) stmts(list []ast.Stmt) ([]ast.Stmt, error) {
	if list == nil {
		return nil, nil
	}

	result := make([]ast.Stmt, 0, len(list))

	for _, st := range list {
		rewritten, err := s.stmt(st)
		if err != nil {
			return nil, err
		}

		result = append(result, rewritten)
	}

	return result, nil
}

func (s *Simplifier) stmt(st ast.Stmt) (ast.Stmt, error) {
	switch n := st.(type) {
	case *ast.FunctionDef:
		return s.functionDef(n)
	case *ast.Assign:
		targets, err := s.exprs(n.Targets)
		if err != nil {
			return nil, err
		}

		value, err := s.expr(n.Value)
		if err != nil {
			return nil, err
		}

		return &ast.Assign{Position: n.Position, Targets: targets, Value: value}, nil
	case *ast.AugAssign:
		target, err := s.expr(n.Target)
		if err != nil {
			return nil, err
		}

		value, err := s.expr(n.Value)
		if err != nil {
			return nil, err
		}

		return &ast.AugAssign{Position: n.Position, Target: target, Op: n.Op, Value: value}, nil
	case *ast.ExprStmt:
		value, err := s.expr(n.Value)
		if err != nil {
			return nil, err
		}

		return &ast.ExprStmt{Position: n.Position, Value: value}, nil
	case *ast.If:
		test, body, orElse, err := s.block(n.Test, n.Body, n.OrElse)
		if err != nil {
			return nil, err
		}

		return &ast.If{Position: n.Position, Test: test, Body: body, OrElse: orElse}, nil
	case *ast.While:
		test, body, orElse, err := s.block(n.Test, n.Body, n.OrElse)
		if err != nil {
			return nil, err
		}

		return &ast.While{Position: n.Position, Test: test, Body: body, OrElse: orElse}, nil
	case *ast.For:
		target, err := s.expr(n.Target)
		if err != nil {
			return nil, err
		}

		iter, body, orElse, err := s.block(n.Iter, n.Body, n.OrElse)
		if err != nil {
			return nil, err
		}

		return &ast.For{Position: n.Position, Target: target, Iter: iter, Body: body, OrElse: orElse}, nil
	case *ast.Return:
		value, err := s.expr(n.Value)
		if err != nil {
			return nil, err
		}

		return &ast.Return{Position: n.Position, Value: value}, nil
	case *ast.Pass:
		return &ast.Pass{Position: n.Position}, nil
	case *ast.Break:
		return &ast.Break{Position: n.Position}, nil
	case *ast.Continue:
		return &ast.Continue{Position: n.Position}, nil
	case nil:
		return nil, fmt.Errorf("%w: missing statement", pyhdl.ErrUnhandledNodeKind)
	default:
		return nil, fmt.Errorf("%w: statement %s at %s", pyhdl.ErrUnhandledNodeKind, st.Kind(), st.Pos())
	}
}

// block rewrites the head expression and both bodies of If/While/For.
func (s *Simplifier) block(head ast.Expr, body, orElse []ast.Stmt) (ast.Expr, []ast.Stmt, []ast.Stmt, error) {
	h, err := s.expr(head)
	if err != nil {
		return nil, nil, nil, err
	}

	b, err := s.stmts(body)
	if err != nil {
		return nil, nil, nil, err
	}

	o, err := s.stmts(orElse)
	if err != nil {
		return nil, nil, nil, err
	}

	return h, b, o, nil
}

func (s *Simplifier) exprs(list []ast.Expr) ([]ast.Expr, error) {
	if list == nil {
		return nil, nil
	}

	result := make([]ast.Expr, 0, len(list))

	for _, e := range list {
		rewritten, err := s.expr(e)
		if err != nil {
			return nil, err
		}

		result = append(result, rewritten)
	}

	return result, nil
}

// expr rewrites one expression. A nil expression (bare return, missing
// optional child) stays nil.
func (s *Simplifier) expr(e ast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case nil:
		return nil, nil
	case *ast.Attribute, *ast.Subscript:
		return s.chain(e)
	case *ast.Name:
		return &ast.LocalRef{Position: n.Position, Name: n.ID}, nil
	case *ast.Num:
		c := *n
		return &c, nil
	case *ast.Str:
		c := *n
		return &c, nil
	case *ast.NameConstant:
		c := *n
		return &c, nil
	case *ast.BinOp:
		left, err := s.expr(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := s.expr(n.Right)
		if err != nil {
			return nil, err
		}

		return &ast.BinOp{Position: n.Position, Left: left, Op: n.Op, Right: right}, nil
	case *ast.UnaryOp:
		operand, err := s.expr(n.Operand)
		if err != nil {
			return nil, err
		}

		return &ast.UnaryOp{Position: n.Position, Op: n.Op, Operand: operand}, nil
	case *ast.BoolOp:
		values, err := s.exprs(n.Values)
		if err != nil {
			return nil, err
		}

		return &ast.BoolOp{Position: n.Position, Op: n.Op, Values: values}, nil
	case *ast.Compare:
		left, err := s.expr(n.Left)
		if err != nil {
			return nil, err
		}

		comparators, err := s.exprs(n.Comparators)
		if err != nil {
			return nil, err
		}

		return &ast.Compare{
			Position:    n.Position,
			Left:        left,
			Ops:         append([]string(nil), n.Ops...),
			Comparators: comparators,
		}, nil
	case *ast.Call:
		return s.call(n)
	case *ast.Tuple:
		elts, err := s.exprs(n.Elts)
		if err != nil {
			return nil, err
		}

		return &ast.Tuple{Position: n.Position, Elts: elts}, nil
	case *ast.List:
		elts, err := s.exprs(n.Elts)
		if err != nil {
			return nil, err
		}

		return &ast.List{Position: n.Position, Elts: elts}, nil
	case *ast.IfExp:
		test, err := s.expr(n.Test)
		if err != nil {
			return nil, err
		}

		body, err := s.expr(n.Body)
		if err != nil {
			return nil, err
		}

		orElse, err := s.expr(n.OrElse)
		if err != nil {
			return nil, err
		}

		return &ast.IfExp{Position: n.Position, Test: test, Body: body, OrElse: orElse}, nil
	default:
		// Index and Slice only occur under a Subscript; normalized nodes never
		// occur in parser output.
		return nil, fmt.Errorf("%w: expression %s at %s", pyhdl.ErrUnhandledNodeKind, e.Kind(), e.Pos())
	}
}

func (s *Simplifier) call(n *ast.Call) (ast.Expr, error) {
	fn, err := s.expr(n.Func)
	if err != nil {
		return nil, err
	}

	args, err := s.exprs(n.Args)
	if err != nil {
		return nil, err
	}

	var keywords []ast.Keyword

	for _, kw := range n.Keywords {
		value, err := s.expr(kw.Value)
		if err != nil {
			return nil, err
		}

		keywords = append(keywords, ast.Keyword{Position: kw.Position, Arg: kw.Arg, Value: value})
	}

	return &ast.Call{Position: n.Position, Func: fn, Args: args, Keywords: keywords}, nil
}

// chain splices the normalized form of an access chain in place of e. The new
// root takes the position of e.
func (s *Simplifier) chain(e ast.Expr) (ast.Expr, error) {
	root, err := chain.Reverse(e)
	if err != nil {
		return nil, err
	}

	s.chains++

	return ast.CopyLocation(root, e), nil
}
