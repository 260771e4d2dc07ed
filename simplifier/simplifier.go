// Package simplifier is the entry pass of the translator front end. It unwraps
// the parsed module, strips decorators, turns bare variable reads into Local
// References and replaces every access chain with its normalized form.
package simplifier

import (
	"fmt"

	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
	"github.com/sirupsen/logrus"
)

// Simplifier rewrites one function definition per call to Simplify.
type Simplifier struct {
	// Receiver overrides the receiver parameter name. Empty means the first parameter.
	Receiver string
	// Logger receives debug entries. Nil means the logrus standard logger.
	Logger logrus.FieldLogger

	baseName string
	chains   int
}

// New creates a Simplifier with an explicit receiver name.
func New(receiver string) *Simplifier {
	return &Simplifier{Receiver: receiver}
}

// Simplify runs the pass with the first parameter as receiver.
func Simplify(mod *ast.Module) (*ast.FunctionDef, error) {
	return (&Simplifier{}).Simplify(mod)
}

// BaseName returns the receiver name recorded by the last successful Simplify.
func (s *Simplifier) BaseName() string {
	return s.baseName
}

// Simplify returns the normalized first statement of mod, which must be a
// function definition. Any failure aborts the whole transform.
func (s *Simplifier) Simplify(mod *ast.Module) (*ast.FunctionDef, error) {
	if mod == nil || len(mod.Body) == 0 {
		return nil, fmt.Errorf("%w: module holds no statements", pyhdl.ErrStructuralAssumption)
	}

	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		return nil, fmt.Errorf("%w: first statement is %s at %s, want FunctionDef",
			pyhdl.ErrStructuralAssumption, mod.Body[0].Kind(), mod.Body[0].Pos())
	}

	baseName := s.Receiver
	if baseName == "" {
		if len(fn.Params) == 0 {
			return nil, fmt.Errorf("%w: function %s has no receiver parameter", pyhdl.ErrStructuralAssumption, fn.Name)
		}

		baseName = fn.Params[0].Name
	}

	log := s.logger().WithFields(logrus.Fields{
		"function": fn.Name,
		"base":     baseName,
	})

	if len(mod.Body) > 1 {
		log.WithField("ignored", len(mod.Body)-1).Debug("module holds more than one statement")
	}

	s.chains = 0

	out, err := s.functionDef(fn)
	if err != nil {
		return nil, err
	}

	s.baseName = baseName

	log.WithFields(logrus.Fields{
		"statements": len(out.Body),
		"chains":     s.chains,
	}).Debug("simplified function")

	return out, nil
}

func (s *Simplifier) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}

	return s.Logger
}

// functionDef rebuilds fn with its decorator list cleared.
func (s *Simplifier) functionDef(fn *ast.FunctionDef) (*ast.FunctionDef, error) {
	body, err := s.stmts(fn.Body)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Position: fn.Position,
		Name:     fn.Name,
		Params:   append([]ast.Param(nil), fn.Params...),
		Body:     body,
	}, nil
}
