package ast

// Param is a function parameter.
type Param struct {
	Position
	Name string
}

// FunctionDef is the method being translated.
type FunctionDef struct {
	Position
	Name       string
	Params     []Param
	Body       []Stmt
	Decorators []Expr
}

// Assign is `targets[0] = targets[1] = ... = value`.
type Assign struct {
	Position
	Targets []Expr
	Value   Expr
}

// AugAssign is `target op= value`.
type AugAssign struct {
	Position
	Target Expr
	Op     string
	Value  Expr
}

// ExprStmt is an expression evaluated as a statement.
type ExprStmt struct {
	Position
	Value Expr
}

type If struct {
	Position
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

type For struct {
	Position
	Target Expr
	Iter   Expr
	Body   []Stmt
	OrElse []Stmt
}

type While struct {
	Position
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// Return carries a nil Value for a bare return.
type Return struct {
	Position
	Value Expr
}

type Pass struct{ Position }

type Break struct{ Position }

type Continue struct{ Position }

func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (*Assign) Kind() Kind      { return KindAssign }
func (*AugAssign) Kind() Kind   { return KindAugAssign }
func (*ExprStmt) Kind() Kind    { return KindExprStmt }
func (*If) Kind() Kind          { return KindIf }
func (*For) Kind() Kind         { return KindFor }
func (*While) Kind() Kind       { return KindWhile }
func (*Return) Kind() Kind      { return KindReturn }
func (*Pass) Kind() Kind        { return KindPass }
func (*Break) Kind() Kind       { return KindBreak }
func (*Continue) Kind() Kind    { return KindContinue }

func (*FunctionDef) stmt() {}
func (*Assign) stmt()      {}
func (*AugAssign) stmt()   {}
func (*ExprStmt) stmt()    {}
func (*If) stmt()          {}
func (*For) stmt()         {}
func (*While) stmt()       {}
func (*Return) stmt()      {}
func (*Pass) stmt()        {}
func (*Break) stmt()       {}
func (*Continue) stmt()    {}
