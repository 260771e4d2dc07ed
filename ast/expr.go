package ast

import "github.com/shopspring/decimal"

// Name is a bare variable read.
type Name struct {
	Position
	ID string
}

// Num is a numeric literal. It is also a valid chain terminator.
type Num struct {
	Position
	Value decimal.Decimal
}

type Str struct {
	Position
	Value string
}

// NameConstant is True, False or None.
type NameConstant struct {
	Position
	Value string
}

// Attribute is the parsed `value.attr` access.
type Attribute struct {
	Position
	Value Expr
	Attr  string
}

// Subscript is the parsed `value[slice]` access. Slice is an Index wrapper,
// a Slice, or the key expression itself.
type Subscript struct {
	Position
	Value Expr
	Slice Expr
}

// Index wraps a subscript key and carries nothing else.
type Index struct {
	Position
	Value Expr
}

// Slice is `lower:upper:step`. Missing parts are nil.
type Slice struct {
	Position
	Lower Expr
	Upper Expr
	Step  Expr
}

type BinOp struct {
	Position
	Left  Expr
	Op    string
	Right Expr
}

type UnaryOp struct {
	Position
	Op      string
	Operand Expr
}

type BoolOp struct {
	Position
	Op     string
	Values []Expr
}

type Compare struct {
	Position
	Left        Expr
	Ops         []string
	Comparators []Expr
}

// Keyword is a `name=value` call argument.
type Keyword struct {
	Position
	Arg   string
	Value Expr
}

type Call struct {
	Position
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

type Tuple struct {
	Position
	Elts []Expr
}

type List struct {
	Position
	Elts []Expr
}

// IfExp is `body if test else orelse`.
type IfExp struct {
	Position
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (*Name) Kind() Kind         { return KindName }
func (*Num) Kind() Kind          { return KindNum }
func (*Str) Kind() Kind          { return KindStr }
func (*NameConstant) Kind() Kind { return KindNameConstant }
func (*Attribute) Kind() Kind    { return KindAttribute }
func (*Subscript) Kind() Kind    { return KindSubscript }
func (*Index) Kind() Kind        { return KindIndex }
func (*Slice) Kind() Kind        { return KindSlice }
func (*BinOp) Kind() Kind        { return KindBinOp }
func (*UnaryOp) Kind() Kind      { return KindUnaryOp }
func (*BoolOp) Kind() Kind       { return KindBoolOp }
func (*Compare) Kind() Kind      { return KindCompare }
func (*Call) Kind() Kind         { return KindCall }
func (*Tuple) Kind() Kind        { return KindTuple }
func (*List) Kind() Kind         { return KindList }
func (*IfExp) Kind() Kind        { return KindIfExp }

func (*Name) expr()         {}
func (*Num) expr()          {}
func (*Str) expr()          {}
func (*NameConstant) expr() {}
func (*Attribute) expr()    {}
func (*Subscript) expr()    {}
func (*Index) expr()        {}
func (*Slice) expr()        {}
func (*BinOp) expr()        {}
func (*UnaryOp) expr()      {}
func (*BoolOp) expr()       {}
func (*Compare) expr()      {}
func (*Call) expr()         {}
func (*Tuple) expr()        {}
func (*List) expr()         {}
func (*IfExp) expr()        {}
