// Package ast defines the syntax tree handled by the simplification pass.
//
// The tree is a closed set of node kinds. Module, statements and most
// expressions mirror the parsed host-language tree; BaseRef, LocalRef and the
// Access links (Member, IndexAccess, SliceAccess) only appear in the
// normalized output.
package ast

import "fmt"

// Position represents the start of a node within the original source.
// Line and Column are 1-based, Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Pos returns the position itself so that embedding types satisfy Node.
func (p Position) Pos() Position {
	return p
}

// IsZero reports whether the position carries no information.
func (p Position) IsZero() bool {
	return p == Position{}
}

func (p Position) String() string {
	if p.IsZero() {
		return "-"
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every tree node.
type Node interface {
	Pos() Position
	Kind() Kind
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Access is a forward link of a normalized chain.
// Successor returns nil at the end of the chain.
type Access interface {
	Expr
	Successor() Access
	access()
}

// Kind identifies the concrete type of a node.
type Kind int

const (
	KindModule Kind = iota
	KindFunctionDef

	// Statements
	KindAssign
	KindAugAssign
	KindExprStmt
	KindIf
	KindFor
	KindWhile
	KindReturn
	KindPass
	KindBreak
	KindContinue

	// Parsed expressions
	KindName
	KindNum
	KindStr
	KindNameConstant
	KindAttribute
	KindSubscript
	KindIndex
	KindSlice
	KindBinOp
	KindUnaryOp
	KindBoolOp
	KindCompare
	KindCall
	KindTuple
	KindList
	KindIfExp

	// Normalized chain nodes
	KindBaseRef
	KindLocalRef
	KindMember
	KindIndexAccess
	KindSliceAccess
)

var kindNames = map[Kind]string{
	KindModule:       "Module",
	KindFunctionDef:  "FunctionDef",
	KindAssign:       "Assign",
	KindAugAssign:    "AugAssign",
	KindExprStmt:     "Expr",
	KindIf:           "If",
	KindFor:          "For",
	KindWhile:        "While",
	KindReturn:       "Return",
	KindPass:         "Pass",
	KindBreak:        "Break",
	KindContinue:     "Continue",
	KindName:         "Name",
	KindNum:          "Num",
	KindStr:          "Str",
	KindNameConstant: "NameConstant",
	KindAttribute:    "Attribute",
	KindSubscript:    "Subscript",
	KindIndex:        "Index",
	KindSlice:        "Slice",
	KindBinOp:        "BinOp",
	KindUnaryOp:      "UnaryOp",
	KindBoolOp:       "BoolOp",
	KindCompare:      "Compare",
	KindCall:         "Call",
	KindTuple:        "Tuple",
	KindList:         "List",
	KindIfExp:        "IfExp",
	KindBaseRef:      "BaseRef",
	KindLocalRef:     "LocalRef",
	KindMember:       "Member",
	KindIndexAccess:  "IndexAccess",
	KindSliceAccess:  "SliceAccess",
}

// String returns the node kind name used in diagnostics and dumps.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "UNKNOWN"
}

// Module is the parsed container handed over by the host parser.
type Module struct {
	Position
	Body []Stmt
}

func (*Module) Kind() Kind { return KindModule }
