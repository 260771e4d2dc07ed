package ast

// BaseRef is the root of a normalized chain, naming the variable the chain starts from.
type BaseRef struct {
	Position
	Name string
	Next Access
}

// LocalRef is a variable read that is not part of any chain.
type LocalRef struct {
	Position
	Name string
}

// Member is a `.attr` link.
type Member struct {
	Position
	Attr string
	Next Access
}

// IndexAccess is a `[key]` link. Key is itself a normalized chain or a literal.
type IndexAccess struct {
	Position
	Key  Expr
	Next Access
}

// SliceAccess is a `[lower:upper]` link. Open bounds are nil.
type SliceAccess struct {
	Position
	Lower Expr
	Upper Expr
	Next  Access
}

func (*BaseRef) Kind() Kind     { return KindBaseRef }
func (*LocalRef) Kind() Kind    { return KindLocalRef }
func (*Member) Kind() Kind      { return KindMember }
func (*IndexAccess) Kind() Kind { return KindIndexAccess }
func (*SliceAccess) Kind() Kind { return KindSliceAccess }

func (*BaseRef) expr()     {}
func (*LocalRef) expr()    {}
func (*Member) expr()      {}
func (*IndexAccess) expr() {}
func (*SliceAccess) expr() {}

func (n *Member) Successor() Access      { return n.Next }
func (n *IndexAccess) Successor() Access { return n.Next }
func (n *SliceAccess) Successor() Access { return n.Next }

func (*Member) access()      {}
func (*IndexAccess) access() {}
func (*SliceAccess) access() {}
