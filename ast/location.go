package ast

// CopyLocation returns a shallow copy of dst carrying the position of src.
// dst itself is left untouched so already published nodes stay immutable.
func CopyLocation(dst Expr, src Node) Expr {
	pos := src.Pos()

	switch n := dst.(type) {
	case *Name:
		c := *n
		c.Position = pos
		return &c
	case *Num:
		c := *n
		c.Position = pos
		return &c
	case *Str:
		c := *n
		c.Position = pos
		return &c
	case *NameConstant:
		c := *n
		c.Position = pos
		return &c
	case *Attribute:
		c := *n
		c.Position = pos
		return &c
	case *Subscript:
		c := *n
		c.Position = pos
		return &c
	case *Index:
		c := *n
		c.Position = pos
		return &c
	case *Slice:
		c := *n
		c.Position = pos
		return &c
	case *BinOp:
		c := *n
		c.Position = pos
		return &c
	case *UnaryOp:
		c := *n
		c.Position = pos
		return &c
	case *BoolOp:
		c := *n
		c.Position = pos
		return &c
	case *Compare:
		c := *n
		c.Position = pos
		return &c
	case *Call:
		c := *n
		c.Position = pos
		return &c
	case *Tuple:
		c := *n
		c.Position = pos
		return &c
	case *List:
		c := *n
		c.Position = pos
		return &c
	case *IfExp:
		c := *n
		c.Position = pos
		return &c
	case *BaseRef:
		c := *n
		c.Position = pos
		return &c
	case *LocalRef:
		c := *n
		c.Position = pos
		return &c
	case *Member:
		c := *n
		c.Position = pos
		return &c
	case *IndexAccess:
		c := *n
		c.Position = pos
		return &c
	case *SliceAccess:
		c := *n
		c.Position = pos
		return &c
	}

	return dst
}
