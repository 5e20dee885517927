package ast

// ToJSON renders a node as the wire shape {type, attrs, children} that the
// spec's AST serialization requirement describes, independent of this
// package's concrete Go types. Scalar child slots are preserved positionally
// per node kind (e.g. IF is always [cond, then, else]).
func ToJSON(n Node) map[string]any {
	switch v := n.(type) {
	case *Program:
		return node(KindOf(v), nil, stmtChildren(v.Statements))
	case *Block:
		return node(KindOf(v), nil, stmtChildren(v.Statements))
	case *Assignment:
		return node(KindOf(v), map[string]any{"line": v.Line}, []any{
			literalNode("var", v.Name, v.Line), ToJSON(v.Value),
		})
	case *If:
		return node(KindOf(v), map[string]any{"line": v.Line}, []any{
			ToJSON(v.Cond), ToJSON(v.Then), ToJSON(v.Else),
		})
	case *While:
		return node(KindOf(v), map[string]any{"line": v.Line}, []any{ToJSON(v.Cond), ToJSON(v.Body)})
	case *DoWhile:
		return node(KindOf(v), map[string]any{"line": v.Line}, []any{ToJSON(v.Body), ToJSON(v.Cond)})
	case *RepeatUntil:
		return node(KindOf(v), map[string]any{"line": v.Line}, []any{ToJSON(v.Body), ToJSON(v.Cond)})
	case *For:
		return node(KindOf(v), map[string]any{"line": v.Line, "iterator": v.Iterator}, []any{
			ToJSON(v.Start), ToJSON(v.Stop), ToJSON(v.Step), ToJSON(v.Body),
		})
	case *Read:
		children := make([]any, len(v.Names))
		for i, name := range v.Names {
			children[i] = literalNode("var", name, v.Line)
		}
		return node(KindOf(v), map[string]any{"line": v.Line}, children)
	case *Write:
		children := make([]any, len(v.Values))
		for i, val := range v.Values {
			children[i] = ToJSON(val)
		}
		return node(KindOf(v), map[string]any{"line": v.Line}, children)
	case *BinOp:
		return node(KindOf(v), map[string]any{"operator": v.Op, "line": v.Line}, []any{
			ToJSON(v.Left), ToJSON(v.Right),
		})
	case *UnaryOp:
		return node(KindOf(v), map[string]any{"operator": v.Op, "line": v.Line}, []any{ToJSON(v.Operand)})
	case *Identifier:
		return literalNode("var", v.Name, v.Line)
	case *IntLiteral:
		return literalNode("int", v.Raw, v.Line)
	case *RealLiteral:
		return literalNode("real", v.Raw, v.Line)
	case *BoolLiteral:
		value := "fals"
		if v.Value {
			value = "adevarat"
		}
		return literalNode("bool", value, v.Line)
	case *StringLiteral:
		return literalNode("string", v.Value, v.Line)
	default:
		return node("UNKNOWN", nil, nil)
	}
}

// KindOf returns the spec's closed-set kind tag for n (e.g. "ASSIGNMENT",
// "BIN_OP", "LITERAL"), used by the interpreter's trace and by ToJSON.
func KindOf(n Node) string {
	switch v := n.(type) {
	case *Program:
		return "PROGRAM"
	case *Block:
		return "BLOCK"
	case *Assignment:
		return "ASSIGNMENT"
	case *If:
		return "IF"
	case *While:
		return "WHILE"
	case *DoWhile:
		return "DO_WHILE"
	case *RepeatUntil:
		return "REPEAT_UNTIL"
	case *For:
		return "FOR"
	case *Read:
		return "READ"
	case *Write:
		return "WRITE"
	case *BinOp:
		return "BIN_OP"
	case *UnaryOp:
		return "UNARY_OP"
	case *Identifier, *IntLiteral, *RealLiteral, *BoolLiteral, *StringLiteral:
		return "LITERAL"
	default:
		_ = v
		return "UNKNOWN"
	}
}

func node(kind string, attrs map[string]any, children []any) map[string]any {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return map[string]any{"type": kind, "attrs": attrs, "children": children}
}

func literalNode(litType, value string, line int) map[string]any {
	return node("LITERAL", map[string]any{"type": litType, "value": value, "line": line}, nil)
}

func stmtChildren(stmts []Stmt) []any {
	children := make([]any, len(stmts))
	for i, s := range stmts {
		children[i] = ToJSON(s)
	}
	return children
}
