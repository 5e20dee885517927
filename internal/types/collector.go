// Package types implements the type collector (spec component C4): a
// pre-pass over the AST that infers a C++ output type per pseudocode
// variable, consumed by the C++ emitter.
package types

import "github.com/maiaiia/pseudocronic/internal/ast"

// Type is one of the C++ types a pseudocode variable can be given.
type Type int

const (
	Int Type = iota
	LongLong
	Double
	Bool
)

// CppName is the literal C++ type keyword/phrase.
func (t Type) CppName() string {
	switch t {
	case LongLong:
		return "long long"
	case Double:
		return "double"
	case Bool:
		return "bool"
	default:
		return "int"
	}
}

// Result is the type collector's output: one CppName per variable. It is
// read-only once Collect returns.
type Result struct {
	types map[string]Type
	order []string // first-seen order, for stable declaration grouping
}

// Type returns the inferred type for name, defaulting to Int for a name the
// collector never saw (should not happen for a well-formed program, since
// every variable is introduced by an assignment, read, or for-loop).
func (r *Result) Type(name string) Type {
	if t, ok := r.types[name]; ok {
		return t
	}
	return Int
}

// Names returns every collected variable name in first-seen order.
func (r *Result) Names() []string { return r.order }

// Collect walks prog and infers each variable's C++ type per spec §4.4:
//  1. Any assignment/read target, for-iterator, or identifier used anywhere
//     (an RHS, a FOR bound, a condition, a WRITE value) starts at Int.
//  2. A RHS containing '/' or SQRT promotes the target to Double.
//  3. A RHS literal with '.' in its raw text promotes the target to Double.
//  4. A RHS literal adevarat/fals promotes the target to Bool.
//  5. Promotions are one-way: once Double or Bool, a variable never demotes
//     or cross-promotes — the first non-Int promotion wins and sticks.
//
// Expressions that flow through a FOR loop's start/stop/step never promote
// the iterator: the iterator is always introduced at Int and only a body
// assignment to it (if any) could promote it further.
func Collect(prog *ast.Program) *Result {
	c := &collector{r: &Result{types: map[string]Type{}}}
	for _, stmt := range prog.Statements {
		c.stmt(stmt)
	}
	return c.r
}

type collector struct{ r *Result }

func (c *collector) introduce(name string) {
	if _, ok := c.r.types[name]; !ok {
		c.r.types[name] = Int
		c.r.order = append(c.r.order, name)
	}
}

func (c *collector) promote(name string, t Type) {
	if c.r.types[name] == Int {
		c.r.types[name] = t
	}
}

func (c *collector) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		c.stmt(stmt)
	}
}

func (c *collector) stmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Assignment:
		c.introduce(v.Name)
		c.applyFromExpr(v.Name, v.Value)
	case *ast.Read:
		for _, name := range v.Names {
			c.introduce(name)
		}
	case *ast.For:
		c.introduce(v.Iterator)
		c.introduceOperands(v.Start)
		c.introduceOperands(v.Stop)
		c.introduceOperands(v.Step)
		c.block(v.Body)
	case *ast.If:
		c.introduceOperands(v.Cond)
		c.block(v.Then)
		c.block(v.Else)
	case *ast.While:
		c.introduceOperands(v.Cond)
		c.block(v.Body)
	case *ast.DoWhile:
		c.block(v.Body)
		c.introduceOperands(v.Cond)
	case *ast.RepeatUntil:
		c.block(v.Body)
		c.introduceOperands(v.Cond)
	case *ast.Write:
		for _, val := range v.Values {
			c.introduceOperands(val)
		}
	}
}

// introduceOperands walks expr and introduces (at default Int) every
// Identifier it reaches — a variable referenced only as a use (a FOR bound,
// a condition, an RHS operand) must still be collected, or the emitter will
// never declare it and the generated C++ won't compile.
func (c *collector) introduceOperands(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Identifier:
		c.introduce(v.Name)
	case *ast.BinOp:
		c.introduceOperands(v.Left)
		c.introduceOperands(v.Right)
	case *ast.UnaryOp:
		c.introduceOperands(v.Operand)
	}
}

// applyFromExpr introduces every identifier expr references, then promotes
// name according to what expr contains (rules 2-4).
func (c *collector) applyFromExpr(name string, expr ast.Expr) {
	c.introduceOperands(expr)
	if containsBoolLiteral(expr) {
		c.promote(name, Bool)
		return
	}
	if containsRealDivisionSqrtOrRealLiteral(expr) {
		c.promote(name, Double)
	}
}

func containsBoolLiteral(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.BoolLiteral:
		return true
	case *ast.BinOp:
		return containsBoolLiteral(v.Left) || containsBoolLiteral(v.Right)
	case *ast.UnaryOp:
		return containsBoolLiteral(v.Operand)
	default:
		return false
	}
}

func containsRealDivisionSqrtOrRealLiteral(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.RealLiteral:
		return true
	case *ast.BinOp:
		if v.Op == "/" {
			return true
		}
		return containsRealDivisionSqrtOrRealLiteral(v.Left) || containsRealDivisionSqrtOrRealLiteral(v.Right)
	case *ast.UnaryOp:
		if v.Op == "SQRT" {
			return true
		}
		return containsRealDivisionSqrtOrRealLiteral(v.Operand)
	default:
		return false
	}
}
