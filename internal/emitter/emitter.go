// Package emitter implements the C++ emitter (spec component C6): a
// single-pass AST walk that, guided by the type collector's inferred
// variable types, produces a self-contained C++ translation unit.
package emitter

import (
	"strings"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/parser"
	"github.com/maiaiia/pseudocronic/internal/types"
)

const indentUnit = "    "

// Emit translates prog into a compilable C++ source string.
func Emit(prog *ast.Program) string {
	result := types.Collect(prog)
	var b strings.Builder
	b.WriteString("#include <iostream>\n#include <cmath>\nusing namespace std;\n\nint main() {\n")
	emitDeclarations(&b, result)
	e := &emitter{out: &b}
	for _, stmt := range prog.Statements {
		e.stmt(stmt, 1)
	}
	b.WriteString("    return 0;\n}\n")
	return b.String()
}

func emitDeclarations(b *strings.Builder, result *types.Result) {
	groups := map[types.Type][]string{}
	for _, name := range result.Names() {
		t := result.Type(name)
		groups[t] = append(groups[t], name)
	}
	order := []types.Type{types.Int, types.LongLong, types.Double, types.Bool}
	any := false
	for _, t := range order {
		names := groups[t]
		if len(names) == 0 {
			continue
		}
		b.WriteString(indentUnit + t.CppName() + " " + strings.Join(names, ", ") + ";\n")
		any = true
	}
	if any {
		b.WriteString("\n")
	}
}

type emitter struct {
	out *strings.Builder
}

func indent(n int) string { return strings.Repeat(indentUnit, n) }

func (e *emitter) block(b *ast.Block, level int) {
	for _, stmt := range b.Statements {
		e.stmt(stmt, level)
	}
}

func (e *emitter) stmt(s ast.Stmt, level int) {
	ind := indent(level)
	switch v := s.(type) {
	case *ast.Assignment:
		e.out.WriteString(ind + v.Name + " = " + e.expr(v.Value) + ";\n")

	case *ast.Read:
		e.out.WriteString(ind + "cin")
		for _, name := range v.Names {
			e.out.WriteString(" >> " + name)
		}
		e.out.WriteString(";\n")

	case *ast.Write:
		e.out.WriteString(ind + "cout")
		for _, val := range v.Values {
			e.out.WriteString(" << " + e.expr(val))
		}
		e.out.WriteString(";\n")

	case *ast.If:
		e.out.WriteString(ind + "if (" + e.expr(v.Cond) + ") {\n")
		e.block(v.Then, level+1)
		e.out.WriteString(ind + "}")
		if v.Else != nil && len(v.Else.Statements) > 0 {
			e.out.WriteString(" else {\n")
			e.block(v.Else, level+1)
			e.out.WriteString(ind + "}")
		}
		e.out.WriteString("\n")

	case *ast.While:
		e.out.WriteString(ind + "while (" + e.expr(v.Cond) + ") {\n")
		e.block(v.Body, level+1)
		e.out.WriteString(ind + "}\n")

	case *ast.DoWhile:
		e.out.WriteString(ind + "do {\n")
		e.block(v.Body, level+1)
		e.out.WriteString(ind + "}\n")
		e.out.WriteString(ind + "while (" + e.expr(v.Cond) + ");\n")

	case *ast.RepeatUntil:
		e.out.WriteString(ind + "do {\n")
		e.block(v.Body, level+1)
		e.out.WriteString(ind + "} while (!(" + e.expr(v.Cond) + "));\n")

	case *ast.For:
		e.forStmt(v, level)

	case *ast.Block:
		e.block(v, level)
	}
}

func (e *emitter) forStmt(f *ast.For, level int) {
	ind := indent(level)
	iter := f.Iterator
	stop := e.expr(f.Stop)

	var cond, inc string
	if val, ok := literalNumber(f.Step); ok {
		switch {
		case val == 1:
			cond = iter + " <= " + stop
			inc = iter + "++"
		case val == -1:
			cond = iter + " >= " + stop
			inc = iter + "--"
		case val < 0:
			cond = iter + " >= " + stop
			inc = iter + " += " + e.expr(f.Step)
		case val > 0:
			cond = iter + " <= " + stop
			inc = iter + " += " + e.expr(f.Step)
		default:
			cond = "(" + e.expr(f.Step) + " >= 0 ? " + iter + " <= " + stop + " : " + iter + " >= " + stop + ")"
			inc = iter + " += " + e.expr(f.Step)
		}
	} else {
		cond = "(" + e.expr(f.Step) + " >= 0 ? " + iter + " <= " + stop + " : " + iter + " >= " + stop + ")"
		inc = iter + " += " + e.expr(f.Step)
	}

	e.out.WriteString(ind + "for (" + iter + " = " + e.expr(f.Start) + "; " + cond + "; " + inc + ") {\n")
	e.block(f.Body, level+1)
	e.out.WriteString(ind + "}\n")
}

// literalNumber reports the compile-time numeric value of e when e is an
// integer or real literal, or a unary minus applied to one (the only shape
// a negative FOR step literal takes, since the lexer never produces a
// signed numeric token).
func literalNumber(e ast.Expr) (float64, bool) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		n, f, ok := parser.ParseNumber(v.Raw)
		if !ok {
			return 0, false
		}
		return float64(n) + f, true
	case *ast.RealLiteral:
		n, f, ok := parser.ParseNumber(v.Raw)
		if !ok {
			return 0, false
		}
		return float64(n) + f, true
	case *ast.UnaryOp:
		if v.Op == "MINUS" {
			if n, ok := literalNumber(v.Operand); ok {
				return -n, true
			}
		}
	}
	return 0, false
}

func (e *emitter) expr(ex ast.Expr) string {
	switch v := ex.(type) {
	case *ast.IntLiteral:
		return v.Raw
	case *ast.RealLiteral:
		return v.Raw
	case *ast.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.StringLiteral:
		return `"` + cppEscape(v.Value) + `"`
	case *ast.Identifier:
		return v.Name
	case *ast.BinOp:
		return e.binOp(v)
	case *ast.UnaryOp:
		return e.unaryOp(v)
	default:
		return ""
	}
}

func (e *emitter) binOp(v *ast.BinOp) string {
	l, r := e.expr(v.Left), e.expr(v.Right)
	switch v.Op {
	case "/":
		return "((double)" + l + " / " + r + ")"
	case "^":
		return "pow(" + l + ", " + r + ")"
	case "=":
		return "(" + l + " == " + r + ")"
	case "AND":
		return "(" + l + " && " + r + ")"
	case "OR":
		return "(" + l + " || " + r + ")"
	default:
		// "+" "-" "*" "%" "!=" "<" "<=" ">" ">=" map verbatim.
		return "(" + l + " " + v.Op + " " + r + ")"
	}
}

func (e *emitter) unaryOp(v *ast.UnaryOp) string {
	x := e.expr(v.Operand)
	switch v.Op {
	case "SQRT":
		return "sqrt(" + x + ")"
	case "FLOOR":
		return "(long long)(" + x + ")"
	case "NOT":
		return "!(" + x + ")"
	case "MINUS":
		return "-(" + x + ")"
	default:
		return x
	}
}

func cppEscape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
		"\r", `\r`,
	)
	return r.Replace(s)
}
