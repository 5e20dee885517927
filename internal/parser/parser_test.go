package parser

import (
	"strings"
	"testing"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	prog, err := ParseProgram(l)
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseAssignment(t *testing.T) {
	prog := parseSource(t, "x <- 1 + 2")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", prog.Statements[0])
	}
	if assign.Name != "x" {
		t.Fatalf("expected name x, got %q", assign.Name)
	}
	bin, ok := assign.Value.(*ast.BinOp)
	if !ok {
		t.Fatalf("expected *ast.BinOp, got %T", assign.Value)
	}
	if bin.Op != "+" {
		t.Fatalf("expected +, got %q", bin.Op)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseSource(t, `
daca x > 0 atunci
  scrie "pozitiv"
altfel
  scrie "nepozitiv"
sfarsit_daca`)
	stmt, ok := prog.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", prog.Statements[0])
	}
	if len(stmt.Then.Statements) != 1 || len(stmt.Else.Statements) != 1 {
		t.Fatalf("expected one statement per branch, got then=%d else=%d",
			len(stmt.Then.Statements), len(stmt.Else.Statements))
	}
}

func TestParseIfWithoutElseGetsEmptyElseBlock(t *testing.T) {
	prog := parseSource(t, `
daca x > 0 atunci
  scrie "pozitiv"
sfarsit_daca`)
	stmt := prog.Statements[0].(*ast.If)
	if stmt.Else == nil {
		t.Fatal("expected non-nil (empty) Else block")
	}
	if len(stmt.Else.Statements) != 0 {
		t.Fatalf("expected empty else block, got %d statements", len(stmt.Else.Statements))
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseSource(t, `
cat timp x < 10 executa
  x <- x + 1
sfarsit_cat_timp`)
	stmt, ok := prog.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", prog.Statements[0])
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Body.Statements))
	}
}

func TestParseDoWhile(t *testing.T) {
	prog := parseSource(t, `
executa
  x <- x + 1
cat timp x < 10`)
	stmt, ok := prog.Statements[0].(*ast.DoWhile)
	if !ok {
		t.Fatalf("expected *ast.DoWhile, got %T", prog.Statements[0])
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Body.Statements))
	}
}

func TestParseRepeatUntil(t *testing.T) {
	prog := parseSource(t, `
repeta
  x <- x + 1
pana cand x >= 10`)
	stmt, ok := prog.Statements[0].(*ast.RepeatUntil)
	if !ok {
		t.Fatalf("expected *ast.RepeatUntil, got %T", prog.Statements[0])
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Body.Statements))
	}
}

func TestParseForDefaultStep(t *testing.T) {
	prog := parseSource(t, `
pentru i <- 1, 10 executa
  scrie i
sfarsit_pentru`)
	stmt, ok := prog.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", prog.Statements[0])
	}
	lit, ok := stmt.Step.(*ast.IntLiteral)
	if !ok || lit.Raw != "1" {
		t.Fatalf("expected default step IntLiteral(1), got %#v", stmt.Step)
	}
}

func TestParseForExplicitStep(t *testing.T) {
	prog := parseSource(t, `
pentru i <- 10, 1, -1 executa
  scrie i
sfarsit_pentru`)
	stmt := prog.Statements[0].(*ast.For)
	unary, ok := stmt.Step.(*ast.UnaryOp)
	if !ok || unary.Op != "MINUS" {
		t.Fatalf("expected UnaryOp(MINUS) step, got %#v", stmt.Step)
	}
}

func TestParseReadMultiple(t *testing.T) {
	prog := parseSource(t, "citeste a, b, c")
	stmt, ok := prog.Statements[0].(*ast.Read)
	if !ok {
		t.Fatalf("expected *ast.Read, got %T", prog.Statements[0])
	}
	if len(stmt.Names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(stmt.Names))
	}
}

func TestParseWriteMultiple(t *testing.T) {
	prog := parseSource(t, `scrie "x=", x, "\n"`)
	stmt, ok := prog.Statements[0].(*ast.Write)
	if !ok {
		t.Fatalf("expected *ast.Write, got %T", prog.Statements[0])
	}
	if len(stmt.Values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(stmt.Values))
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string // top-level operator expected at the root
	}{
		{"1 + 2 * 3", "+"},
		{"2 * 3 ^ 2", "*"},
		{"not adevarat si fals", "AND"},
		{"adevarat sau fals si adevarat", "OR"},
	}
	for _, tt := range tests {
		prog := parseSource(t, "x <- "+tt.src)
		assign := prog.Statements[0].(*ast.Assignment)
		bin, ok := assign.Value.(*ast.BinOp)
		if !ok {
			t.Fatalf("%q: expected root BinOp, got %T", tt.src, assign.Value)
		}
		if bin.Op != tt.want {
			t.Fatalf("%q: expected root operator %q, got %q", tt.src, tt.want, bin.Op)
		}
	}
}

func TestParsePowerIsLeftAssociative(t *testing.T) {
	prog := parseSource(t, "x <- 2 ^ 3 ^ 2")
	assign := prog.Statements[0].(*ast.Assignment)
	root, ok := assign.Value.(*ast.BinOp)
	if !ok || root.Op != "^" {
		t.Fatalf("expected root ^, got %#v", assign.Value)
	}
	// Left-associative means the left child is itself "2 ^ 3", not the
	// right child being "3 ^ 2".
	if _, ok := root.Left.(*ast.BinOp); !ok {
		t.Fatalf("expected left-associative nesting on the left child, got %#v", root.Left)
	}
	if _, ok := root.Right.(*ast.IntLiteral); !ok {
		t.Fatalf("expected right child to be the trailing literal, got %#v", root.Right)
	}
}

func TestParseSqrtAndFloor(t *testing.T) {
	prog := parseSource(t, "x <- sqrt(9) + [3.7]")
	assign := prog.Statements[0].(*ast.Assignment)
	bin := assign.Value.(*ast.BinOp)
	sqrt, ok := bin.Left.(*ast.UnaryOp)
	if !ok || sqrt.Op != "SQRT" {
		t.Fatalf("expected SQRT on the left, got %#v", bin.Left)
	}
	floor, ok := bin.Right.(*ast.UnaryOp)
	if !ok || floor.Op != "FLOOR" {
		t.Fatalf("expected FLOOR on the right, got %#v", bin.Right)
	}
}

func TestParseErrorReportsLineAndExpectedKind(t *testing.T) {
	l := lexer.New("daca x atunci\nscrie x\n")
	_, err := ParseProgram(l)
	if err == nil {
		t.Fatal("expected a syntax error for a missing sfarsit_daca")
	}
	if !strings.Contains(err.Error(), "SFARSIT_DACA") {
		t.Fatalf("expected the message to name the expected SFARSIT_DACA, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "linia 2") {
		t.Fatalf("expected the message to report line 2, got %q", err.Error())
	}
}

func TestParseStringLiteralUnescaping(t *testing.T) {
	prog := parseSource(t, `scrie "a\nb"`)
	write := prog.Statements[0].(*ast.Write)
	str := write.Values[0].(*ast.StringLiteral)
	if str.Value != "a\nb" {
		t.Fatalf("expected unescaped newline, got %q", str.Value)
	}
}

func TestParseNumber(t *testing.T) {
	if i, _, ok := ParseNumber("42"); !ok || i != 42 {
		t.Fatalf("ParseNumber(42) = %d, %v, want 42, true", i, ok)
	}
	if _, f, ok := ParseNumber("3.5"); !ok || f != 3.5 {
		t.Fatalf("ParseNumber(3.5) = %f, %v, want 3.5, true", f, ok)
	}
}
