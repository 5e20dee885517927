package emitter

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/maiaiia/pseudocronic/internal/lexer"
	"github.com/maiaiia/pseudocronic/internal/parser"
)

func emit(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	prog, err := parser.ParseProgram(l)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Emit(prog)
}

func TestEmitPreambleAndMain(t *testing.T) {
	out := emit(t, "x <- 1")
	if !strings.Contains(out, "#include <iostream>") {
		t.Fatal("expected iostream include")
	}
	if !strings.Contains(out, "#include <cmath>") {
		t.Fatal("expected cmath include")
	}
	if !strings.Contains(out, "int main() {") {
		t.Fatal("expected int main()")
	}
	if !strings.Contains(out, "return 0;") {
		t.Fatal("expected return 0;")
	}
}

func TestEmitDeclarationsGroupedByType(t *testing.T) {
	out := emit(t, `
i <- 1
f <- 2.5
b <- adevarat`)
	if !strings.Contains(out, "int i;") {
		t.Fatalf("expected int declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "double f;") {
		t.Fatalf("expected double declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "bool b;") {
		t.Fatalf("expected bool declaration, got:\n%s", out)
	}
	// int group must precede double, which must precede bool.
	iPos := strings.Index(out, "int i;")
	fPos := strings.Index(out, "double f;")
	bPos := strings.Index(out, "bool b;")
	if !(iPos < fPos && fPos < bPos) {
		t.Fatalf("expected declaration order int < double < bool, got positions %d %d %d", iPos, fPos, bPos)
	}
}

func TestEmitAssignmentAndExpression(t *testing.T) {
	out := emit(t, "x <- 1 + 2 * 3")
	if !strings.Contains(out, "x = (1 + (2 * 3));") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitDivisionCastsToDouble(t *testing.T) {
	out := emit(t, "x <- a / b")
	if !strings.Contains(out, "((double)a / b)") {
		t.Fatalf("expected cast division, got:\n%s", out)
	}
}

func TestEmitPowerUsesPow(t *testing.T) {
	out := emit(t, "x <- a ^ b")
	if !strings.Contains(out, "pow(a, b)") {
		t.Fatalf("expected pow(a, b), got:\n%s", out)
	}
}

func TestEmitReadAndWrite(t *testing.T) {
	out := emit(t, "citeste a, b\nscrie a, b")
	if !strings.Contains(out, "cin >> a >> b;") {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(out, "cout << a << b;") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitIfElse(t *testing.T) {
	out := emit(t, `
daca x > 0 atunci
  scrie "pozitiv"
altfel
  scrie "nepozitiv"
sfarsit_daca`)
	if !strings.Contains(out, "if (") || !strings.Contains(out, "} else {") {
		t.Fatalf("expected if/else shape, got:\n%s", out)
	}
}

func TestEmitIfWithoutElseOmitsElseBranch(t *testing.T) {
	out := emit(t, `
daca x > 0 atunci
  scrie "pozitiv"
sfarsit_daca`)
	if strings.Contains(out, "else") {
		t.Fatalf("did not expect an else branch, got:\n%s", out)
	}
}

func TestEmitDoWhileClosesOnTwoSeparateLines(t *testing.T) {
	out := emit(t, `
executa
  x <- x + 1
cat timp x < 10`)
	lines := strings.Split(out, "\n")
	closeLine := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "}" {
			closeLine = i
			break
		}
	}
	if closeLine < 0 {
		t.Fatalf("expected a closing brace on its own line, got:\n%s", out)
	}
	next := strings.TrimSpace(lines[closeLine+1])
	if !strings.HasPrefix(next, "while (") {
		t.Fatalf("expected 'while (...)' on the line immediately after the closing brace, got %q", next)
	}
}

func TestEmitRepeatUntilNegatesCondition(t *testing.T) {
	out := emit(t, `
repeta
  x <- x + 1
pana cand x >= 10`)
	if !strings.Contains(out, "} while (!(") {
		t.Fatalf("expected negated repeat-until condition, got:\n%s", out)
	}
}

func TestEmitForWithUnitStepUsesIncrement(t *testing.T) {
	out := emit(t, `
pentru i <- 1, 10 executa
  scrie i
sfarsit_pentru`)
	if !strings.Contains(out, "for (i = 1; i <= 10; i++) {") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitForWithNegativeUnitStepUsesDecrement(t *testing.T) {
	out := emit(t, `
pentru i <- 10, 1, -1 executa
  scrie i
sfarsit_pentru`)
	if !strings.Contains(out, "for (i = 10; i >= 1; i--) {") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitForWithNonUnitLiteralStepUsesCompoundAssignment(t *testing.T) {
	out := emit(t, `
pentru i <- 1, 10, 2 executa
  scrie i
sfarsit_pentru`)
	if !strings.Contains(out, "for (i = 1; i <= 10; i += 2) {") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitForWithNonLiteralStepUsesTernaryGuard(t *testing.T) {
	out := emit(t, `
pentru i <- 1, n, pas executa
  scrie i
sfarsit_pentru`)
	if !strings.Contains(out, "pas >= 0 ? i <= n : i >= n") {
		t.Fatalf("expected a ternary direction guard for a non-literal step, got:\n%s", out)
	}
}

func TestEmitStringEscaping(t *testing.T) {
	out := emit(t, `scrie "a\nb\"c"`)
	if !strings.Contains(out, `"a\nb\"c"`) {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitBoolLiterals(t *testing.T) {
	out := emit(t, "x <- adevarat\ny <- fals")
	if !strings.Contains(out, "x = true;") || !strings.Contains(out, "y = false;") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitFullProgramSnapshot(t *testing.T) {
	out := emit(t, `
pentru i <- 1, 10 executa
  daca i % 2 = 0 atunci
    scrie i, " este par"
  altfel
    scrie i, " este impar"
  sfarsit_daca
sfarsit_pentru`)
	snaps.MatchSnapshot(t, out)
}

func TestEmitSqrtAndFloor(t *testing.T) {
	out := emit(t, "x <- sqrt(9) + [3.7]")
	if !strings.Contains(out, "sqrt(9)") {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(out, "(long long)(3.7)") {
		t.Fatalf("got:\n%s", out)
	}
}
