package lexer

import (
	"testing"

	"github.com/maiaiia/pseudocronic/internal/token"
)

func kinds(t *testing.T, input string) []token.Kind {
	t.Helper()
	toks, err := All(input)
	if err != nil {
		t.Fatalf("All(%q) returned error: %v", input, err)
	}
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func assertKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	got := kinds(t, input)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d: got %s, want %s", input, i, got[i], want[i])
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	assertKinds(t, "daca atunci altfel sfarsit_daca",
		token.DACA, token.ATUNCI, token.ALTFEL, token.SFARSIT_DACA)
	assertKinds(t, "pentru sfarsit_pentru", token.PENTRU, token.SFARSIT_PENTRU)
	assertKinds(t, "repeta citeste scrie", token.REPETA, token.CITESTE, token.SCRIE)
	assertKinds(t, "adevarat fals not si sau",
		token.TRUE, token.FALSE, token.NOT, token.AND, token.OR)
}

func TestLexerTwoWordKeywords(t *testing.T) {
	assertKinds(t, "cat timp", token.CAT_TIMP)
	assertKinds(t, "pana cand", token.PANA_CAND)
}

func TestLexerTwoWordKeywordFallsBackWhenSecondWordMismatches(t *testing.T) {
	// "cat" not followed by "timp" is just an ordinary identifier.
	assertKinds(t, "cat valoare", token.ID, token.ID)
}

func TestLexerDiacriticFolding(t *testing.T) {
	assertKinds(t, "DACĂ", token.DACA)
	assertKinds(t, "PÂNĂ CÂND", token.PANA_CAND)
}

func TestLexerNumbers(t *testing.T) {
	toks, err := All("42 3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Lexeme != "42" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Kind != token.NUMBER || toks[1].Lexeme != "3.14" {
		t.Fatalf("got %v", toks[1])
	}
}

func TestLexerOperators(t *testing.T) {
	assertKinds(t, "<- := != ≠ <= ≤ >= ≥ ^ = + - * / %",
		token.ASSIGN, token.ASSIGN, token.NEQ, token.NEQ, token.LTE, token.LTE,
		token.GTE, token.GTE, token.POW, token.EQ, token.PLUS, token.MINUS,
		token.MUL, token.DIV, token.MOD)
}

func TestLexerString(t *testing.T) {
	toks, err := All(`"salut\n"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.STRING {
		t.Fatalf("got %v", toks[0])
	}
	if toks[0].Lexeme != `"salut\n"` {
		t.Fatalf("expected raw lexeme to keep escape and quotes, got %q", toks[0].Lexeme)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	if _, err := All(`"neterminat`); err == nil {
		t.Fatal("expected lexical error for unterminated string")
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	if _, err := All("x @ y"); err == nil {
		t.Fatal("expected lexical error for '@'")
	}
}

func TestLexerColumnCountsRunesNotBytes(t *testing.T) {
	// "ă" is two bytes in UTF-8 but must occupy one column.
	toks, err := All("ă x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Pos.Column != 1 {
		t.Fatalf("expected first token at column 1, got %d", toks[0].Pos.Column)
	}
	if toks[1].Pos.Column != 3 {
		t.Fatalf("expected second token at column 3, got %d", toks[1].Pos.Column)
	}
}

func TestLexerLineTracking(t *testing.T) {
	toks, err := All("x\ny\nz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Pos.Line != 1 || toks[1].Pos.Line != 2 || toks[2].Pos.Line != 3 {
		t.Fatalf("unexpected line numbers: %v %v %v", toks[0].Pos, toks[1].Pos, toks[2].Pos)
	}
}
