package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// keywords holds every single-word keyword (including the underscore-joined
// "sfarsit_*" family), keyed by their diacritic-folded, case-folded form.
// "cat timp" and "pana cand" are two-word keywords and are handled
// separately by the lexer via lookahead (see LeadsTwoWordKeyword).
var keywords = map[string]Kind{
	"executa":        EXECUTA,
	"sfarsit_cat_timp": SFARSIT_CAT,
	"daca":           DACA,
	"atunci":         ATUNCI,
	"altfel":         ALTFEL,
	"sfarsit_daca":   SFARSIT_DACA,
	"pentru":         PENTRU,
	"sfarsit_pentru": SFARSIT_PENTRU,
	"repeta":         REPETA,
	"citeste":        CITESTE,
	"scrie":          SCRIE,
	"sqrt":           SQRT,
	"adevarat":       TRUE,
	"fals":           FALSE,
	"not":            NOT,
	"si":             AND,
	"sau":            OR,
}

var foldFn = cases.Fold()

// FoldKeyword normalizes an identifier candidate for keyword lookup: it
// case-folds it and strips Romanian diacritics (ă/â→a, î→i, ș/ş→s, ț/ţ→t)
// by NFD-decomposing and discarding combining marks, so "Pana", "PANA",
// and "până" all fold to the same lookup key.
func FoldKeyword(s string) string {
	s = foldFn.String(s)
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // drop combining marks (diacritics)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LookupIdent resolves a single already-read word to a keyword Kind, or ID
// if it is not a keyword. Two-word keywords ("cat timp", "pana cand") are
// resolved by the lexer via LeadsTwoWordKeyword / IsSecondWord.
func LookupIdent(word string) Kind {
	if kind, ok := keywords[FoldKeyword(word)]; ok {
		return kind
	}
	return ID
}

// twoWordKeywords maps the folded first word to the folded second word and
// the resulting Kind, e.g. "cat" + "timp" -> CAT_TIMP.
type twoWordEntry struct {
	second string
	kind   Kind
}

var twoWordKeywords = map[string]twoWordEntry{
	"cat":  {second: "timp", kind: CAT_TIMP},
	"pana": {second: "cand", kind: PANA_CAND},
}

// LeadsTwoWordKeyword reports whether folded word could begin a two-word
// keyword, and returns the expected (folded) second word and resulting Kind.
func LeadsTwoWordKeyword(word string) (secondWord string, kind Kind, ok bool) {
	entry, found := twoWordKeywords[FoldKeyword(word)]
	if !found {
		return "", ILLEGAL, false
	}
	return entry.second, entry.kind, true
}

// IsSecondWord reports whether folded word matches the expected second word
// of a two-word keyword lookahead.
func IsSecondWord(word, expected string) bool {
	return FoldKeyword(word) == expected
}

// FoldIdentifier case-folds (but does not diacritic-strip) an identifier for
// case-insensitive variable-name comparison, per the language's
// case-insensitive identifier rule.
func FoldIdentifier(s string) string {
	return foldFn.String(s)
}
