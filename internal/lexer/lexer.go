// Package lexer turns pseudocode source text into a stream of tokens.
//
// The scanner reads one rune at a time (not a regex alternation) but
// honors the same ordering contract the grammar specifies: multi-character
// operators are tried before their single-character prefixes, and the two
// two-word keywords ("cat timp", "pana cand") are resolved by a one-word
// lookahead after an ordinary identifier scan, rather than by a dedicated
// grammar rule. Column positions count runes, not bytes, so multi-byte
// Romanian diacritics (ă, â, î, ș, ț) occupy exactly one column each.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maiaiia/pseudocronic/internal/errors"
	"github.com/maiaiia/pseudocronic/internal/token"
)

// Lexer scans a pseudocode source string into tokens.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of next rune
	line         int
	column       int
	ch           rune
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if r == utf8.RuneError && width <= 1 {
		r = rune(l.input[l.readPosition])
		width = 1
	}
	l.position = l.readPosition
	l.readPosition += width
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

// lexerState is a snapshot used for the one-word lookahead needed to
// resolve two-word keywords without backtracking the whole parser.
type lexerState struct {
	position, readPosition, line, column int
	ch                                   rune
}

func (l *Lexer) save() lexerState {
	return lexerState{l.position, l.readPosition, l.line, l.column, l.ch}
}

func (l *Lexer) restore(s lexerState) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
}

// skipSpaces discards spaces, tabs, and newlines; newlines bump the line
// counter (already handled in readChar) and are otherwise insignificant.
func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// skipIntraLineSpaces discards only spaces/tabs, used for two-word keyword
// lookahead since a keyword phrase does not span a newline.
func (l *Lexer) skipIntraLineSpaces() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString reads a quoted string literal, keeping the raw quoted text
// (including the delimiting quotes and any backslash escapes) as the
// lexeme; unescaping happens later, in the parser's literal construction.
func (l *Lexer) readString(quote rune) (string, error) {
	startPos := l.pos()
	var b strings.Builder
	b.WriteRune(quote)
	l.readChar() // consume opening quote
	for {
		if l.ch == 0 {
			return "", errors.New(errors.LexicalError, startPos, "sir de caractere neinchis")
		}
		if l.ch == '\\' {
			b.WriteRune(l.ch)
			l.readChar()
			if l.ch == 0 {
				return "", errors.New(errors.LexicalError, startPos, "sir de caractere neinchis")
			}
			b.WriteRune(l.ch)
			l.readChar()
			continue
		}
		if l.ch == quote {
			b.WriteRune(l.ch)
			l.readChar()
			break
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	return b.String(), nil
}

// Next scans and returns the next token. It returns a *errors.PositionedError
// (LexicalError) if the current character matches no lexical rule.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpaces()
	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.New(token.EOF, "", pos), nil

	case l.ch == '\'' || l.ch == '"':
		lit, err := l.readString(l.ch)
		if err != nil {
			return token.Token{}, err
		}
		return token.New(token.STRING, lit, pos), nil

	case isDigit(l.ch):
		lit := l.readNumber()
		return token.New(token.NUMBER, lit, pos), nil

	case isLetter(l.ch):
		word := l.readIdentifier()
		if second, kind, ok := token.LeadsTwoWordKeyword(word); ok {
			snapshot := l.save()
			l.skipIntraLineSpaces()
			if isLetter(l.ch) {
				secondWord := l.readIdentifier()
				if token.IsSecondWord(secondWord, second) {
					return token.New(kind, word+" "+secondWord, pos), nil
				}
			}
			l.restore(snapshot)
		}
		kind := token.LookupIdent(word)
		return token.New(kind, word, pos), nil

	default:
		return l.lexOperator(pos)
	}
}

func (l *Lexer) lexOperator(pos token.Position) (token.Token, error) {
	ch := l.ch
	two := func(kind token.Kind, lexeme string) (token.Token, error) {
		l.readChar()
		l.readChar()
		return token.New(kind, lexeme, pos), nil
	}
	one := func(kind token.Kind) (token.Token, error) {
		lexeme := string(ch)
		l.readChar()
		return token.New(kind, lexeme, pos), nil
	}

	switch ch {
	case '<':
		switch l.peekChar() {
		case '-':
			return two(token.ASSIGN, "<-")
		case '=':
			return two(token.LTE, "<=")
		default:
			return one(token.LT)
		}
	case ':':
		if l.peekChar() == '=' {
			return two(token.ASSIGN, ":=")
		}
		return token.Token{}, errors.New(errors.LexicalError, pos, "caracter neasteptat: ':'")
	case '!':
		if l.peekChar() == '=' {
			return two(token.NEQ, "!=")
		}
		return token.Token{}, errors.New(errors.LexicalError, pos, "caracter neasteptat: '!'")
	case '≠':
		return one(token.NEQ)
	case '>':
		if l.peekChar() == '=' {
			return two(token.GTE, ">=")
		}
		return one(token.GT)
	case '≥':
		return one(token.GTE)
	case '≤':
		return one(token.LTE)
	case '^':
		return one(token.POW)
	case '=':
		return one(token.EQ)
	case '+':
		return one(token.PLUS)
	case '-':
		return one(token.MINUS)
	case '*':
		return one(token.MUL)
	case '/':
		return one(token.DIV)
	case '%':
		return one(token.MOD)
	case '[':
		return one(token.LBRACKET)
	case ']':
		return one(token.RBRACKET)
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case ',':
		return one(token.COMMA)
	default:
		lexeme := string(ch)
		l.readChar()
		return token.Token{}, errors.New(errors.LexicalError, pos, "caracter necunoscut: %q", lexeme)
	}
}

// All lexes the entire input, stopping at the first error or at EOF
// (EOF is included as the final token).
func All(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
