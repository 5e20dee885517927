// Package parser implements a recursive-descent parser with an explicit
// precedence ladder over the pseudocode token stream, producing an
// internal/ast tree. The first error encountered aborts parsing — this
// dialect has no error-recovery mode (spec §4.3 "Error policy").
package parser

import (
	"strconv"
	"strings"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/errors"
	"github.com/maiaiia/pseudocronic/internal/lexer"
	"github.com/maiaiia/pseudocronic/internal/token"
)

// Parser consumes tokens from a Lexer one at a time with a single token of
// lookahead (peek).
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token
}

// New creates a Parser over l and primes cur/peek.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{l: l}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) curIs(k token.Kind) bool { return p.cur.Kind == k }

// expect checks the current token's kind, consumes it, and advances — or
// returns a SyntaxError quoting the expected kind, the found kind, and the
// line, per spec §4.3.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, errors.New(errors.SyntaxError, p.cur.Pos,
			"asteptat %s, gasit %s", k, p.cur.Kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// ParseProgram parses the entire token stream into a *ast.Program.
func ParseProgram(l *lexer.Lexer) (*ast.Program, error) {
	p, err := New(l)
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// parseStatementsUntil parses statements until the current token's kind is
// one of stop, without consuming that terminator.
func (p *Parser) parseStatementsUntil(stop ...token.Kind) (*ast.Block, error) {
	block := &ast.Block{Line: p.cur.Pos.Line}
	for !p.atAny(stop...) && !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.ID:
		return p.parseAssignment()
	case token.CAT_TIMP:
		return p.parseWhile()
	case token.PENTRU:
		return p.parseFor()
	case token.DACA:
		return p.parseIf()
	case token.REPETA:
		return p.parseRepeatUntil()
	case token.EXECUTA:
		return p.parseDoWhile()
	case token.CITESTE:
		return p.parseRead()
	case token.SCRIE:
		return p.parseWrite()
	default:
		return nil, errors.New(errors.SyntaxError, p.cur.Pos,
			"instructiune neasteptata, gasit %s", p.cur.Kind)
	}
}

func (p *Parser) parseAssignment() (ast.Stmt, error) {
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: nameTok.Lexeme, Value: value, Line: nameTok.Pos.Line}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.CAT_TIMP); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EXECUTA); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(token.SFARSIT_CAT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SFARSIT_CAT); err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Line: line}, nil
}

func (p *Parser) parseDoWhile() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.EXECUTA); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(token.CAT_TIMP)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CAT_TIMP); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.DoWhile{Body: body, Cond: cond, Line: line}, nil
}

func (p *Parser) parseRepeatUntil() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.REPETA); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(token.PANA_CAND)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PANA_CAND); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatUntil{Body: body, Cond: cond, Line: line}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.PENTRU); err != nil {
		return nil, err
	}
	iterTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	stop, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var step ast.Expr = &ast.IntLiteral{Raw: "1", Line: line}
	if p.curIs(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		step, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.EXECUTA); err != nil {
		return nil, err
	}
	body, err := p.parseStatementsUntil(token.SFARSIT_PENTRU)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SFARSIT_PENTRU); err != nil {
		return nil, err
	}
	return &ast.For{Iterator: iterTok.Lexeme, Start: start, Stop: stop, Step: step, Body: body, Line: line}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.DACA); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ATUNCI); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseStatementsUntil(token.ALTFEL, token.SFARSIT_DACA)
	if err != nil {
		return nil, err
	}
	elseBlock := &ast.Block{Line: line}
	if p.curIs(token.ALTFEL) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseStatementsUntil(token.SFARSIT_DACA)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SFARSIT_DACA); err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: thenBlock, Else: elseBlock, Line: line}, nil
}

func (p *Parser) parseRead() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.CITESTE); err != nil {
		return nil, err
	}
	var names []string
	idTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	names = append(names, idTok.Lexeme)
	for p.curIs(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		idTok, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		names = append(names, idTok.Lexeme)
	}
	return &ast.Read{Names: names, Line: line}, nil
}

func (p *Parser) parseWrite() (ast.Stmt, error) {
	line := p.cur.Pos.Line
	if _, err := p.expect(token.SCRIE); err != nil {
		return nil, err
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	values := []ast.Expr{first}
	for p.curIs(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return &ast.Write{Values: values, Line: line}, nil
}

// --- expression precedence ladder: OR -> AND -> NOT -> relational ->
// additive -> multiplicative -> power -> unary minus -> primary.

func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OR) {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: "OR", Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.AND) {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: "AND", Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.curIs(token.NOT) {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "NOT", Operand: operand, Line: line}, nil
	}
	return p.parseRelational()
}

var relOps = map[token.Kind]string{
	token.LT:  "<",
	token.GT:  ">",
	token.EQ:  "=",
	token.NEQ: "!=",
	token.LTE: "<=",
	token.GTE: ">=",
}

// parseRelational allows a single comparison per chain (non-associative):
// it does not loop after consuming one relational operator.
func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := relOps[p.cur.Kind]; ok {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: op, Left: left, Right: right, Line: line}, nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		op := "+"
		if p.curIs(token.MINUS) {
			op = "-"
		}
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.MUL) || p.curIs(token.DIV) || p.curIs(token.MOD) {
		var op string
		switch p.cur.Kind {
		case token.MUL:
			op = "*"
		case token.DIV:
			op = "/"
		case token.MOD:
			op = "%"
		}
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

// parsePower implements '^' left-to-right, a documented intentional
// simplification (spec §9 Open Questions) rather than the mathematically
// conventional right-associative exponentiation.
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.POW) {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: "^", Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.curIs(token.MINUS) {
		line := p.cur.Pos.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "MINUS", Operand: operand, Line: line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Kind {
	case token.NUMBER:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if strings.Contains(tok.Lexeme, ".") {
			return &ast.RealLiteral{Raw: tok.Lexeme, Line: tok.Pos.Line}, nil
		}
		return &ast.IntLiteral{Raw: tok.Lexeme, Line: tok.Pos.Line}, nil
	case token.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		value := unescapeString(tok.Lexeme)
		return &ast.StringLiteral{Raw: tok.Lexeme, Value: value, Line: tok.Pos.Line}, nil
	case token.ID:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: tok.Lexeme, Line: tok.Pos.Line}, nil
	case token.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: true, Line: tok.Pos.Line}, nil
	case token.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: false, Line: tok.Pos.Line}, nil
	case token.SQRT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "SQRT", Operand: inner, Line: tok.Pos.Line}, nil
	case token.LBRACKET:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "FLOOR", Operand: inner, Line: tok.Pos.Line}, nil
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, errors.New(errors.SyntaxError, tok.Pos, "expresie neasteptata, gasit %s", tok.Kind)
	}
}

// unescapeString strips the delimiting quotes from a raw string lexeme and
// resolves backslash escapes (\n, \t, \\, \' , \").
func unescapeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte('\\')
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// ParseNumber is a small helper re-exported for callers (e.g. the type
// collector) that need to know whether a literal's raw text is integral
// without re-implementing the '.' check.
func ParseNumber(raw string) (int64, float64, bool) {
	if strings.Contains(raw, ".") {
		f, err := strconv.ParseFloat(raw, 64)
		return 0, f, err == nil
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	return i, 0, err == nil
}
