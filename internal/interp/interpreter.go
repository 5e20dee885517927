// Package interp implements the tracing interpreter (spec component C5): a
// single-threaded, synchronous visitor over the AST that maintains one
// global variable store, accumulates WRITE output, and — when tracing is
// enabled — records one ExecutionStep after every node visit.
package interp

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/errors"
	"github.com/maiaiia/pseudocronic/internal/token"
)

// Step is one recorded observation of interpreter progress (spec §3
// "Execution step"). Value is nil for nodes that don't produce a single
// scalar result (blocks, READ, the program itself); a WRITE records the
// value of its last operand.
type Step struct {
	StepNumber  int
	NodeKind    string
	Line        int
	Description string
	Snapshot    map[string]Value
	Value       *Value
	NodeDetails string
	OutputSoFar string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

func WithEnvironment(env *Environment) Option { return func(it *Interpreter) { it.env = env } }
func WithInput(in InputProvider) Option        { return func(it *Interpreter) { it.input = in } }
func WithWriter(w io.Writer) Option            { return func(it *Interpreter) { it.out = w } }
func WithTrace(enabled bool) Option            { return func(it *Interpreter) { it.trace = enabled } }

// WithMaxSteps bounds the number of AST-node visits a run may perform
// before it aborts with a RuntimeError. This is the in-process mechanism a
// host uses to cap a non-terminating program (spec §5); 0 means unlimited.
func WithMaxSteps(n int) Option { return func(it *Interpreter) { it.maxSteps = n } }

// WithStepCallback registers a callback invoked synchronously, in the
// caller's thread, immediately after each Step is recorded (only while
// tracing is enabled).
func WithStepCallback(fn func(Step)) Option { return func(it *Interpreter) { it.onStep = fn } }

// Interpreter walks a parsed program, evaluating it against one global
// Environment.
type Interpreter struct {
	env   *Environment
	out   io.Writer
	input InputProvider

	outBuf strings.Builder

	trace     bool
	steps     []Step
	stepCount int
	maxSteps  int
	onStep    func(Step)
}

func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		env:   NewEnvironment(),
		out:   io.Discard,
		input: NewQueueInput(nil),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func (it *Interpreter) Environment() *Environment { return it.env }
func (it *Interpreter) Output() string            { return it.outBuf.String() }
func (it *Interpreter) Steps() []Step              { return it.steps }

// Run executes prog's top-level statements in order.
func (it *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return it.record(prog, "PROGRAM", "executia programului s-a incheiat", nil)
}

// record appends (or, when tracing is off, merely counts) one step. The
// step counter is maintained unconditionally so WithMaxSteps still bounds
// untraced runs.
func (it *Interpreter) record(node ast.Node, details, description string, value *Value) error {
	it.stepCount++
	if it.maxSteps > 0 && it.stepCount > it.maxSteps {
		return errors.New(errors.RuntimeError, node.Pos(),
			"numarul maxim de pasi (%d) a fost depasit", it.maxSteps)
	}
	if !it.trace {
		return nil
	}
	step := Step{
		StepNumber:  it.stepCount,
		NodeKind:    ast.KindOf(node),
		Line:        node.Pos().Line,
		Description: description,
		Snapshot:    it.env.Snapshot(),
		Value:       value,
		NodeDetails: details,
		OutputSoFar: it.outBuf.String(),
	}
	it.steps = append(it.steps, step)
	if it.onStep != nil {
		it.onStep(step)
	}
	return nil
}

func (it *Interpreter) execBlock(b *ast.Block) error {
	for _, stmt := range b.Statements {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return it.record(b, "", "bloc executat", nil)
}

func (it *Interpreter) execStmt(s ast.Stmt) error {
	switch v := s.(type) {
	case *ast.Block:
		return it.execBlock(v)

	case *ast.Assignment:
		val, err := it.evalExpr(v.Value)
		if err != nil {
			return err
		}
		it.env.Set(v.Name, val)
		return it.record(v, v.Name, "atribuire: "+v.Name+" <- "+val.String(), &val)

	case *ast.If:
		cond, err := it.evalExpr(v.Cond)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			if err := it.execBlock(v.Then); err != nil {
				return err
			}
		} else if v.Else != nil {
			if err := it.execBlock(v.Else); err != nil {
				return err
			}
		}
		return it.record(v, "", "daca "+describeCond(cond), &cond)

	case *ast.While:
		var last Value
		for {
			cond, err := it.evalExpr(v.Cond)
			if err != nil {
				return err
			}
			last = cond
			if !cond.Truthy() {
				break
			}
			if err := it.execBlock(v.Body); err != nil {
				return err
			}
		}
		return it.record(v, "", "cat timp "+describeCond(last), &last)

	case *ast.DoWhile:
		var last Value
		for {
			if err := it.execBlock(v.Body); err != nil {
				return err
			}
			cond, err := it.evalExpr(v.Cond)
			if err != nil {
				return err
			}
			last = cond
			if !cond.Truthy() {
				break
			}
		}
		return it.record(v, "", "executa ... cat timp "+describeCond(last), &last)

	case *ast.RepeatUntil:
		var last Value
		for {
			if err := it.execBlock(v.Body); err != nil {
				return err
			}
			cond, err := it.evalExpr(v.Cond)
			if err != nil {
				return err
			}
			last = cond
			if cond.Truthy() {
				break
			}
		}
		return it.record(v, "", "repeta ... pana cand "+describeCond(last), &last)

	case *ast.For:
		return it.execFor(v)

	case *ast.Read:
		for _, name := range v.Names {
			line, ok := it.input.NextLine()
			if !ok {
				return errors.New(errors.RuntimeError, v.Pos(), "citire esuata: nu mai exista date de intrare pentru %q", name)
			}
			it.env.Set(name, parseReadValue(line))
		}
		return it.record(v, strings.Join(v.Names, ","), "citeste "+strings.Join(v.Names, ", "), nil)

	case *ast.Write:
		var b strings.Builder
		var last Value
		for _, expr := range v.Values {
			val, err := it.evalExpr(expr)
			if err != nil {
				return err
			}
			last = val
			b.WriteString(unescapeNewlines(val.String()))
		}
		b.WriteString("\n")
		it.outBuf.WriteString(b.String())
		io.WriteString(it.out, b.String())
		return it.record(v, "", "scrie", &last)

	default:
		return errors.New(errors.OpError, s.Pos(), "tip de instructiune necunoscut")
	}
}

func describeCond(v Value) string {
	return "conditie = " + v.String()
}

func (it *Interpreter) execFor(f *ast.For) error {
	start, err := it.evalExpr(f.Start)
	if err != nil {
		return err
	}
	stop, err := it.evalExpr(f.Stop)
	if err != nil {
		return err
	}
	step, err := it.evalExpr(f.Step)
	if err != nil {
		return err
	}
	if step.Float() == 0 {
		return errors.New(errors.RuntimeError, f.Pos(), "pasul buclei pentru %q nu poate fi zero", f.Iterator)
	}

	it.env.Set(f.Iterator, start)
	ascending := step.Float() > 0

	for {
		cur, _ := it.env.Get(f.Iterator)
		if ascending {
			if cur.Float() > stop.Float() {
				break
			}
		} else if cur.Float() < stop.Float() {
			break
		}
		if err := it.execBlock(f.Body); err != nil {
			return err
		}
		cur, _ = it.env.Get(f.Iterator)
		next, err := evalArith("+", cur, step, f.Pos())
		if err != nil {
			return err
		}
		it.env.Set(f.Iterator, next)
	}
	final, _ := it.env.Get(f.Iterator)
	return it.record(f, f.Iterator, "pentru "+f.Iterator, &final)
}

func (it *Interpreter) evalExpr(e ast.Expr) (Value, error) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return Value{}, errors.New(errors.OpError, v.Pos(), "literal intreg invalid: %q", v.Raw)
		}
		val := IntVal(n)
		return val, it.record(v, v.Raw, "literal intreg "+v.Raw, &val)

	case *ast.RealLiteral:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return Value{}, errors.New(errors.OpError, v.Pos(), "literal real invalid: %q", v.Raw)
		}
		val := RealVal(f)
		return val, it.record(v, v.Raw, "literal real "+v.Raw, &val)

	case *ast.BoolLiteral:
		val := BoolVal(v.Value)
		return val, it.record(v, val.String(), "literal logic "+val.String(), &val)

	case *ast.StringLiteral:
		val := StringVal(v.Value)
		return val, it.record(v, v.Value, "literal sir", &val)

	case *ast.Identifier:
		val, ok := it.env.Get(v.Name)
		if !ok {
			return Value{}, errors.New(errors.NameError, v.Pos(), "variabila %q nu este definita", v.Name)
		}
		return val, it.record(v, v.Name, "variabila "+v.Name+" = "+val.String(), &val)

	case *ast.BinOp:
		return it.evalBinOp(v)

	case *ast.UnaryOp:
		return it.evalUnaryOp(v)

	default:
		return Value{}, errors.New(errors.OpError, e.Pos(), "tip de expresie necunoscut")
	}
}

func (it *Interpreter) evalBinOp(v *ast.BinOp) (Value, error) {
	// AND/OR short-circuit and return the last-evaluated operand
	// (truthy propagation) rather than a strict boolean — a documented,
	// intentional departure from strict boolean logic (spec §9).
	if v.Op == "AND" || v.Op == "OR" {
		left, err := it.evalExpr(v.Left)
		if err != nil {
			return Value{}, err
		}
		var result Value
		if v.Op == "AND" {
			if !left.Truthy() {
				result = left
			} else if result, err = it.evalExpr(v.Right); err != nil {
				return Value{}, err
			}
		} else {
			if left.Truthy() {
				result = left
			} else if result, err = it.evalExpr(v.Right); err != nil {
				return Value{}, err
			}
		}
		return result, it.record(v, v.Op, v.Op+" = "+result.String(), &result)
	}

	left, err := it.evalExpr(v.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := it.evalExpr(v.Right)
	if err != nil {
		return Value{}, err
	}
	result, err := evalArith(v.Op, left, right, v.Pos())
	if err != nil {
		return Value{}, err
	}
	return result, it.record(v, v.Op, v.Op+" = "+result.String(), &result)
}

func (it *Interpreter) evalUnaryOp(v *ast.UnaryOp) (Value, error) {
	operand, err := it.evalExpr(v.Operand)
	if err != nil {
		return Value{}, err
	}
	var result Value
	switch v.Op {
	case "SQRT":
		if operand.Float() < 0 {
			return Value{}, errors.New(errors.RuntimeError, v.Pos(), "radical dintr-un numar negativ (%s)", operand.String())
		}
		result = RealVal(math.Sqrt(operand.Float()))
	case "FLOOR":
		result = IntVal(int64(math.Floor(operand.Float())))
	case "NOT":
		result = BoolVal(!operand.Truthy())
	case "MINUS":
		if operand.Kind == VReal {
			result = RealVal(-operand.F)
		} else if operand.Kind == VInt {
			result = IntVal(-operand.I)
		} else {
			return Value{}, errors.New(errors.OpError, v.Pos(), "operatorul unar - nu se aplica tipului %s", operand.TypeName())
		}
	default:
		return Value{}, errors.New(errors.OpError, v.Pos(), "operator unar necunoscut: %s", v.Op)
	}
	return result, it.record(v, v.Op, v.Op+" = "+result.String(), &result)
}

// evalArith implements the arithmetic/relational operators shared by the
// BinOp evaluator and the FOR loop's iterator increment.
func evalArith(op string, l, r Value, pos token.Position) (Value, error) {
	switch op {
	case "+", "-", "*":
		if l.Kind == VReal || r.Kind == VReal {
			return RealVal(apply(op, l.Float(), r.Float())), nil
		}
		return IntVal(int64(apply(op, float64(l.I), float64(r.I)))), nil
	case "%":
		if r.Float() == 0 {
			return Value{}, errors.New(errors.RuntimeError, pos, "impartire la zero (operator %%)")
		}
		if l.Kind == VReal || r.Kind == VReal {
			return RealVal(math.Mod(l.Float(), r.Float())), nil
		}
		return IntVal(l.I % r.I), nil
	case "/":
		if r.Float() == 0 {
			return Value{}, errors.New(errors.RuntimeError, pos, "impartire la zero (operator /)")
		}
		return RealVal(l.Float() / r.Float()), nil
	case "^":
		return RealVal(math.Pow(l.Float(), r.Float())), nil
	case "=":
		return BoolVal(valuesEqual(l, r)), nil
	case "!=":
		return BoolVal(!valuesEqual(l, r)), nil
	case "<", ">", "<=", ">=":
		return compareValues(op, l, r, pos)
	default:
		return Value{}, errors.New(errors.OpError, pos, "operator binar necunoscut: %s", op)
	}
}

func apply(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	default:
		return 0
	}
}

func valuesEqual(l, r Value) bool {
	if isNumeric(l) && isNumeric(r) {
		return l.Float() == r.Float()
	}
	if l.Kind == VBool && r.Kind == VBool {
		return l.B == r.B
	}
	if l.Kind == VString && r.Kind == VString {
		return l.S == r.S
	}
	return false
}

func isNumeric(v Value) bool { return v.Kind == VInt || v.Kind == VReal }

func compareValues(op string, l, r Value, pos token.Position) (Value, error) {
	var cmp int
	switch {
	case isNumeric(l) && isNumeric(r):
		switch {
		case l.Float() < r.Float():
			cmp = -1
		case l.Float() > r.Float():
			cmp = 1
		}
	case l.Kind == VString && r.Kind == VString:
		cmp = strings.Compare(l.S, r.S)
	default:
		return Value{}, errors.New(errors.OpError, pos,
			"operatorul %s nu se aplica tipurilor %s si %s", op, l.TypeName(), r.TypeName())
	}
	switch op {
	case "<":
		return BoolVal(cmp < 0), nil
	case ">":
		return BoolVal(cmp > 0), nil
	case "<=":
		return BoolVal(cmp <= 0), nil
	case ">=":
		return BoolVal(cmp >= 0), nil
	}
	return Value{}, errors.New(errors.OpError, pos, "operator relational necunoscut: %s", op)
}

// parseReadValue implements READ's "integer, else real, else string" rule.
func parseReadValue(line string) Value {
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return IntVal(n)
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return RealVal(f)
	}
	return StringVal(line)
}

// unescapeNewlines converts a literal backslash-n two-character sequence to
// a real newline, per spec §4.5's WRITE semantics. String literals from
// source are already resolved by the parser; this additionally covers
// strings that arrive at runtime (e.g. a READ answer) and still carry a
// literal "\n".
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
