// Package pscript is the public, embeddable API over the pseudocode
// toolchain: parse once, then interpret, emit C++, or transpile C++ back to
// pseudocode. It wraps the internal lexer/parser/interp/emitter/transpiler
// packages behind functional options, in the style of an embeddable script
// engine's New(opts...) constructor.
package pscript

import (
	"io"

	"github.com/maiaiia/pseudocronic/internal/ast"
	"github.com/maiaiia/pseudocronic/internal/emitter"
	"github.com/maiaiia/pseudocronic/internal/errors"
	"github.com/maiaiia/pseudocronic/internal/interp"
	"github.com/maiaiia/pseudocronic/internal/lexer"
	"github.com/maiaiia/pseudocronic/internal/parser"
	"github.com/maiaiia/pseudocronic/internal/trace"
	"github.com/maiaiia/pseudocronic/internal/transpiler"
)

// Option configures a run of Interpret.
type Option func(*config)

type config struct {
	input       interp.InputProvider
	writer      io.Writer
	trace       bool
	maxSteps    int
	onStep      func(interp.Step)
}

// WithInput supplies READ's pre-filled answer queue.
func WithInput(lines ...string) Option {
	return func(c *config) { c.input = interp.NewQueueInput(lines) }
}

// WithInputProvider supplies a custom InputProvider, e.g. one backed by a
// live source instead of a fixed queue.
func WithInputProvider(p interp.InputProvider) Option {
	return func(c *config) { c.input = p }
}

// WithWriter streams WRITE output to w as the program runs, in addition to
// the buffered Result.Output.
func WithWriter(w io.Writer) Option { return func(c *config) { c.writer = w } }

// WithTrace enables step recording; Result.Steps and Result.Trace are only
// populated when this is set.
func WithTrace(enabled bool) Option { return func(c *config) { c.trace = enabled } }

// WithMaxSteps bounds the number of node visits a run may perform before it
// aborts with a RuntimeError (0 means unlimited).
func WithMaxSteps(n int) Option { return func(c *config) { c.maxSteps = n } }

// WithStepCallback registers a callback invoked synchronously after each
// recorded step.
func WithStepCallback(fn func(interp.Step)) Option { return func(c *config) { c.onStep = fn } }

// Result is everything a completed Interpret call produced.
type Result struct {
	Output    string
	Steps     []interp.Step
	Trace     string // JSON trace document; "" unless WithTrace was set
	Variables map[string]interp.Value
}

// Parse lexes and parses source into an AST, the shared entry point behind
// Interpret, Emit, and any future consumer that needs the tree directly.
func Parse(source string) (*ast.Program, error) {
	l := lexer.New(source)
	return parser.ParseProgram(l)
}

// Interpret parses and runs source, returning its output, variable state,
// and (if tracing was requested) its execution trace.
func Interpret(source string, opts ...Option) (*Result, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}

	cfg := &config{writer: io.Discard, input: interp.NewQueueInput(nil)}
	for _, opt := range opts {
		opt(cfg)
	}

	it := interp.New(
		interp.WithInput(cfg.input),
		interp.WithWriter(cfg.writer),
		interp.WithTrace(cfg.trace),
		interp.WithMaxSteps(cfg.maxSteps),
		interp.WithStepCallback(cfg.onStep),
	)
	runErr := it.Run(prog)

	// Steps recorded before a runtime failure stay on the returned Result
	// alongside the error; only completed output is withheld.
	result := &Result{
		Steps:     it.Steps(),
		Variables: it.Environment().Snapshot(),
	}
	if cfg.trace {
		doc, err := trace.Encode(it.Steps())
		if err != nil {
			return nil, err
		}
		result.Trace = doc
	}
	if runErr != nil {
		return result, runErr
	}
	result.Output = it.Output()
	return result, nil
}

// Emit parses source and renders it as a compilable C++ translation unit.
func Emit(source string) (string, error) {
	prog, err := Parse(source)
	if err != nil {
		return "", err
	}
	return emitter.Emit(prog), nil
}

// Transpile recovers pseudocode source from a restricted-subset C++
// translation unit (normally one produced by Emit).
func Transpile(cppSource string) string {
	return transpiler.Transpile(cppSource)
}

// FormatError renders err with caret-annotated source context when it
// carries a position (as parser/interpreter errors do), or falls back to
// its plain message otherwise. color controls ANSI escape codes.
func FormatError(err error, source string, color bool) string {
	if pe, ok := err.(*errors.PositionedError); ok {
		return pe.Format(source, color)
	}
	return err.Error()
}
