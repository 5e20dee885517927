package interp

import "github.com/maiaiia/pseudocronic/internal/token"

// Environment is the single global variable store a run owns. Variables
// are created on first assignment or read and never destroyed during a
// run (spec §3). Names are compared case-insensitively, matching the
// dialect's case-insensitive identifier rule.
type Environment struct {
	vars map[string]Value
	// names preserves the original casing of each variable's first
	// appearance, for snapshot/trace rendering.
	names map[string]string
}

func NewEnvironment() *Environment {
	return &Environment{vars: map[string]Value{}, names: map[string]string{}}
}

func (e *Environment) key(name string) string { return token.FoldIdentifier(name) }

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[e.key(name)]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	k := e.key(name)
	if _, ok := e.names[k]; !ok {
		e.names[k] = name
	}
	e.vars[k] = v
}

// Snapshot deep-copies the store (Value has no reference fields, so a plain
// map copy is already a deep copy) keyed by each variable's first-seen
// display name.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		out[e.names[k]] = v
	}
	return out
}
