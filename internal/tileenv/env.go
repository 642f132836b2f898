// Package tileenv implements the evaluator's environment: a persistent
// mapping from grid position to a pre-bound Value, extended immutably by
// lambda application and populated once by the label pre-pass. Since these
// environments stay small, Env favours the simplest correct structure: an
// immutable map value, extended by shallow-copying into a new map.
package tileenv

import "github.com/pspoerri/tilegrid/internal/value"

// Pos is a grid coordinate used as an environment key.
type Pos struct{ X, Y int }

// Env is a persistent map from Pos to Value. The zero value is a valid,
// empty environment.
type Env struct {
	bindings map[Pos]value.Value
}

// Empty returns the empty environment.
func Empty() Env {
	return Env{}
}

// Lookup returns the binding at p, if any.
func (e Env) Lookup(p Pos) (value.Value, bool) {
	if e.bindings == nil {
		return value.Value{}, false
	}
	v, ok := e.bindings[p]
	return v, ok
}

// Extend returns a new environment with p bound to v, leaving e (and any
// other reference to it) unchanged. Lambda application uses this to bind
// its parameter and its own recursive self-reference without mutating the
// environment any caller up the call chain still holds.
func (e Env) Extend(p Pos, v value.Value) Env {
	next := make(map[Pos]value.Value, len(e.bindings)+1)
	for k, val := range e.bindings {
		next[k] = val
	}
	next[p] = v
	return Env{bindings: next}
}

// Builder accumulates bindings for the top-level environment produced by
// the label pre-pass, then freezes them into an Env.
type Builder struct {
	bindings map[Pos]value.Value
}

func NewBuilder() *Builder {
	return &Builder{bindings: make(map[Pos]value.Value)}
}

// Set binds p to v if it is not already bound, implementing a "first
// matching label in scan order wins" tie-break.
func (b *Builder) Set(p Pos, v value.Value) {
	if _, exists := b.bindings[p]; exists {
		return
	}
	b.bindings[p] = v
}

func (b *Builder) Build() Env {
	return Env{bindings: b.bindings}
}
