// Package core holds the domain engines: membership transitions, content
// creation and engagement (likes and votes). Engines operate on an
// explicitly injected store and never keep hidden state; serialization of
// calls is the owner's job (the community actor).
package core

// Emitter receives human-readable notification texts as a side effect of
// membership events. Emission is best-effort: implementations must not fail
// or block the triggering operation.
type Emitter interface {
	Emit(text string)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(text string)

func (f EmitterFunc) Emit(text string) { f(text) }

type nopEmitter struct{}

func (nopEmitter) Emit(string) {}
