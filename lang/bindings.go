package lang

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/gobwas/glob"
	"github.com/iancoleman/orderedmap"
)

// Bindings is an insertion-ordered map from constant name to [Value].
//
// Setting an existing name replaces its value in place; the name keeps the
// position of its first declaration. There is no removal.
type Bindings struct {
	m *orderedmap.OrderedMap
}

// NewBindings returns an empty store.
func NewBindings() *Bindings {
	return &Bindings{m: orderedmap.New()}
}

// Set binds name to v.
func (b *Bindings) Set(name string, v Value) {
	b.m.Set(name, v)
}

// Get returns the value bound to name.
func (b *Bindings) Get(name string) (Value, bool) {
	if b == nil {
		return Value{}, false
	}

	v, ok := b.m.Get(name)
	if !ok {
		return Value{}, false
	}

	return v.(Value), true
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}

	return len(b.m.Keys())
}

// Names returns a copy of the bound names in order.
func (b *Bindings) Names() []string {
	if b == nil {
		return nil
	}

	return slices.Clone(b.m.Keys())
}

// All returns an iterator over the bindings in order.
func (b *Bindings) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range b.Names() {
			v, _ := b.m.Get(name)
			if !yield(name, v.(Value)) {
				return
			}
		}
	}
}

// Native returns the bindings as a map of plain Go values.
// See [Value.Native].
func (b *Bindings) Native() map[string]any {
	out := make(map[string]any, b.Len())

	for name, v := range b.All() {
		out[name] = v.Native()
	}

	return out
}

// Select returns a new store holding the bindings whose names match any of
// the glob patterns, in their original order. With no patterns, every
// binding is selected.
func (b *Bindings) Select(patterns ...string) (*Bindings, error) {
	matchers := make([]glob.Glob, 0, len(patterns))

	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, ErrInvalidPattern.Wrap(err).
				With(slog.String("pattern", p))
		}

		matchers = append(matchers, g)
	}

	out := NewBindings()

	for name, v := range b.All() {
		if len(matchers) == 0 || matchAny(matchers, name) {
			out.Set(name, v)
		}
	}

	return out, nil
}

func matchAny(matchers []glob.Glob, name string) bool {
	for _, g := range matchers {
		if g.Match(name) {
			return true
		}
	}

	return false
}
