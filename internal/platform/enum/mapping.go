// Package enum provides a typed bidirectional mapping between backend enum
// codes and display vocabulary. Each domain resource declares its own table
// from a complete pair list; lookups are total, degrading to an explicit
// fallback for unrecognized codes so an unknown backend value never crashes
// a screen.
package enum

import "fmt"

// Pair binds one backend code to its display label.
type Pair[B ~string, D ~string] struct {
	Backend B
	Display D
}

// Mapping is an immutable bidirectional enum table.
type Mapping[B ~string, D ~string] struct {
	forward  map[B]D
	reverse  map[D]B
	fallback Pair[B, D]
}

// NewMapping builds a table from the fallback pair plus the remaining pairs.
// The fallback is itself a member of the table and is returned for lookups
// that miss in either direction. Duplicate backend codes or display labels
// panic at construction (tables are package-level literals, so this fires at
// init, not per request).
func NewMapping[B ~string, D ~string](fallback Pair[B, D], rest ...Pair[B, D]) Mapping[B, D] {
	m := Mapping[B, D]{
		forward:  make(map[B]D, len(rest)+1),
		reverse:  make(map[D]B, len(rest)+1),
		fallback: fallback,
	}
	for _, p := range append([]Pair[B, D]{fallback}, rest...) {
		if _, dup := m.forward[p.Backend]; dup {
			panic(fmt.Sprintf("enum: duplicate backend code %q", string(p.Backend)))
		}
		if _, dup := m.reverse[p.Display]; dup {
			panic(fmt.Sprintf("enum: duplicate display label %q", string(p.Display)))
		}
		m.forward[p.Backend] = p.Display
		m.reverse[p.Display] = p.Backend
	}
	return m
}

// Forward maps a backend code to its display label, or the fallback label
// for unknown codes.
func (m Mapping[B, D]) Forward(backend B) D {
	if d, ok := m.forward[backend]; ok {
		return d
	}
	return m.fallback.Display
}

// Reverse maps a display label back to its backend code, or the fallback
// code for unknown labels.
func (m Mapping[B, D]) Reverse(display D) B {
	if b, ok := m.reverse[display]; ok {
		return b
	}
	return m.fallback.Backend
}

// Known reports whether the backend code is a member of the table.
func (m Mapping[B, D]) Known(backend B) bool {
	_, ok := m.forward[backend]
	return ok
}

// Covers verifies the table maps every value of the declared universe.
// Domain tests call it with the resource's full constant list, so adding a
// backend code without a display label fails the build's test run.
func (m Mapping[B, D]) Covers(all ...B) error {
	for _, b := range all {
		if _, ok := m.forward[b]; !ok {
			return fmt.Errorf("enum: backend code %q has no display mapping", string(b))
		}
	}
	if len(m.forward) != len(all) {
		return fmt.Errorf("enum: table has %d entries, universe has %d", len(m.forward), len(all))
	}
	return nil
}
