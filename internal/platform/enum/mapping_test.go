package enum

import "testing"

type code string
type label string

func testMapping() Mapping[code, label] {
	return NewMapping(
		Pair[code, label]{"SCHEDULED", "Agendada"},
		Pair[code, label]{"CONFIRMED", "Confirmada"},
		Pair[code, label]{"CANCELLED", "Cancelada"},
	)
}

func TestForwardReverse_RoundTrip(t *testing.T) {
	m := testMapping()
	for _, c := range []code{"SCHEDULED", "CONFIRMED", "CANCELLED"} {
		d := m.Forward(c)
		if d == "" {
			t.Fatalf("Forward(%s) returned empty label", c)
		}
		if back := m.Reverse(d); back != c {
			t.Errorf("round trip broke: %s -> %s -> %s", c, d, back)
		}
	}
}

func TestForward_UnknownFallsBack(t *testing.T) {
	m := testMapping()
	if got := m.Forward("EXPLODED"); got != "Agendada" {
		t.Errorf("expected fallback Agendada, got %s", got)
	}
	if m.Known("EXPLODED") {
		t.Error("expected EXPLODED to be unknown")
	}
}

func TestReverse_UnknownFallsBack(t *testing.T) {
	m := testMapping()
	if got := m.Reverse("Inexistente"); got != "SCHEDULED" {
		t.Errorf("expected fallback SCHEDULED, got %s", got)
	}
}

func TestCovers(t *testing.T) {
	m := testMapping()
	if err := m.Covers("SCHEDULED", "CONFIRMED", "CANCELLED"); err != nil {
		t.Errorf("unexpected coverage error: %v", err)
	}
	if err := m.Covers("SCHEDULED", "CONFIRMED", "CANCELLED", "NO_SHOW"); err == nil {
		t.Error("expected error for unmapped NO_SHOW")
	}
	if err := m.Covers("SCHEDULED", "CONFIRMED"); err == nil {
		t.Error("expected error for universe smaller than table")
	}
}

func TestNewMapping_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate backend code")
		}
	}()
	NewMapping(Pair[code, label]{"SCHEDULED", "Agendada"},
		Pair[code, label]{"SCHEDULED", "Outra"})
}

func TestFallbackIsMember(t *testing.T) {
	m := testMapping()
	if !m.Known("SCHEDULED") {
		t.Error("expected fallback pair to be a table member")
	}
}
