package fog

import (
	"reflect"
	"testing"

	"github.com/samdwyer/mazerunner/internal/world"
)

func TestRevealSquare(t *testing.T) {
	m := NewMask(2, 15, 20)
	m.Reveal(1, world.Pos{Row: 5, Col: 5}, 2)

	if got := m.Count(1); got != 25 {
		t.Errorf("Count(1) = %d, want 25", got)
	}
	if got := m.Count(0); got != 0 {
		t.Errorf("Count(0) = %d, want 0", got)
	}

	for r := 0; r < 15; r++ {
		for c := 0; c < 20; c++ {
			p := world.Pos{Row: r, Col: c}
			want := InVision(world.Pos{Row: 5, Col: 5}, p, 2)
			if got := m.Revealed(1, p); got != want {
				t.Errorf("Revealed(1, %v) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestRevealClipsAtBorder(t *testing.T) {
	m := NewMask(1, 15, 20)
	m.Reveal(0, world.Pos{Row: 0, Col: 0}, 2)

	if got := m.Count(0); got != 9 {
		t.Errorf("corner reveal Count = %d, want 9", got)
	}

	m.Reveal(0, world.Pos{Row: 14, Col: 19}, 2)
	if got := m.Count(0); got != 18 {
		t.Errorf("two corner reveals Count = %d, want 18", got)
	}
}

func TestRevealIdempotent(t *testing.T) {
	once := NewMask(1, 15, 20)
	once.Reveal(0, world.Pos{Row: 7, Col: 9}, 2)

	twice := NewMask(1, 15, 20)
	twice.Reveal(0, world.Pos{Row: 7, Col: 9}, 2)
	twice.Reveal(0, world.Pos{Row: 7, Col: 9}, 2)

	if !reflect.DeepEqual(once.Level(0), twice.Level(0)) {
		t.Error("revealing the same region twice changed the mask")
	}
}

func TestRevealMonotonicAndReset(t *testing.T) {
	m := NewMask(1, 15, 20)
	m.Reveal(0, world.Pos{Row: 1, Col: 1}, 2)
	before := m.Count(0)

	m.Reveal(0, world.Pos{Row: 10, Col: 10}, 2)
	if !m.Revealed(0, world.Pos{Row: 1, Col: 1}) {
		t.Error("earlier reveal was lost")
	}
	if m.Count(0) <= before {
		t.Errorf("Count after second reveal = %d, want > %d", m.Count(0), before)
	}

	m.Reset()
	if got := m.Count(0); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
}

func TestInVision(t *testing.T) {
	center := world.Pos{Row: 5, Col: 5}
	tests := []struct {
		p    world.Pos
		want bool
	}{
		{world.Pos{Row: 5, Col: 5}, true},
		{world.Pos{Row: 7, Col: 7}, true},
		{world.Pos{Row: 3, Col: 7}, true},
		{world.Pos{Row: 8, Col: 5}, false},
		{world.Pos{Row: 5, Col: 2}, false},
	}

	for _, tt := range tests {
		if got := InVision(center, tt.p, 2); got != tt.want {
			t.Errorf("InVision(%v, %v, 2) = %v, want %v", center, tt.p, got, tt.want)
		}
	}
}
