package world

import (
	"context"
	"math/rand"
	"testing"
)

func buildWorld(t *testing.T, seed int64, opts Options) *World {
	t.Helper()
	w, err := Build(context.Background(), NewGenerator(opts, rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return w
}

func TestBuildStairsPairs(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		w := buildWorld(t, seed, DefaultOptions())

		for z := 0; z < w.Depth()-1; z++ {
			down, ok := w.Level(z).Find(TileStairsDown)
			if !ok {
				t.Fatalf("seed %d: level %d has no stairs down", seed, z)
			}
			up, ok := w.Level(z + 1).Find(TileStairsUp)
			if !ok {
				t.Fatalf("seed %d: level %d has no stairs up", seed, z+1)
			}
			if down != up {
				t.Errorf("seed %d: stairs down %v on level %d, stairs up %v on level %d", seed, down, z, up, z+1)
			}
			if w.Start(z+1) != up {
				t.Errorf("seed %d: Start(%d) = %v, want %v", seed, z+1, w.Start(z+1), up)
			}
		}
	}
}

func TestBuildMarkers(t *testing.T) {
	w := buildWorld(t, 42, DefaultOptions())

	if got := w.Level(0).Tile(SeedCell); got != TileStart {
		t.Errorf("level 0 seed cell = %q, want %q", got, TileStart)
	}
	if w.Start(0) != SeedCell {
		t.Errorf("Start(0) = %v, want %v", w.Start(0), SeedCell)
	}

	last := w.Level(w.Depth() - 1)
	want := Pos{Row: DefaultRows - 2, Col: DefaultCols - 2}
	if w.Exit != want {
		t.Errorf("Exit = %v, want %v", w.Exit, want)
	}
	if got := last.Tile(want); got != TileExit {
		t.Errorf("exit cell = %q, want %q", got, TileExit)
	}
	if !last.Reachable(w.Start(w.Depth() - 1)).Has(w.Exit) {
		t.Errorf("exit not reachable from last level start\n%s", last)
	}
}

func TestBuildEvenDimensionsReachExit(t *testing.T) {
	opts := Options{Levels: 2, Rows: 16, Cols: 20, KeyLevel: -1, DoorLevel: -1}
	for seed := int64(1); seed <= 20; seed++ {
		w := buildWorld(t, seed, opts)
		last := w.Level(w.Depth() - 1)
		if !last.Reachable(w.Start(w.Depth() - 1)).Has(w.Exit) {
			t.Fatalf("seed %d: exit unreachable\n%s", seed, last)
		}
	}
}

func TestBuildSingleLevel(t *testing.T) {
	opts := Options{Levels: 1, Rows: 7, Cols: 7, KeyLevel: -1, DoorLevel: -1}
	w := buildWorld(t, 3, opts)

	l := w.Level(0)
	if _, ok := l.Find(TileStairsDown); ok {
		t.Error("single-level world should have no stairs")
	}
	if got := l.Tile(w.Exit); got != TileExit {
		t.Errorf("exit cell = %q, want %q", got, TileExit)
	}
}

func TestBuildRejectsZeroLevels(t *testing.T) {
	opts := DefaultOptions()
	opts.Levels = 0
	_, err := Build(context.Background(), NewGenerator(opts, rand.New(rand.NewSource(1))))
	if err == nil {
		t.Error("Build() with zero levels should fail")
	}
}

func TestValidateDetectsBrokenWorld(t *testing.T) {
	l := LevelFromStrings(0, []string{
		"#####",
		"#S#.#",
		"#####",
	})
	w := &World{Levels: []*Level{l}, Starts: []Pos{SeedCell}}
	if err := w.Validate(); err == nil {
		t.Error("Validate() should report the disconnected cell")
	}

	l = LevelFromStrings(0, []string{
		"#.###",
		"#S..#",
		"#####",
	})
	w = &World{Levels: []*Level{l}, Starts: []Pos{SeedCell}}
	if err := w.Validate(); err == nil {
		t.Error("Validate() should report the carved ring")
	}
}

func TestLevelOutOfBoundsPanics(t *testing.T) {
	l := NewLevel(0, 5, 5)
	defer func() {
		if recover() == nil {
			t.Error("Tile() outside the grid should panic")
		}
	}()
	l.Tile(Pos{Row: -1, Col: 0})
}
