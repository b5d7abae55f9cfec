package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func generateLevel(t *testing.T, seed int64, index int, opts Options) *Level {
	t.Helper()
	gen := NewGenerator(opts, rand.New(rand.NewSource(seed)))
	l, err := gen.Generate(context.Background(), index)
	if err != nil {
		t.Fatalf("Generate(%d) error: %v", index, err)
	}
	return l
}

func countItems(l *Level, it Item) int {
	n := 0
	for r := range l.Items {
		for _, got := range l.Items[r] {
			if got == it {
				n++
			}
		}
	}
	return n
}

func countTiles(l *Level, t Tile) int {
	n := 0
	for r := range l.Tiles {
		for _, got := range l.Tiles[r] {
			if got == t {
				n++
			}
		}
	}
	return n
}

func TestGenerateConnected(t *testing.T) {
	opts := DefaultOptions()
	for seed := int64(1); seed <= 50; seed++ {
		for z := 0; z < opts.Levels; z++ {
			l := generateLevel(t, seed, z, opts)
			reached := l.Reachable(SeedCell).Size()
			if carved := l.CarvedCount(); reached != carved {
				t.Fatalf("seed %d level %d: reached %d of %d carved cells\n%s", seed, z, reached, carved, l)
			}
		}
	}
}

func TestGenerateKeepsOuterRing(t *testing.T) {
	sizes := []struct{ rows, cols int }{
		{5, 5}, {15, 20}, {16, 20}, {21, 21}, {6, 9},
	}
	for _, sz := range sizes {
		opts := Options{Levels: 1, Rows: sz.rows, Cols: sz.cols, KeyLevel: -1, DoorLevel: -1}
		for seed := int64(1); seed <= 10; seed++ {
			l := generateLevel(t, seed, 0, opts)
			if !l.RingIntact() {
				t.Errorf("%dx%d seed %d: outer ring carved\n%s", sz.rows, sz.cols, seed, l)
			}
		}
	}
}

func TestGeneratePerfectMaze(t *testing.T) {
	// A spanning tree over the room cells has exactly rooms-1 passages,
	// so carved cells = 2*rooms - 1 once the features are ignored.
	opts := Options{Levels: 1, Rows: 15, Cols: 20, KeyLevel: -1, DoorLevel: -1}
	l := generateLevel(t, 7, 0, opts)

	rooms := 0
	for r := 1; r < l.Rows-1; r += 2 {
		for c := 1; c < l.Cols-1; c += 2 {
			if l.Tiles[r][c] != TileFloor {
				t.Fatalf("room cell (%d,%d) not carved", r, c)
			}
			rooms++
		}
	}
	if got, want := l.CarvedCount(), 2*rooms-1; got != want {
		t.Errorf("CarvedCount() = %d, want %d", got, want)
	}
}

func TestGenerateFeatures(t *testing.T) {
	opts := DefaultOptions()
	for seed := int64(1); seed <= 30; seed++ {
		for z := 0; z < opts.Levels; z++ {
			l := generateLevel(t, seed, z, opts)

			if got := countItems(l, ItemTrap); got != 1 {
				t.Errorf("seed %d level %d: %d traps, want 1", seed, z, got)
			}

			wantKeys := 0
			if z == opts.KeyLevel {
				wantKeys = 1
			}
			if got := countItems(l, ItemKey); got != wantKeys {
				t.Errorf("seed %d level %d: %d keys, want %d", seed, z, got, wantKeys)
			}

			wantDoors := 0
			if z == opts.DoorLevel {
				wantDoors = 1
			}
			if got := countTiles(l, TileDoor); got != wantDoors {
				t.Errorf("seed %d level %d: %d doors, want %d", seed, z, got, wantDoors)
			}
			if door, ok := l.Find(TileDoor); ok && door.Col < doorMinCol {
				t.Errorf("seed %d: door at column %d, want >= %d", seed, door.Col, doorMinCol)
			}

			for r := range l.Items {
				for c, it := range l.Items[r] {
					if it != ItemNone && l.Tiles[r][c] != TileFloor {
						t.Errorf("seed %d level %d: item %q on tile %q", seed, z, it, l.Tiles[r][c])
					}
				}
			}
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	opts := DefaultOptions()
	l1 := generateLevel(t, 12345, 1, opts)
	l2 := generateLevel(t, 12345, 1, opts)

	if l1.String() != l2.String() {
		t.Errorf("same seed produced different levels:\n%s\n%s", l1, l2)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	opts := DefaultOptions()
	l1 := generateLevel(t, 12345, 0, opts)
	l2 := generateLevel(t, 54321, 0, opts)

	if l1.String() == l2.String() {
		t.Error("Levels with different seeds should not be identical")
	}
}

func TestSampleFallsBackToScan(t *testing.T) {
	l := LevelFromStrings(0, []string{
		"#####",
		"#...#",
		"#####",
	})
	gen := NewGenerator(DefaultOptions(), rand.New(rand.NewSource(1)))

	want := Pos{Row: 1, Col: 3}
	got, err := gen.sample(l, 1, func(p Pos) bool { return p == want })
	if err != nil {
		t.Fatalf("sample() error: %v", err)
	}
	if got != want {
		t.Errorf("sample() = %v, want %v", got, want)
	}

	_, err = gen.sample(l, 1, func(Pos) bool { return false })
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("sample() error = %v, want ErrNoCandidate", err)
	}
}
