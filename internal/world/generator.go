package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/mazerunner/internal/logger"
	"github.com/samdwyer/mazerunner/internal/telemetry"
)

const (
	// Default maze dimensions
	DefaultRows   = 15
	DefaultCols   = 20
	DefaultLevels = 3

	// MinSize is the smallest grid edge that still leaves free floor after carving.
	MinSize = 5

	// Feature levels (zero-based)
	DefaultKeyLevel  = 1
	DefaultDoorLevel = 2

	doorMinCol        = 3   // keeps the door away from the entry columns
	maxSampleAttempts = 100 // random probes before scanning every cell
)

// SeedCell is where carving starts on every level.
var SeedCell = Pos{Row: 1, Col: 1}

// ErrNoCandidate is returned when no cell satisfies a placement predicate.
var ErrNoCandidate = errors.New("no eligible cell")

// cardinals are single-cell neighbour offsets.
var cardinals = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// carveSteps are the two-cell jumps between rooms, in the order up, down, left, right.
var carveSteps = [4]Pos{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// Options controls the shape of generated worlds.
type Options struct {
	Levels    int
	Rows      int
	Cols      int
	KeyLevel  int // level that receives the key, or -1 for none
	DoorLevel int // level that receives the locked door, or -1 for none
}

// DefaultOptions returns the standard three-level 15x20 layout.
func DefaultOptions() Options {
	return Options{
		Levels:    DefaultLevels,
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		KeyLevel:  DefaultKeyLevel,
		DoorLevel: DefaultDoorLevel,
	}
}

// Generator builds perfect mazes by randomized depth-first carving.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(opts Options, rng *rand.Rand) *Generator {
	return &Generator{opts: opts, rng: rng}
}

// Options returns the generator's layout options.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate carves one level and places its items and door.
func (g *Generator) Generate(ctx context.Context, index int) (*Level, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	l := NewLevel(index, g.opts.Rows, g.opts.Cols)
	g.carve(l, SeedCell)

	if err := g.placeFeatures(l); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("level %d: %w", index, err)
	}

	span.SetAttributes(
		attribute.Int("maze.level", index),
		attribute.Int("maze.rows", l.Rows),
		attribute.Int("maze.cols", l.Cols),
		attribute.Int("maze.carved", l.CarvedCount()),
		attribute.Int64("maze.generation_us", time.Since(startTime).Microseconds()),
	)
	logger.Component("generator").WithFields(logrus.Fields{
		"level":  index,
		"carved": l.CarvedCount(),
	}).Debug("Level generated.")

	return l, nil
}

// carveFrame is one pending cell of the depth-first walk.
type carveFrame struct {
	at   Pos
	dirs [4]int
	next int
}

func (g *Generator) newFrame(at Pos) carveFrame {
	f := carveFrame{at: at, dirs: [4]int{0, 1, 2, 3}}
	g.rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}

// carve runs the depth-first walk from seed with an explicit stack.
// Each frame tries its shuffled directions in turn; a room two cells away is
// opened together with the wall between only if it is interior and still wall.
func (g *Generator) carve(l *Level, seed Pos) {
	l.SetTile(seed, TileFloor)
	stack := []carveFrame{g.newFrame(seed)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		step := carveSteps[top.dirs[top.next]]
		top.next++

		from := top.at
		to := from.Add(step)
		if !l.interior(to) || l.Tile(to) != TileWall {
			continue
		}

		l.SetTile(from.Add(Pos{Row: step.Row / 2, Col: step.Col / 2}), TileFloor)
		l.SetTile(to, TileFloor)
		stack = append(stack, g.newFrame(to))
	}
}

// placeFeatures drops the trap on every level, the key on the key level and
// the locked door on the door level.
func (g *Generator) placeFeatures(l *Level) error {
	emptyFloor := func(p Pos) bool {
		return l.Tile(p) == TileFloor && l.Item(p) == ItemNone
	}

	trap, err := g.sample(l, 1, emptyFloor)
	if err != nil {
		return fmt.Errorf("placing trap: %w", err)
	}
	l.SetItem(trap, ItemTrap)

	if l.Index == g.opts.KeyLevel {
		key, err := g.sample(l, 1, emptyFloor)
		if err != nil {
			return fmt.Errorf("placing key: %w", err)
		}
		l.SetItem(key, ItemKey)
	}

	if l.Index == g.opts.DoorLevel {
		exit := g.exitCell()
		door, err := g.sample(l, doorMinCol, func(p Pos) bool {
			return emptyFloor(p) && p != exit
		})
		if err != nil {
			return fmt.Errorf("placing door: %w", err)
		}
		l.SetTile(door, TileDoor)
	}

	return nil
}

// exitCell is the fixed exit coordinate on the last level.
func (g *Generator) exitCell() Pos {
	return Pos{Row: g.opts.Rows - 2, Col: g.opts.Cols - 2}
}

// sample picks a random interior cell with column >= minCol that satisfies ok.
// It probes random cells first and falls back to a uniform choice among all
// eligible cells, so it always terminates.
func (g *Generator) sample(l *Level, minCol int, ok func(Pos) bool) (Pos, error) {
	rows := l.Rows - 2
	cols := l.Cols - 1 - minCol
	if rows <= 0 || cols <= 0 {
		return Pos{}, ErrNoCandidate
	}

	for i := 0; i < maxSampleAttempts; i++ {
		p := Pos{Row: 1 + g.rng.Intn(rows), Col: minCol + g.rng.Intn(cols)}
		if ok(p) {
			return p, nil
		}
	}

	var candidates []Pos
	for r := 1; r < l.Rows-1; r++ {
		for c := minCol; c < l.Cols-1; c++ {
			if p := (Pos{Row: r, Col: c}); ok(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return Pos{}, ErrNoCandidate
	}
	return candidates[g.rng.Intn(len(candidates))], nil
}
