package world

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/mazerunner/internal/logger"
	"github.com/samdwyer/mazerunner/internal/telemetry"
)

// World is the stack of levels linked by stairs.
type World struct {
	Levels []*Level
	Starts []Pos // entry point per level, also the trap respawn point
	Exit   Pos   // exit cell on the last level
}

// Depth returns the number of levels.
func (w *World) Depth() int {
	return len(w.Levels)
}

// Level returns level z.
func (w *World) Level(z int) *Level {
	if z < 0 || z >= len(w.Levels) {
		panic(fmt.Sprintf("world: level %d outside 0..%d", z, len(w.Levels)-1))
	}
	return w.Levels[z]
}

// Start returns the entry point of level z.
func (w *World) Start(z int) Pos {
	return w.Starts[z]
}

// Build generates every level, links consecutive levels with stairs and marks
// the start and exit tiles.
func Build(ctx context.Context, gen *Generator) (*World, error) {
	ctx, span := telemetry.Tracer("world").Start(ctx, "world.build")
	defer span.End()

	opts := gen.Options()
	if opts.Levels < 1 {
		return nil, fmt.Errorf("generating world: need at least one level, got %d", opts.Levels)
	}
	w := &World{
		Levels: make([]*Level, opts.Levels),
		Starts: make([]Pos, opts.Levels),
		Exit:   gen.exitCell(),
	}

	for z := range w.Levels {
		l, err := gen.Generate(ctx, z)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("generating world: %w", err)
		}
		w.Levels[z] = l
	}

	w.Starts[0] = SeedCell
	w.Levels[0].SetTile(SeedCell, TileStart)

	for z := 0; z < len(w.Levels)-1; z++ {
		upper, lower := w.Levels[z], w.Levels[z+1]
		stairs, err := gen.sample(upper, 1, func(p Pos) bool {
			return upper.Tile(p) == TileFloor && p != w.Exit && lower.Tile(p) != TileDoor
		})
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("placing stairs on level %d: %w", z, err)
		}

		upper.SetTile(stairs, TileStairsDown)
		lower.SetTile(stairs, TileStairsUp)
		w.Starts[z+1] = stairs
	}

	last := w.Levels[len(w.Levels)-1]
	last.SetTile(w.Exit, TileExit)
	connectExit(last, w.Exit)

	if err := w.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("world.levels", len(w.Levels)),
		attribute.Int("world.exit_row", w.Exit.Row),
		attribute.Int("world.exit_col", w.Exit.Col),
	)
	logger.Component("world").WithFields(logrus.Fields{
		"levels": len(w.Levels),
		"rows":   opts.Rows,
		"cols":   opts.Cols,
	}).Info("World built.")

	return w, nil
}

// connectExit makes sure the exit touches a carved cell. With an even row or
// column count the corner next to the border is never visited by the carver,
// so a straight passage is opened to the nearest room cell.
func connectExit(l *Level, exit Pos) {
	for _, d := range cardinals {
		if n := exit.Add(d); l.InBounds(n) && l.Tile(n).IsCarved() {
			return
		}
	}

	room := Pos{Row: lastOdd(exit.Row), Col: lastOdd(exit.Col)}
	at := exit
	for at.Col != room.Col {
		at.Col--
		openWall(l, at)
	}
	for at.Row != room.Row {
		at.Row--
		openWall(l, at)
	}
}

func openWall(l *Level, p Pos) {
	if l.Tile(p) == TileWall {
		l.SetTile(p, TileFloor)
	}
}

// lastOdd returns the largest odd number <= n.
func lastOdd(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// Validate checks the structural invariants of a built world: intact outer
// rings, a single connected component per level, and stairs pairs sharing
// coordinates.
func (w *World) Validate() error {
	for z, l := range w.Levels {
		if !l.RingIntact() {
			return fmt.Errorf("level %d: outer wall ring was carved", z)
		}
		if reached, carved := l.Reachable(w.Starts[z]).Size(), l.CarvedCount(); reached != carved {
			return fmt.Errorf("level %d: %d of %d carved cells reachable from start", z, reached, carved)
		}
		if z == 0 {
			continue
		}
		s := w.Starts[z]
		if w.Levels[z-1].Tile(s) != TileStairsDown || l.Tile(s) != TileStairsUp {
			return fmt.Errorf("level %d: stairs at (%d,%d) are not paired", z, s.Row, s.Col)
		}
	}
	return nil
}
