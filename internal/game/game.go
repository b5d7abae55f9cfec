package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazerunner/internal/gamedata"
	"github.com/samdwyer/mazerunner/internal/logger"
	"github.com/samdwyer/mazerunner/internal/telemetry"
	"github.com/samdwyer/mazerunner/internal/ui"
	"github.com/samdwyer/mazerunner/internal/world"
)

// frameInterval is the logic and redraw tick.
const frameInterval = time.Second / 60

// Game holds the session and the terminal it is played on.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	limiter  *MoveLimiter

	pending    Direction
	hasPending bool
	running    bool
	err        error
}

// New creates a new game instance. The world is generated before the
// terminal is taken over, so configuration errors print normally.
func New(ctx context.Context, cfg Config) (*Game, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}

	session, err := NewSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		session:  session,
		limiter:  NewMoveLimiter(cfg.MoveDelay),
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits.
//
// tcell delivers input on a blocking call, so a goroutine forwards events
// while this loop owns the session and advances the move limiter on every
// frame tick.
func (g *Game) Run(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.run")
	defer span.End()
	defer g.screen.Close()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		g.renderer.Render(g.frame())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			g.limiter.Tick(now.Sub(last))
			last = now
			g.update(ctx)
		}
	}

	snap := g.session.Snapshot()
	span.SetAttributes(
		attribute.String("session.id", snap.SessionID.String()),
		attribute.Int("player.score", snap.Score),
		attribute.Bool("player.won", snap.Won),
	)
	return g.err
}

// pollEvents forwards terminal events until the screen is closed.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. Arrow keys only record the intent;
// update applies it once the limiter allows.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.queueMove(DirUp)
	case tcell.KeyDown:
		g.queueMove(DirDown)
	case tcell.KeyLeft:
		g.queueMove(DirLeft)
	case tcell.KeyRight:
		g.queueMove(DirRight)

	case tcell.KeyEnter:
		g.restart(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
}

func (g *Game) queueMove(dir Direction) {
	g.pending = dir
	g.hasPending = true
}

// update applies the pending move if the limiter is ready.
func (g *Game) update(ctx context.Context) {
	if !g.hasPending || g.session.State() == StateWon {
		g.hasPending = false
		return
	}
	if !g.limiter.Take() {
		return
	}
	g.hasPending = false
	g.session.ApplyMove(ctx, g.pending)
}

// restart starts a new world after a win; Enter is ignored during play.
func (g *Game) restart(ctx context.Context) {
	if g.session.State() != StateWon {
		return
	}
	if err := g.session.Restart(ctx); err != nil {
		logger.Component("game").WithError(err).Error("Restart failed.")
		g.err = err
		g.running = false
		return
	}
	g.limiter.Reset()
	g.hasPending = false
}

// frame collects what the renderer needs from the session.
func (g *Game) frame() ui.Frame {
	snap := g.session.Snapshot()
	return ui.Frame{
		Level:        g.session.Level(),
		Revealed:     g.session.Revealed(),
		Player:       world.Pos{Row: snap.Row, Col: snap.Col},
		VisionRadius: snap.VisionRadius,
		HasKey:       snap.HasKey,
		Score:        snap.Score,
		Won:          snap.Won,
		Status:       snap.Status,
	}
}
