package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazerunner/internal/entity"
	"github.com/samdwyer/mazerunner/internal/fog"
	"github.com/samdwyer/mazerunner/internal/logger"
	"github.com/samdwyer/mazerunner/internal/telemetry"
	"github.com/samdwyer/mazerunner/internal/world"
)

// ErrNotWon is returned when a restart is requested during play.
var ErrNotWon = errors.New("restart is only allowed after winning")

// Session is the game state machine: the world, the fog mask and the player.
// It is owned by a single goroutine.
type Session struct {
	ID uuid.UUID

	cfg    Config
	gen    *world.Generator
	world  *world.World
	mask   *fog.Mask
	player *entity.Player
	state  State
	status string
	log    *logrus.Entry
}

// Snapshot is a copy of everything the presentation layer shows besides the grids.
type Snapshot struct {
	SessionID    uuid.UUID
	Row, Col     int
	Level        int
	Levels       int
	HasKey       bool
	Score        int
	Won          bool
	Status       string
	VisionRadius int
}

// NewSession builds the first world and places the player at the start.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	s, seed, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.reset(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("seed", seed).Info("Session started.")
	return s, nil
}

// NewSessionOnWorld starts a session on a prebuilt world. Restarts still
// generate fresh worlds from cfg.
func NewSessionOnWorld(cfg Config, w *world.World) (*Session, error) {
	s, _, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	s.start(w)
	return s, nil
}

func newSession(cfg Config) (*Session, int64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Session{
		cfg: cfg,
		gen: world.NewGenerator(cfg.World, rand.New(rand.NewSource(seed))),
	}, seed, nil
}

// reset generates a fresh world and starts over.
func (s *Session) reset(ctx context.Context) error {
	w, err := world.Build(ctx, s.gen)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	s.start(w)
	return nil
}

func (s *Session) start(w *world.World) {
	first := w.Level(0)
	start := w.Start(0)

	s.ID = uuid.New()
	s.world = w
	s.mask = fog.NewMask(w.Depth(), first.Rows, first.Cols)
	s.player = entity.NewPlayer(start.Row, start.Col, s.cfg.Rules.StartScore)
	s.state = StatePlaying
	s.status = msgWelcome
	s.log = logger.Component("session").WithField("session_id", s.ID.String())
	s.reveal()
}

// Restart regenerates the world after a win. Score and fog start over.
func (s *Session) Restart(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "session.restart")
	defer span.End()

	if s.state != StateWon {
		return ErrNotWon
	}

	finalScore := s.player.Score
	if err := s.reset(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.previous_score", finalScore),
	)
	s.log.WithField("previous_score", finalScore).Info("Session restarted.")
	return nil
}

// ApplyMove resolves one step in dir and returns the event whose message is
// now the status text.
func (s *Session) ApplyMove(ctx context.Context, dir Direction) Event {
	_, span := telemetry.Tracer("game").Start(ctx, "session.move")
	defer span.End()

	ev := s.resolveMove(dir)
	if ev.Kind != EventIgnored {
		s.status = ev.Message
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.String("move.direction", dir.String()),
		attribute.String("move.event", ev.Kind.String()),
		attribute.Int("player.level", s.player.Level),
		attribute.Int("player.score", s.player.Score),
	)
	s.log.WithFields(logrus.Fields{
		"direction": dir.String(),
		"event":     ev.Kind.String(),
		"level":     s.player.Level,
		"row":       s.player.Row,
		"col":       s.player.Col,
		"score":     s.player.Score,
	}).Debug("Move resolved.")

	return ev
}

func (s *Session) resolveMove(dir Direction) Event {
	if s.state == StateWon {
		return Event{Kind: EventIgnored, Message: s.status}
	}

	p := s.player
	rules := s.cfg.Rules
	level := s.world.Level(p.Level)

	dr, dc := dir.Delta()
	dest := world.Pos{Row: p.Row + dr, Col: p.Col + dc}
	tile := level.Tile(dest)

	switch {
	case tile == world.TileWall:
		return Event{Kind: EventBlocked, Message: msgBlocked}
	case tile == world.TileDoor && !p.HasKey:
		return Event{Kind: EventLocked, Message: msgLocked}
	}

	var chain eventChain

	p.AddScore(-rules.StepCost)
	p.MoveTo(dest.Row, dest.Col)
	s.reveal()
	chain.add(EventMoved, movedMessage(p.Level, s.world.Depth(), p.Score))

	switch tile {
	case world.TileDoor:
		p.HasKey = false
		level.SetTile(dest, world.TileFloor)
		p.AddScore(rules.DoorBonus)
		chain.add(EventDoorUnlocked, fmt.Sprintf(msgDoor, rules.DoorBonus))
	case world.TileStairsDown:
		p.Level++
		p.AddScore(rules.StairsBonus)
		s.reveal()
		chain.add(EventStairsDown, stairsDownMessage(p.Level, rules.StairsBonus))
	case world.TileStairsUp:
		p.Level--
		s.reveal()
		chain.add(EventStairsUp, stairsUpMessage(p.Level))
	case world.TileExit:
		p.AddScore(rules.ExitBonus)
		s.state = StateWon
		chain.add(EventWon, wonMessage(p.Score))
		return chain.last()
	}

	s.pickUp(&chain)
	return chain.last()
}

// pickUp applies the item under the player on the (possibly new) level.
func (s *Session) pickUp(chain *eventChain) {
	p := s.player
	rules := s.cfg.Rules
	level := s.world.Level(p.Level)
	at := world.Pos{Row: p.Row, Col: p.Col}

	switch level.Item(at) {
	case world.ItemKey:
		p.HasKey = true
		p.AddScore(rules.KeyBonus)
		level.SetItem(at, world.ItemNone)
		chain.add(EventKeyFound, fmt.Sprintf(msgKey, rules.KeyBonus))
	case world.ItemTrap:
		p.AddScore(-rules.TrapPenalty)
		level.SetItem(at, world.ItemNone)
		start := s.world.Start(p.Level)
		p.MoveTo(start.Row, start.Col)
		s.reveal()
		chain.add(EventTrap, fmt.Sprintf(msgTrap, rules.TrapPenalty))
	}
}

// reveal uncovers the player's surroundings on the current level.
func (s *Session) reveal() {
	p := s.player
	s.mask.Reveal(p.Level, world.Pos{Row: p.Row, Col: p.Col}, s.cfg.VisionRadius)
}

// Snapshot returns the current player state and status text.
func (s *Session) Snapshot() Snapshot {
	p := s.player
	return Snapshot{
		SessionID:    s.ID,
		Row:          p.Row,
		Col:          p.Col,
		Level:        p.Level,
		Levels:       s.world.Depth(),
		HasKey:       p.HasKey,
		Score:        p.Score,
		Won:          s.state == StateWon,
		Status:       s.status,
		VisionRadius: s.cfg.VisionRadius,
	}
}

// Level returns the player's current level. Callers must not modify it.
func (s *Session) Level() *world.Level {
	return s.world.Level(s.player.Level)
}

// Revealed returns the fog mask of the player's current level. Callers must not modify it.
func (s *Session) Revealed() [][]bool {
	return s.mask.Level(s.player.Level)
}

// World returns the whole world, for debugging dumps.
func (s *Session) World() *world.World {
	return s.world
}

// Mask returns the fog mask of every level.
func (s *Session) Mask() *fog.Mask {
	return s.mask
}

// Player returns a copy of the player.
func (s *Session) Player() entity.Player {
	return *s.player
}

// State returns the current game state.
func (s *Session) State() State {
	return s.state
}

// Status returns the current status text.
func (s *Session) Status() string {
	return s.status
}
