package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/mazerunner/internal/gamedata"
	"github.com/samdwyer/mazerunner/internal/world"
)

const (
	// DefaultVisionRadius is the Chebyshev radius revealed around the player.
	DefaultVisionRadius = 2
	// DefaultMoveDelay is the minimum time between two accepted moves.
	DefaultMoveDelay = 150 * time.Millisecond
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible maze generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	World        world.Options
	VisionRadius int
	MoveDelay    time.Duration
	Rules        gamedata.Rules
}

// DefaultConfig returns the standard game: three 15x20 levels, vision radius 2,
// and the embedded scoring rules.
func DefaultConfig() Config {
	return Config{
		World:        world.DefaultOptions(),
		VisionRadius: DefaultVisionRadius,
		MoveDelay:    DefaultMoveDelay,
		Rules:        gamedata.MustLoadRules(),
	}
}

// ApplyEnv overrides fields from MAZERUNNER_SEED and MAZERUNNER_MOVE_DELAY.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MAZERUNNER_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAZERUNNER_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("MAZERUNNER_MOVE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MAZERUNNER_MOVE_DELAY: %w", err)
		}
		c.MoveDelay = d
	}
	return nil
}

// Validate checks that the configuration can produce a playable world.
func (c Config) Validate() error {
	w := c.World
	switch {
	case w.Levels < 1:
		return fmt.Errorf("%w: need at least one level, got %d", ErrInvalidConfig, w.Levels)
	case w.Rows < world.MinSize || w.Cols < world.MinSize:
		return fmt.Errorf("%w: grid %dx%d smaller than %dx%d", ErrInvalidConfig, w.Rows, w.Cols, world.MinSize, world.MinSize)
	case c.VisionRadius < 0:
		return fmt.Errorf("%w: negative vision radius %d", ErrInvalidConfig, c.VisionRadius)
	case c.MoveDelay < 0:
		return fmt.Errorf("%w: negative move delay %s", ErrInvalidConfig, c.MoveDelay)
	case c.Rules.StartScore <= 0:
		return fmt.Errorf("%w: start score must be positive, got %d", ErrInvalidConfig, c.Rules.StartScore)
	}

	hasDoor := w.DoorLevel >= 0 && w.DoorLevel < w.Levels
	hasKey := w.KeyLevel >= 0 && w.KeyLevel < w.Levels
	if hasDoor && !hasKey {
		return fmt.Errorf("%w: door on level %d but no key level", ErrInvalidConfig, w.DoorLevel)
	}
	return nil
}
