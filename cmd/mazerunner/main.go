// Package main is the entry point for Maze Runner.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mazerunner/internal/devtools"
	"github.com/samdwyer/mazerunner/internal/game"
	"github.com/samdwyer/mazerunner/internal/logger"
	"github.com/samdwyer/mazerunner/internal/telemetry"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed for maze generation (0 = time based)")
	dump := flag.Bool("dump", false, "print a freshly generated world and exit")
	reveal := flag.Bool("reveal", false, "with -dump, print every cell instead of only the start area")
	flag.Parse()

	// Load .env file for local development
	envErr := godotenv.Load()

	logOut, closeLog := logOutput(*dump)
	defer closeLog()
	logger.Init(logOut)
	log := logger.Component("main")
	if envErr != nil {
		// Not fatal - env vars might be set directly
		log.WithError(envErr).Debug(".env file not loaded")
	}

	cfg := game.DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		log.WithError(err).Fatal("Invalid environment")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	ctx := context.Background()

	if *dump {
		if err := dumpWorld(ctx, cfg, *reveal); err != nil {
			log.WithError(err).Fatal("Dump failed")
		}
		return
	}

	// Only export traces when a Honeycomb key is configured
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Error("Error shutting down telemetry")
				}
			}()
		}
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to initialize game")
		fmt.Fprintf(os.Stderr, "mazerunner: %v\n", err)
		os.Exit(1)
	}

	if err := g.Run(ctx); err != nil {
		log.WithError(err).Error("Game error")
		fmt.Fprintf(os.Stderr, "mazerunner: %v\n", err)
		os.Exit(1)
	}
}

// logOutput picks the log destination: LOG_FILE if set, stderr for dumps,
// otherwise nowhere, since the game screen owns the terminal.
func logOutput(dump bool) (io.Writer, func()) {
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			return f, func() { f.Close() }
		}
		fmt.Fprintf(os.Stderr, "mazerunner: cannot open LOG_FILE: %v\n", err)
	}
	if dump {
		return os.Stderr, func() {}
	}
	return io.Discard, func() {}
}

// dumpWorld generates a world and prints it, fogged as at game start unless reveal is set.
func dumpWorld(ctx context.Context, cfg game.Config, reveal bool) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	session, err := game.NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	player := session.Player()

	fmt.Printf("Seed: %d\n", cfg.Seed)
	return devtools.Dump(os.Stdout, session.World(), session.Mask(), &player, devtools.DumpOptions{
		RevealAll: reveal,
		Color:     devtools.IsTerminal(os.Stdout),
	})
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It returns false when no Honeycomb API key is set.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_MAZERUNNER_API_KEY")
	if apiKey == "" {
		return false
	}

	dataset := os.Getenv("HONEYCOMB_MAZERUNNER_DATASET")
	if dataset == "" {
		dataset = "mazerunner" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
