// cmd/terminal/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-flight/pkg/config"
	"github.com/opd-ai/go-flight/pkg/engine"
	"github.com/opd-ai/go-flight/pkg/logging"
	"github.com/opd-ai/go-flight/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON or YAML)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	field := flag.String("field", "", "Asteroid field template ("+strings.Join(config.ListFieldTemplates(), ", ")+")")
	seed := flag.String("seed", "", "Field seed, a number or any phrase")
	logPath := flag.String("log", "flight.log", "File to write logs to")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			fmt.Fprintln(os.Stderr, "-default needs -config")
			os.Exit(2)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create default configuration:", err)
			os.Exit(1)
		}
		return
	}

	// The screen owns stdout, so logs go to a file.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.NewLoggerWithWriter(logFile)
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	if err := run(ctx, logger, *configPath, *field, *seed); err != nil {
		logger.Error(ctx, "terminal client failed", err)
		fmt.Fprintln(os.Stderr, err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *logging.Logger, configPath, field, seed string) error {
	gameConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if field != "" {
		if err := config.ApplyFieldTemplate(gameConfig, field); err != nil {
			return err
		}
	}
	if n, ok := config.ParseSeed(seed); ok {
		gameConfig.Seed = n
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()
	screen.EnableMouse()
	screen.HideCursor()

	device := render.NewTerminalDevice(render.DefaultKeyHold)
	game, err := engine.NewGame(gameConfig, device, logger)
	if err != nil {
		return err
	}
	game.AttachRenderer(render.NewTerminalRenderer(screen))

	logger.Info(ctx, "starting terminal client",
		"config_path", configPath,
		"ship_class", gameConfig.Ship.Class,
		"asteroids", gameConfig.Field.Asteroids,
		"seed", gameConfig.Seed,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 64)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return pollEvents(ctx, screen, events)
	})

	g.Go(func() error {
		// Fini makes PollEvent return nil, which ends the poller.
		defer fini()
		return frameLoop(ctx, game, device, screen, events, gameConfig.Display.TargetFPS)
	})

	err = g.Wait()
	if game.Running() {
		game.Stop()
	}

	snap := game.Snapshot()
	logger.Info(ctx, "terminal client exited",
		"ticks", snap.Tick,
		"elapsed", snap.Elapsed.String(),
		"collisions", snap.Collisions,
	)
	return err
}

// pollEvents forwards screen events until the screen is finalized.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// frameLoop drives one game update per tick at the target frame rate.
func frameLoop(ctx context.Context, game *engine.Game, device *render.TerminalDevice,
	screen tcell.Screen, events <-chan tcell.Event, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	game.Start()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			device.HandleEvent(ev, time.Now())
		case now := <-ticker.C:
			device.Expire(now)
			game.Update(float32(now.Sub(last).Seconds()))
			last = now

			if !game.Running() {
				return nil
			}
		}
	}
}
