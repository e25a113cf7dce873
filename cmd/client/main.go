// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-flight/pkg/config"
	"github.com/opd-ai/go-flight/pkg/logging"
	engorender "github.com/opd-ai/go-flight/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON or YAML)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	seed := flag.String("seed", "", "Field seed, a number or any phrase")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if n, ok := config.ParseSeed(*seed); ok {
		gameConfig.Seed = n
	}

	logger.Info(ctx, "starting windowed client",
		"ship_class", gameConfig.Ship.Class,
		"asteroids", gameConfig.Field.Asteroids,
		"seed", gameConfig.Seed,
	)

	scene := engorender.NewFlightScene(gameConfig, logger)

	opts := engo.RunOptions{
		Title:      gameConfig.Display.Title,
		Width:      gameConfig.Display.Width,
		Height:     gameConfig.Display.Height,
		Fullscreen: *fullscreen,
		VSync:      true,
		FPSLimit:   gameConfig.Display.TargetFPS,
	}

	engo.Run(opts, scene)

	if game := scene.Game(); game != nil {
		snap := game.Snapshot()
		logger.Info(ctx, "client exited",
			"ticks", snap.Tick,
			"elapsed", snap.Elapsed.String(),
			"collisions", snap.Collisions,
		)
	}
}
