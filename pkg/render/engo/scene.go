// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-flight/pkg/config"
	"github.com/opd-ai/go-flight/pkg/engine"
	"github.com/opd-ai/go-flight/pkg/logging"
)

// SceneType is the engo scene name.
const SceneType = "FlightScene"

// PriorityPoll runs before the game's input system.
const PriorityPoll = engine.PriorityInput + 10

// FlightScene runs the game inside an engo window with a radar view.
type FlightScene struct {
	config *config.GameConfig
	logger *logging.Logger

	game   *engine.Game
	device *Device
	assets *AssetManager
	view   *RadarView
	radar  *RadarRenderer
	hud    *HUD
}

// NewFlightScene creates a new flight scene
func NewFlightScene(cfg *config.GameConfig, logger *logging.Logger) *FlightScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FlightScene{
		config: cfg,
		logger: logger.WithComponent("engo_scene"),
		device: NewDevice(),
		assets: NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *FlightScene) Type() string {
	return SceneType
}

// Preload loads sprites and the HUD font (required by Engo)
func (scene *FlightScene) Preload() {
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(context.Background(), "failed to load assets", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *FlightScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("engo: flight scene needs an *ecs.World updater")
	}

	common.SetBackground(color.Black)
	RegisterBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	poll := &pollSystem{device: scene.device}
	world.AddSystem(poll)

	game, err := engine.NewGame(scene.config, scene.device, scene.logger, engine.WithWorld(world))
	if err != nil {
		// Setup cannot return an error
		panic("Failed to create game: " + err.Error())
	}
	scene.game = game
	poll.game = game

	scene.view = NewRadarView(engo.Point{X: engo.GameWidth(), Y: engo.GameHeight()}, DefaultRadarRange)
	world.AddSystem(NewZoomSystem(scene.view))

	scene.hud = NewHUD(renderSystem, scene.assets.Font())
	scene.radar = NewRadarRenderer(renderSystem, scene.assets, scene.view, scene.hud)
	game.AttachRenderer(scene.radar)

	game.Start()
}

// Game returns the running game, nil before Setup.
func (scene *FlightScene) Game() *engine.Game {
	return scene.game
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *FlightScene) Exit() {
	if scene.game != nil {
		scene.game.Stop()
	}
}

// pollSystem samples the engo device at the start of every frame and
// closes the window once the game stops.
type pollSystem struct {
	device *Device
	game   *engine.Game
}

func (s *pollSystem) Priority() int          { return PriorityPoll }
func (s *pollSystem) Remove(ecs.BasicEntity) {}
func (s *pollSystem) Update(dt float32) {
	if s.game != nil && s.game.Phase() == engine.GameStatusEnded {
		engo.Exit()
		return
	}
	s.device.Poll()
}
