// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flight/pkg/config"
	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/event"
	"github.com/opd-ai/go-flight/pkg/flight"
	"github.com/opd-ai/go-flight/pkg/input"
	"github.com/opd-ai/go-flight/pkg/logging"
	"github.com/opd-ai/go-flight/pkg/mesh"
	"github.com/opd-ai/go-flight/pkg/physics"
	"github.com/opd-ai/go-flight/pkg/render"
)

// GameStatus is the lifecycle phase of a game
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// String returns the status name
func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Option configures a Game
type Option func(*Game)

// WithWorld registers the game's systems with an existing ecs world, such
// as the one an engo scene is handed.
func WithWorld(w *ecs.World) Option {
	return func(g *Game) {
		g.world = w
	}
}

// WithClock replaces the wall clock used for log throttling.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game represents the core game state and logic. It is driven from a single
// goroutine.
type Game struct {
	Config *config.GameConfig

	world   *ecs.World
	physics *physics.World
	rng     *physics.Random
	bus     *event.Bus
	queue   *event.Queue
	logger  *logging.Logger
	limiter *logging.Limiter
	now     func() time.Time

	device input.Device
	mapper *input.Mapper

	player      *entity.Ship
	ships       map[uint64]*entity.Ship
	asteroids   map[uint64]*entity.Asteroid
	projectiles map[uint64]*entity.Projectile

	shipModel       *mesh.Model
	projectileModel *mesh.Model
	rockModels      []*mesh.Model

	arm    *entity.CameraArm
	camera entity.Camera

	status        GameStatus
	showColliders bool
	clock         time.Duration // simulated time
	lastStep      time.Duration // zero on frames without a step
	currentTick   uint64
	collisions    int

	renderers []*render.System
}

// NewGame builds the scene described by cfg: the player ship at the origin
// and the asteroid field around it. device feeds the player's controls and
// may be nil for a ship that never receives input.
func NewGame(cfg *config.GameConfig, device input.Device, logger *logging.Logger, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	g := &Game{
		Config:      cfg,
		rng:         physics.NewRandom(cfg.Seed),
		bus:         event.NewEventBus(),
		queue:       event.NewQueue(cfg.Physics.QueueCapacity),
		logger:      logger.WithComponent("engine"),
		limiter:     logging.NewLimiter(time.Second),
		now:         time.Now,
		device:      device,
		ships:       make(map[uint64]*entity.Ship),
		asteroids:   make(map[uint64]*entity.Asteroid),
		projectiles: make(map[uint64]*entity.Projectile),
		camera:      entity.NewCamera(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.world == nil {
		g.world = &ecs.World{}
	}

	g.mapper = input.NewMapper()
	g.mapper.MouseLook = cfg.Input.MouseLook
	g.mapper.MouseSensitivity = cfg.Input.MouseSensitivity
	g.showColliders = cfg.Display.ShowColliders

	g.initPhysics()
	g.initCamera()
	g.registerSystems()

	if err := g.initModels(); err != nil {
		return nil, err
	}
	g.spawnPlayer()
	g.spawnField()

	g.logger.Info(context.Background(), "game created",
		"seed", cfg.Seed,
		"ship_class", g.player.Class.String(),
		"asteroids", len(g.asteroids),
	)
	return g, nil
}

// initPhysics creates the physics world sized from the configuration.
func (g *Game) initPhysics() {
	wc := physics.DefaultWorldConfig()
	extent := g.Config.Physics.WorldExtent
	wc.Bounds = physics.AABBFromCenter(mgl64.Vec3{}, mgl64.Vec3{extent, extent, extent})
	wc.Restitution = g.Config.Physics.Restitution
	wc.LinearDamping = g.Config.Physics.LinearDamping
	wc.AngularDamping = g.Config.Physics.AngularDamping
	g.physics = physics.NewWorld(wc)
}

// initCamera creates the chase camera arm.
func (g *Game) initCamera() {
	o := g.Config.Camera.Offset
	g.arm = entity.NewCameraArm(mgl64.Vec3{o[0], o[1], o[2]})
	g.camera.FOV = g.Config.Camera.FOV
}

// initModels builds the ship, projectile and rock meshes.
func (g *Game) initModels() error {
	g.shipModel = mesh.NewModel("ship", mesh.NewShip())
	g.projectileModel = mesh.NewModel("projectile", mesh.NewIcosphere(0))

	rocks, err := loadRockModels(g.Config.Field, g.rng)
	if err != nil {
		return err
	}
	g.rockModels = rocks
	return nil
}

// spawnPlayer creates the player ship at the origin.
func (g *Game) spawnPlayer() {
	var ship *entity.Ship
	ship = entity.NewShip(g.physics, g.shipModel,
		entity.ShipClassFromString(g.Config.Ship.Class),
		g.Config.Ship.FlightConfig(),
		flight.WithCollisionHandler(func(c flight.Collision) {
			g.handleShipCollision(ship, c)
		}),
	)
	g.player = ship
	g.addEntity(ship)
}

// spawnField scatters the asteroid field.
func (g *Game) spawnField() {
	for _, placement := range placeAsteroids(g.Config.Field, g.rng) {
		model := g.rockModels[g.rng.Int(0, len(g.rockModels)-1)]
		a := entity.NewAsteroid(g.physics, model, placement.Translation, placement.Rotation, g.Config.Field.AsteroidConfig())
		g.addEntity(a)
	}
}

// addEntity registers e with the ecs world and the game's indexes.
func (g *Game) addEntity(e entity.Entity) {
	switch v := e.(type) {
	case *entity.Ship:
		g.ships[v.ID()] = v
	case *entity.Asteroid:
		g.asteroids[v.ID()] = v
	case *entity.Projectile:
		g.projectiles[v.ID()] = v
	}
	g.world.AddEntity(e)
}

// removeEntity drops an entity from ecs, physics and the indexes. It
// reports whether the entity was known.
func (g *Game) removeEntity(id uint64) (entity.Entity, bool) {
	var e entity.Entity
	switch {
	case g.projectiles[id] != nil:
		p := g.projectiles[id]
		g.physics.RemoveBody(p.Body)
		delete(g.projectiles, id)
		e = p
	case g.asteroids[id] != nil:
		a := g.asteroids[id]
		g.physics.RemoveBody(a.Body)
		delete(g.asteroids, id)
		e = a
	case g.ships[id] != nil:
		s := g.ships[id]
		s.Detach(g.physics)
		delete(g.ships, id)
		if s == g.player {
			g.player = nil
		}
		e = s
	default:
		return nil, false
	}
	g.world.RemoveEntity(*e.GetBasicEntity())
	return e, true
}

// entity looks an entity up by ID.
func (g *Game) entity(id uint64) (entity.Entity, bool) {
	if s, ok := g.ships[id]; ok {
		return s, true
	}
	if a, ok := g.asteroids[id]; ok {
		return a, true
	}
	if p, ok := g.projectiles[id]; ok {
		return p, true
	}
	return nil, false
}

// AttachRenderer registers a render system drawing through r and hands it
// every entity already in the scene.
func (g *Game) AttachRenderer(r render.Renderer) *render.System {
	sys := render.NewSystem(r, g, g.logger)
	var renderable *entity.Renderable
	g.world.AddSystemInterface(sys, renderable, nil)

	if g.player != nil {
		sys.Add(g.player)
	}
	for _, a := range g.asteroids {
		sys.Add(a)
	}
	for _, p := range g.projectiles {
		sys.Add(p)
	}
	g.renderers = append(g.renderers, sys)
	return sys
}

// Start begins the game
func (g *Game) Start() {
	if g.status == GameStatusActive {
		return
	}
	g.status = GameStatusActive
	g.bus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
	g.logger.Info(context.Background(), "game started")
}

// Stop ends the game. Further updates do nothing.
func (g *Game) Stop() {
	if g.status == GameStatusEnded {
		return
	}
	g.status = GameStatusEnded
	g.bus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
	g.logger.Info(context.Background(), "game ended",
		"ticks", g.currentTick,
		"elapsed", g.clock.String(),
	)
}

// Update runs every system once with a frame time of dt seconds. It is a
// no-op unless the game is active.
func (g *Game) Update(dt float32) {
	if g.status != GameStatusActive {
		return
	}
	g.world.Update(dt)
}

// Running reports whether the game is active.
func (g *Game) Running() bool { return g.status == GameStatusActive }

// Phase returns the lifecycle status.
func (g *Game) Phase() GameStatus { return g.status }

// World returns the ecs world the game's systems live in.
func (g *Game) World() *ecs.World { return g.world }

// Physics returns the physics world.
func (g *Game) Physics() *physics.World { return g.physics }

// Bus returns the event bus.
func (g *Game) Bus() *event.Bus { return g.bus }

// Player returns the player ship, nil after it was removed.
func (g *Game) Player() *entity.Ship { return g.player }

// Clock returns the simulated time.
func (g *Game) Clock() time.Duration { return g.clock }

// Tick returns the number of physics steps taken.
func (g *Game) Tick() uint64 { return g.currentTick }

// Camera implements render.Scene.
func (g *Game) Camera() entity.Camera { return g.camera }

// ShowColliders implements render.Scene.
func (g *Game) ShowColliders() bool { return g.showColliders }

// SetShowColliders switches debug collider drawing.
func (g *Game) SetShowColliders(on bool) {
	if g.showColliders == on {
		return
	}
	g.showColliders = on
	g.bus.Publish(&event.BaseEvent{EventType: event.DebugToggled, Source: on})
}

// Status implements render.Scene with a few lines of flight telemetry.
func (g *Game) Status() []string {
	lines := []string{
		fmt.Sprintf("t=%.1fs tick=%d %s", g.clock.Seconds(), g.currentTick, g.status),
	}
	if g.player != nil {
		pos := g.player.Action.Position()
		lines = append(lines,
			fmt.Sprintf("%s speed %.1f", g.player.Class, g.player.Action.CurrentVelocity().Len()),
			fmt.Sprintf("pos %.0f %.0f %.0f", pos[0], pos[1], pos[2]),
		)
	}
	lines = append(lines, fmt.Sprintf("rocks %d shots %d hits %d",
		len(g.asteroids), len(g.projectiles), g.collisions))
	if g.showColliders {
		lines = append(lines, "colliders on")
	}
	return lines
}

// handleShipCollision publishes and logs a resolved ship hit. It runs inside
// the physics step.
func (g *Game) handleShipCollision(ship *entity.Ship, c flight.Collision) {
	g.collisions++

	var targetID uint64
	switch o := c.Object.(type) {
	case *physics.RigidBody:
		targetID, _ = o.UserData.(uint64)
	case *physics.Proxy:
		targetID, _ = o.UserData.(uint64)
	}

	g.bus.Publish(event.NewCollisionEvent(g, ship.ID(), targetID, c.Point, c.Normal, c.Slowdown))

	if g.limiter.Allow(fmt.Sprintf("collision:%d", ship.ID()), g.now()) {
		g.logger.WithEntity(string(ship.Kind()), ship.ID()).Debug(context.Background(), "ship collision",
			"target_id", targetID,
			"slowdown", c.Slowdown,
			"speed_before", c.SpeedBefore,
			"speed_after", c.SpeedAfter,
		)
	}
}

// Snapshot returns a copy of the game state.
func (g *Game) Snapshot() *GameState {
	state := &GameState{
		Tick:        g.currentTick,
		Elapsed:     g.clock,
		Status:      g.status,
		Asteroids:   len(g.asteroids),
		Projectiles: len(g.projectiles),
		Collisions:  g.collisions,
	}
	if g.player != nil {
		v := g.player.Action.CurrentVelocity()
		state.Ship = &ShipState{
			ID:          g.player.ID(),
			Class:       g.player.Class,
			Position:    g.player.Action.Position(),
			Orientation: g.player.Action.Orientation(),
			Velocity:    v,
			Speed:       v.Len(),
		}
	}
	return state
}

// GameState represents a snapshot of the game state
type GameState struct {
	Tick        uint64
	Elapsed     time.Duration
	Status      GameStatus
	Ship        *ShipState
	Asteroids   int
	Projectiles int
	Collisions  int
}

// ShipState represents a snapshot of a ship's state
type ShipState struct {
	ID          uint64
	Class       entity.ShipClass
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Velocity    mgl64.Vec3
	Speed       float64
}
