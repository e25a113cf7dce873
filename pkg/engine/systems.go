// pkg/engine/systems.go
package engine

import (
	"context"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-flight/pkg/entity"
	"github.com/opd-ai/go-flight/pkg/event"
	"github.com/opd-ai/go-flight/pkg/input"
)

// System priorities. ecs runs higher priorities first.
const (
	PriorityInput         = 100
	PriorityShipControl   = 90
	PriorityPhysics       = 80
	PriorityLifetime      = 70
	PrioritySpawn         = 60
	PriorityTransformSync = 50
	PriorityCamera        = 40
)

// registerSystems adds the simulation systems to the ecs world.
func (g *Game) registerSystems() {
	var (
		flyable   *entity.Flyable
		simulated *entity.Simulated
		expiring  *entity.Expiring
	)

	g.world.AddSystem(&InputSystem{game: g})
	g.world.AddSystemInterface(&ShipControlSystem{game: g}, flyable, nil)
	g.world.AddSystem(&PhysicsSystem{game: g})
	g.world.AddSystemInterface(&LifetimeSystem{game: g}, expiring, nil)
	g.world.AddSystem(&SpawnSystem{game: g})
	g.world.AddSystemInterface(&TransformSyncSystem{}, []interface{}{flyable, simulated}, nil)
	g.world.AddSystem(&CameraSystem{game: g})
}

// frameEnder is implemented by devices that track per-frame edges.
type frameEnder interface {
	EndFrame()
}

// InputSystem maps the device into the player's ShipInput and handles the
// debug and quit buttons.
type InputSystem struct {
	game *Game
}

func (s *InputSystem) Priority() int          { return PriorityInput }
func (s *InputSystem) Remove(ecs.BasicEntity) {}
func (s *InputSystem) Update(dt float32) {
	g := s.game
	if g.device == nil {
		return
	}

	if g.player != nil {
		g.player.Input = g.mapper.Map(g.device)
	}
	if g.device.JustPressed(input.ToggleDebug) {
		g.SetShowColliders(!g.showColliders)
	}
	if g.device.JustPressed(input.Quit) {
		g.Stop()
	}

	if fe, ok := g.device.(frameEnder); ok {
		fe.EndFrame()
	}
}

// ShipControlSystem hands each ship's input to its flight action and turns
// trigger presses into projectile spawns.
type ShipControlSystem struct {
	game  *Game
	ships []entity.Flyable
}

// firer is a ship that can fire weapons.
type firer interface {
	FireWeapon(weaponIndex int, now time.Duration) *entity.Weapon
}

func (s *ShipControlSystem) Priority() int { return PriorityShipControl }

// AddByInterface satisfies ecs.SystemAddByInterfacer.
func (s *ShipControlSystem) AddByInterface(o ecs.Identifier) {
	s.ships = append(s.ships, o.(entity.Flyable))
}

// Remove satisfies the ecs.System interface
func (s *ShipControlSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range s.ships {
		if e.ID() == basic.ID() {
			s.ships = append(s.ships[:i], s.ships[i+1:]...)
			return
		}
	}
}

func (s *ShipControlSystem) Update(dt float32) {
	for _, e := range s.ships {
		sc := e.GetShipComponent()
		sc.Action.ApplyInput(sc.Input)

		f, ok := e.(firer)
		if !ok {
			continue
		}
		if sc.Input.Firing() && f.FireWeapon(0, s.game.clock) != nil {
			s.game.queue.Push(event.SpawnProjectile{OwnerID: e.ID(), Weapon: 0})
		}
		if sc.Input.AltFiring() && f.FireWeapon(1, s.game.clock) != nil {
			s.game.queue.Push(event.SpawnProjectile{OwnerID: e.ID(), Weapon: 1})
		}
		sc.Input.Reset()
	}
}

// PhysicsSystem feeds frame time into a fixed-step accumulator and steps
// the physics world at most once per frame. Whole steps beyond the first
// are dropped.
type PhysicsSystem struct {
	game        *Game
	accumulator float64
}

func (s *PhysicsSystem) Priority() int          { return PriorityPhysics }
func (s *PhysicsSystem) Remove(ecs.BasicEntity) {}
func (s *PhysicsSystem) Update(dt float32) {
	g := s.game
	g.lastStep = 0

	frame := float64(dt)
	if frame <= 0 {
		return
	}
	if frame > g.Config.Physics.MaxFrameTime {
		frame = g.Config.Physics.MaxFrameTime
	}

	step := g.Config.Physics.FixedStep
	s.accumulator += frame
	steps := int(s.accumulator / step)
	if steps == 0 {
		return
	}
	s.accumulator -= float64(steps) * step

	g.physics.Step(step)
	g.lastStep = g.Config.Physics.Step()
	g.clock += g.lastStep
	g.currentTick++
}

// LifetimeSystem counts down expiring entities by the simulated time of the
// frame's step and queues their removal.
type LifetimeSystem struct {
	game     *Game
	entities []entity.Expiring
}

func (s *LifetimeSystem) Priority() int { return PriorityLifetime }

// AddByInterface satisfies ecs.SystemAddByInterfacer.
func (s *LifetimeSystem) AddByInterface(o ecs.Identifier) {
	s.entities = append(s.entities, o.(entity.Expiring))
}

// Remove satisfies the ecs.System interface
func (s *LifetimeSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range s.entities {
		if e.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

func (s *LifetimeSystem) Update(dt float32) {
	step := s.game.lastStep
	if step == 0 {
		return
	}
	for _, e := range s.entities {
		lc := e.GetLifetimeComponent()
		if lc.Remaining <= 0 {
			continue // already queued
		}
		if lc.Tick(step) {
			s.game.queue.Push(event.Despawn{EntityID: e.ID()})
		}
	}
}

// SpawnSystem applies deferred spawns and removals after the step.
type SpawnSystem struct {
	game *Game
}

func (s *SpawnSystem) Priority() int          { return PrioritySpawn }
func (s *SpawnSystem) Remove(ecs.BasicEntity) {}
func (s *SpawnSystem) Update(dt float32) {
	s.game.queue.Drain(s.apply)
}

func (s *SpawnSystem) apply(d event.Deferred) {
	g := s.game
	switch v := d.(type) {
	case event.SpawnProjectile:
		ship, ok := g.ships[v.OwnerID]
		if !ok || v.Weapon < 0 || v.Weapon >= len(ship.Weapons) {
			g.logger.Warn(context.Background(), "dropping projectile spawn",
				"owner_id", v.OwnerID,
				"weapon", v.Weapon,
			)
			return
		}
		weapon := ship.Weapons[v.Weapon]
		p := entity.NewProjectile(g.physics, g.projectileModel, weapon, ship.ID(),
			ship.Action.ExportTransform(), ship.Action.CurrentVelocity())
		g.addEntity(p)
		g.bus.Publish(event.NewFireEvent(g, ship.ID(), p.ID(), weapon.Name))
		g.bus.Publish(event.NewEntityEvent(event.EntitySpawned, g, p.ID(), string(p.Kind())))

	case event.Despawn:
		e, ok := g.removeEntity(v.EntityID)
		if !ok {
			return
		}
		g.bus.Publish(event.NewEntityEvent(event.EntityDespawned, g, v.EntityID, string(e.Kind())))
	}
}

// transformSyncer is a ship that keeps its own scale when synced.
type transformSyncer interface {
	SyncTransform()
}

// TransformSyncSystem copies flight and rigid-body placements into entity
// transforms for drawing.
type TransformSyncSystem struct {
	ships  []entity.Flyable
	bodies []entity.Simulated
}

func (s *TransformSyncSystem) Priority() int { return PriorityTransformSync }

// AddByInterface satisfies ecs.SystemAddByInterfacer.
func (s *TransformSyncSystem) AddByInterface(o ecs.Identifier) {
	if f, ok := o.(entity.Flyable); ok {
		s.ships = append(s.ships, f)
	}
	if b, ok := o.(entity.Simulated); ok {
		s.bodies = append(s.bodies, b)
	}
}

// Remove satisfies the ecs.System interface
func (s *TransformSyncSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range s.ships {
		if e.ID() == basic.ID() {
			s.ships = append(s.ships[:i], s.ships[i+1:]...)
			break
		}
	}
	for i, e := range s.bodies {
		if e.ID() == basic.ID() {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
}

func (s *TransformSyncSystem) Update(dt float32) {
	for _, e := range s.ships {
		if ts, ok := e.(transformSyncer); ok {
			ts.SyncTransform()
			continue
		}
		t := e.GetTransformComponent()
		placement := e.GetShipComponent().Action.ExportTransform()
		t.Transform.Translation = placement.Translation
		t.Transform.Rotation = placement.Rotation
	}
	for _, e := range s.bodies {
		entity.SyncBody(e.GetTransformComponent(), e.GetBodyComponent())
	}
}

// CameraSystem moves the chase camera behind the player.
type CameraSystem struct {
	game *Game
}

func (s *CameraSystem) Priority() int          { return PriorityCamera }
func (s *CameraSystem) Remove(ecs.BasicEntity) {}
func (s *CameraSystem) Update(dt float32) {
	g := s.game
	if g.player == nil {
		return
	}
	cam := g.arm.Follow(g.player.Action.ExportTransform(), g.Config.Camera.Lerp, g.Config.Camera.LookAhead)
	cam.FOV = g.Config.Camera.FOV
	g.camera = cam
}
