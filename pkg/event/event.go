// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Type represents the type of event
type Type string

// Common event types
const (
	ShipCollision   Type = "ship_collision"
	ProjectileFired Type = "projectile_fired"
	EntitySpawned   Type = "entity_spawned"
	EntityDespawned Type = "entity_despawned"
	DebugToggled    Type = "debug_toggled"
	GameStarted     Type = "game_started"
	GameEnded       Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is a handle to a registered handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes a handler. It reports whether the subscription existed.
func (b *Bus) Unsubscribe(eventType Type, id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may subscribe or publish themselves.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// CollisionEvent reports a ship striking another object.
type CollisionEvent struct {
	BaseEvent
	ShipID   uint64
	TargetID uint64 // zero when the target has no entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Slowdown float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, shipID, targetID uint64, point, normal mgl64.Vec3, slowdown float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: ShipCollision,
			Source:    source,
		},
		ShipID:   shipID,
		TargetID: targetID,
		Point:    point,
		Normal:   normal,
		Slowdown: slowdown,
	}
}

// EntityEvent carries an entity lifecycle change.
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Kind     string
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, kind string) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Kind:     kind,
	}
}

// FireEvent reports a projectile leaving a ship.
type FireEvent struct {
	BaseEvent
	ShipID       uint64
	ProjectileID uint64
	Weapon       string
}

// NewFireEvent creates a new fire event
func NewFireEvent(source interface{}, shipID, projectileID uint64, weapon string) *FireEvent {
	return &FireEvent{
		BaseEvent: BaseEvent{
			EventType: ProjectileFired,
			Source:    source,
		},
		ShipID:       shipID,
		ProjectileID: projectileID,
		Weapon:       weapon,
	}
}
