package event

import "fmt"

// Deferred is work requested during a frame and carried out once the
// physics step has finished. The set of payloads is closed.
type Deferred interface {
	deferred()
}

// SpawnProjectile asks for a projectile fired by OwnerID's weapon slot.
type SpawnProjectile struct {
	OwnerID uint64
	Weapon  int
}

// Despawn asks for an entity to be removed.
type Despawn struct {
	EntityID uint64
}

func (SpawnProjectile) deferred() {}
func (Despawn) deferred()         {}

// Queue is a bounded FIFO of deferred payloads. It is owned by the frame
// loop and not safe for concurrent use.
type Queue struct {
	items    []Deferred
	capacity int
	draining bool
	next     []Deferred
}

// NewQueue creates a queue holding at most capacity pending items.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		panic("event: queue capacity must be positive")
	}
	return &Queue{
		items:    make([]Deferred, 0, capacity),
		capacity: capacity,
	}
}

// Push appends d. Exceeding the capacity panics. Items pushed while a drain
// is running wait for the next drain.
func (q *Queue) Push(d Deferred) {
	if q.Len() >= q.capacity {
		panic(fmt.Sprintf("event: deferred queue overflow (capacity %d)", q.capacity))
	}
	if q.draining {
		q.next = append(q.next, d)
		return
	}
	q.items = append(q.items, d)
}

// Len returns the number of pending items.
func (q *Queue) Len() int { return len(q.items) + len(q.next) }

// Drain hands every pending item to fn in push order.
func (q *Queue) Drain(fn func(Deferred)) {
	if q.draining {
		panic("event: nested drain")
	}
	q.draining = true
	pending := q.items
	q.items = nil
	defer func() {
		q.draining = false
		q.items = append(pending[:0], q.next...)
		q.next = q.next[:0]
	}()

	for i, d := range pending {
		pending[i] = nil
		fn(d)
	}
}
