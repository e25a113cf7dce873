package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue(8)
	q.Push(SpawnProjectile{OwnerID: 1, Weapon: 0})
	q.Push(Despawn{EntityID: 5})
	q.Push(SpawnProjectile{OwnerID: 1, Weapon: 1})

	var got []Deferred
	q.Drain(func(d Deferred) { got = append(got, d) })

	assert.Equal(t, []Deferred{
		SpawnProjectile{OwnerID: 1, Weapon: 0},
		Despawn{EntityID: 5},
		SpawnProjectile{OwnerID: 1, Weapon: 1},
	}, got)
	assert.Zero(t, q.Len())
}

func TestQueuePushDuringDrainWaits(t *testing.T) {
	q := NewQueue(4)
	q.Push(SpawnProjectile{OwnerID: 1})

	var first []Deferred
	q.Drain(func(d Deferred) {
		first = append(first, d)
		q.Push(Despawn{EntityID: 9})
	})

	require.Len(t, first, 1)
	assert.Equal(t, 1, q.Len())

	var second []Deferred
	q.Drain(func(d Deferred) { second = append(second, d) })
	assert.Equal(t, []Deferred{Despawn{EntityID: 9}}, second)
}

func TestQueueOverflowPanics(t *testing.T) {
	q := NewQueue(2)
	q.Push(Despawn{EntityID: 1})
	q.Push(Despawn{EntityID: 2})

	assert.Panics(t, func() { q.Push(Despawn{EntityID: 3}) })
	assert.Panics(t, func() { NewQueue(0) })
}

func TestQueueTypeSwitch(t *testing.T) {
	q := NewQueue(2)
	q.Push(SpawnProjectile{OwnerID: 3, Weapon: 1})
	q.Push(Despawn{EntityID: 4})

	var spawned, despawned int
	q.Drain(func(d Deferred) {
		switch d.(type) {
		case SpawnProjectile:
			spawned++
		case Despawn:
			despawned++
		}
	})

	assert.Equal(t, 1, spawned)
	assert.Equal(t, 1, despawned)
}
