package ecs

import "github.com/go-gl/mathgl/mgl64"

// EventKind identifies world event types.
type EventKind string

const (
	EventAlert   EventKind = "alert"
	EventFire    EventKind = "fire"
	EventHit     EventKind = "hit"
	EventExpire  EventKind = "expire"
	EventDeath   EventKind = "death"
	EventRespawn EventKind = "respawn"
	EventReload  EventKind = "reload"
)

// Event is a world event stamped with the tick it was raised in.
type Event struct {
	Kind EventKind
	Tick uint64
	Time float64
	Data any
}

// AlertEvent is raised on the edge into or out of the alerted state.
type AlertEvent struct {
	Entity  Entity
	Alerted bool
}

// FireEvent is raised for every projectile spawned by a fire command.
type FireEvent struct {
	Shooter    Entity
	Projectile Entity
	Origin     mgl64.Vec3
	Velocity   mgl64.Vec3
}

// HitEvent is raised when a projectile resolves contact. Damage is zero when
// Target cannot take damage.
type HitEvent struct {
	Projectile Entity
	Target     Entity
	Point      mgl64.Vec3
	Damage     float64
	Killed     bool
}

type ExpireEvent struct {
	Projectile Entity
}

// DeathEvent is raised exactly once per alive-to-dead transition.
type DeathEvent struct {
	Entity Entity
	Source Entity
}

type RespawnEvent struct {
	Entity Entity
	Reason string
}

type ReloadEvent struct {
	Entity    Entity
	Completed bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each visits queued events without consuming them.
func (q *EventQueue) Each(fn func(evt Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		fn(evt)
	}
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
