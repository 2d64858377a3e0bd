package ecs

import "github.com/milk9111/fpsarena/ecs/component"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, component storage, the per-tick event queue and the
// simulation time the current tick runs at.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	inactive SparseSet
	events   EventQueue

	tick uint64
	now  float64
	dt   float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It returns
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	w.inactive.Remove(e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists every live entity, active or not.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

// SetActive toggles whether e takes part in queries. Deactivated entities
// keep their components.
func (w *World) SetActive(e Entity, active bool) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	if active {
		w.inactive.Remove(e)
		return
	}
	w.inactive.Set(e, struct{}{})
}

// IsActive reports whether e is alive and not deactivated.
func (w *World) IsActive(e Entity) bool {
	return w.IsAlive(e) && !w.inactive.Has(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns active entities that have every listed component kind.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
	for _, e := range sets[smallest].denseEntities {
		if w.inactive.Has(e) {
			continue
		}
		matched := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first active entity that has kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// BeginTick stamps the simulation time for the coming tick and drops any
// events nobody drained during the previous one.
func (w *World) BeginTick(now, dt float64) {
	if w == nil {
		return
	}
	w.tick++
	w.now = now
	w.dt = dt
	w.events.flush()
}

func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit pushes an event stamped with the current tick and time.
func (w *World) Emit(kind EventKind, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Kind: kind, Tick: w.tick, Time: w.now, Data: data})
}
