package entity

import (
	"fmt"

	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/prefabs"
)

// Arena holds the handles LoadArenaToWorld created.
type Arena struct {
	Player      ecs.Entity
	Spawns      []ecs.Entity
	Walls       []ecs.Entity
	KillVolumes []ecs.Entity
}

// LoadArenaToWorld creates the arena geometry, then the player and every
// spawn placement.
func LoadArenaToWorld(w *ecs.World, arena *prefabs.ArenaSpec) (*Arena, error) {
	if w == nil || arena == nil {
		return nil, fmt.Errorf("load arena: world and arena are required")
	}

	out := &Arena{}
	for i, wall := range arena.Walls {
		e, err := NewWall(w, wall)
		if err != nil {
			return nil, fmt.Errorf("load arena %q: walls[%d]: %w", arena.Name, i, err)
		}
		out.Walls = append(out.Walls, e)
	}

	for i, kv := range arena.KillVolumes {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.KillVolumeComponent.Kind(), &component.KillVolume{
			Min: kv.Min.Vec(),
			Max: kv.Max.Vec(),
		}); err != nil {
			return nil, fmt.Errorf("load arena %q: kill_volumes[%d]: %w", arena.Name, i, err)
		}
		out.KillVolumes = append(out.KillVolumes, e)
	}

	player, err := PlaceEntity(w, arena.Player)
	if err != nil {
		return nil, fmt.Errorf("load arena %q: player: %w", arena.Name, err)
	}
	out.Player = player

	for i, spawn := range arena.Spawns {
		e, err := PlaceEntity(w, spawn)
		if err != nil {
			return nil, fmt.Errorf("load arena %q: spawns[%d]: %w", arena.Name, i, err)
		}
		out.Spawns = append(out.Spawns, e)
	}

	return out, nil
}

// NewWall creates static box geometry. Walls block line of sight and stop
// projectiles but take no damage.
func NewWall(w *ecs.World, wall prefabs.WallSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: wall.Position.Vec()}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.FactionTagComponent.Kind(), &component.FactionTag{Faction: component.FactionEnvironment}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape:  component.ColliderBox,
		Width:  wall.Width,
		Depth:  wall.Depth,
		Height: wall.Height,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Static: true}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
