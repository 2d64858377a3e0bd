package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"enemy_tag":    addEnemyTag,
	"target_tag":   addTargetTag,
	"faction":      addFaction,
	"transform":    addTransform,
	"velocity":     addVelocity,
	"collider":     addCollider,
	"physics_body": addPhysicsBody,
	"health":       addHealth,
	"targeting":    addTargeting,
	"weapon":       addWeapon,
	"motor":        addMotor,
	"player_input": addPlayerInput,
	"spawn_point":  addSpawnPoint,
	"pilot":        addPilot,
}

// spawn_point copies the transform, so it must come after it.
var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"target_tag",
	"faction",
	"transform",
	"velocity",
	"collider",
	"physics_body",
	"health",
	"targeting",
	"weapon",
	"motor",
	"player_input",
	"spawn_point",
	"pilot",
}

// BuildEntity creates an entity from a prefab. On error nothing is left in
// the world.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
		}
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// PlaceEntity builds placement.Prefab and moves it to the placement. The
// spawn point, if any, follows the placement too.
func PlaceEntity(w *ecs.World, placement prefabs.PlacementSpec) (ecs.Entity, error) {
	e, err := BuildEntity(w, placement.Prefab)
	if err != nil {
		return 0, err
	}

	if err := SetEntityTransform(w, e, placement.Position, placement.Yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("place %q: %w", placement.Prefab, err)
	}
	if sp, ok := ecs.Get(w, e, component.SpawnPointComponent.Kind()); ok {
		sp.Position = placement.Position.Vec()
		sp.Yaw = placement.Yaw
	}
	if input, ok := ecs.Get(w, e, component.PlayerInputComponent.Kind()); ok {
		input.AimYaw = placement.Yaw
	}
	if placement.Pilot != "" {
		if err := addPilot(w, e, map[string]any{"script": placement.Pilot}, &buildContext{PrefabPath: placement.Prefab}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("place %q: pilot: %w", placement.Prefab, err)
		}
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, position prefabs.Vec3Spec, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = position.Vec()
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addTargetTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{})
}

func addFaction(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FactionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode faction spec: %w", err)
	}
	faction, err := component.ParseFaction(spec.Faction)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FactionTagComponent.Kind(), &component.FactionTag{Faction: faction})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec(),
		Yaw:      spec.Yaw,
		Pitch:    spec.Pitch,
	})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	collider, err := spec.Collider()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &collider)
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if !ecs.Has(w, e, component.ColliderComponent.Kind()) {
		return fmt.Errorf("physics_body requires a collider on the same entity")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mass:      spec.Mass,
		Friction:  spec.Friction,
		Static:    spec.Static,
		Kinematic: spec.Kinematic,
	})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeHealthSpec(raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	health, err := component.NewHealth(spec.Max, *spec.DestroyOnDeath)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), health)
}

func addTargeting(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeTargetingSpec(raw)
	if err != nil {
		return fmt.Errorf("decode targeting spec: %w", err)
	}
	targeting, err := component.NewTargeting(spec.Targeting())
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TargetingComponent.Kind(), targeting); err != nil {
		return err
	}
	return ecs.Add(w, e, component.TargetingStateComponent.Kind(), component.NewTargetingState())
}

func addWeapon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode weapon spec: %w", err)
	}
	weapon, err := component.NewWeapon(spec.Weapon())
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.WeaponComponent.Kind(), weapon)
}

func addMotor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MotorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode motor spec: %w", err)
	}
	if spec.WalkSpeed < 0 || spec.SprintSpeed < 0 {
		return fmt.Errorf("%w: motor speeds must not be negative", component.ErrInvalidConfig)
	}
	return ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{
		WalkSpeed:   spec.WalkSpeed,
		SprintSpeed: spec.SprintSpeed,
	})
}

func addPlayerInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	input := &component.PlayerInput{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		input.AimYaw = t.Yaw
		input.AimPitch = t.Pitch
	}
	return ecs.Add(w, e, component.PlayerInputComponent.Kind(), input)
}

func addSpawnPoint(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	sp := &component.SpawnPoint{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		sp.Position = t.Position
		sp.Yaw = t.Yaw
	}
	return ecs.Add(w, e, component.SpawnPointComponent.Kind(), sp)
}

func addPilot(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PilotComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pilot spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("pilot requires a script")
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return fmt.Errorf("load pilot script %q: %w", spec.Script, err)
	}
	return ecs.Add(w, e, component.PilotScriptComponent.Kind(), &component.PilotScript{
		Name:   spec.Script,
		Source: src,
	})
}
