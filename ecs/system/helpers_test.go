package system_test

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/stretchr/testify/require"
)

// testingT is satisfied by *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func tickedWorld(now, dt float64) *ecs.World {
	w := ecs.NewWorld()
	w.BeginTick(now, dt)
	return w
}

func must(t testingT, err error) {
	t.Helper()
	require.NoError(t, err)
}

func addBody(t testingT, w *ecs.World, e ecs.Entity, pos mgl64.Vec3, faction component.Faction, health float64, destroy bool) {
	t.Helper()
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	must(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	must(t, ecs.Add(w, e, component.FactionTagComponent.Kind(), &component.FactionTag{Faction: faction}))
	must(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape:  component.ColliderCircle,
		Radius: 0.5,
		Height: 2,
	}))
	if health > 0 {
		h, err := component.NewHealth(health, destroy)
		must(t, err)
		must(t, ecs.Add(w, e, component.HealthComponent.Kind(), h))
	}
}

func addPlayer(t testingT, w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	addBody(t, w, e, pos, component.FactionPlayer, 100, false)
	return e
}

func addEnemy(t testingT, w *ecs.World, pos mgl64.Vec3, cfg component.Targeting) ecs.Entity {
	t.Helper()
	targeting, err := component.NewTargeting(cfg)
	must(t, err)

	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	addBody(t, w, e, pos, component.FactionEnemy, 100, true)
	must(t, ecs.Add(w, e, component.TargetingComponent.Kind(), targeting))
	must(t, ecs.Add(w, e, component.TargetingStateComponent.Kind(), component.NewTargetingState()))
	return e
}

func addTarget(t testingT, w *ecs.World, pos mgl64.Vec3, health float64, destroy bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{}))
	addBody(t, w, e, pos, component.FactionNeutral, health, destroy)
	return e
}

func eventsOf(w *ecs.World, kind ecs.EventKind) []ecs.Event {
	var out []ecs.Event
	w.Events().Each(func(evt ecs.Event) {
		if evt.Kind == kind {
			out = append(out, evt)
		}
	})
	return out
}

// countingSpawner records fire commands without creating entities.
type countingSpawner struct {
	spawns []component.ProjectileSpawn
	times  []float64
}

func (s *countingSpawner) SpawnProjectile(w *ecs.World, spawn component.ProjectileSpawn) ecs.Entity {
	s.spawns = append(s.spawns, spawn)
	s.times = append(s.times, w.Now())
	return 0
}
