package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnemyPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "enemy.yaml")
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.EnemyTagComponent.Kind()))
	targeting, ok := ecs.Get(w, e, component.TargetingComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 15.0, targeting.AttackRange)

	state, ok := ecs.Get(w, e, component.TargetingStateComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.StateIdle, state.State())

	faction, ok := ecs.Get(w, e, component.FactionTagComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.FactionEnemy, faction.Faction)

	name, ok := ecs.Get(w, e, component.NameComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "enemy", name.Value)
}

func TestBuildPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "prefabs/player.yaml")
	require.NoError(t, err)

	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, weapon.MagazineSize, weapon.Ammo)

	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.False(t, health.DestroyOnDeath)

	pilot, ok := ecs.Get(w, e, component.PilotScriptComponent.Kind())
	require.True(t, ok)
	assert.NotEmpty(t, pilot.Source)
}

func TestPlaceEntityMovesSpawnPoint(t *testing.T) {
	w := ecs.NewWorld()
	e, err := PlaceEntity(w, prefabs.PlacementSpec{
		Prefab:   "player.yaml",
		Position: prefabs.Vec3Spec{X: 3, Z: -2},
		Yaw:      1.5,
		Pilot:    "idle.tengo",
	})
	require.NoError(t, err)

	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 3.0, transform.Position.X())
	assert.Equal(t, 1.5, transform.Yaw)

	sp, _ := ecs.Get(w, e, component.SpawnPointComponent.Kind())
	assert.Equal(t, transform.Position, sp.Position)
	assert.Equal(t, 1.5, sp.Yaw)

	pilot, _ := ecs.Get(w, e, component.PilotScriptComponent.Kind())
	assert.Equal(t, "idle.tengo", pilot.Name)
}

func TestBuildEntityFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })

	cases := []struct {
		name string
		yaml string
	}{
		{"unknown_component", "name: odd\ncomponents:\n  transform: {}\n  jetpack: {}\n"},
		{"body_without_collider", "name: odd\ncomponents:\n  transform: {}\n  physics_body: {static: true}\n"},
		{"missing_script", "name: odd\ncomponents:\n  pilot: {script: nope.tengo}\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "odd.yaml"), []byte(c.yaml), 0o644))

			w := ecs.NewWorld()
			_, err := BuildEntity(w, "odd.yaml")
			require.Error(t, err)
			assert.Empty(t, ecs.Entities(w))
		})
	}
}

func TestLoadArenaToWorld(t *testing.T) {
	spec, err := prefabs.LoadArenaSpec("training")
	require.NoError(t, err)

	w := ecs.NewWorld()
	arena, err := LoadArenaToWorld(w, spec)
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, arena.Player, component.PlayerTagComponent.Kind()))
	assert.Len(t, arena.Spawns, len(spec.Spawns))
	assert.Len(t, arena.Walls, len(spec.Walls))
	assert.Len(t, arena.KillVolumes, len(spec.KillVolumes))

	for _, wall := range arena.Walls {
		body, ok := ecs.Get(w, wall, component.PhysicsBodyComponent.Kind())
		require.True(t, ok)
		assert.True(t, body.Static)
	}
	assert.Len(t, w.Query(component.EnemyTagComponent.Kind()), 2)
}
