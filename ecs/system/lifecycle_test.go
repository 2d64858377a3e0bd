package system_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDamage(t *testing.T) {
	w := tickedWorld(0, 0.1)
	target := addTarget(t, w, mgl64.Vec3{}, 20, true)
	wall := ecs.CreateEntity(w)

	res, ok := system.ApplyDamage(w, target, wall, 5)
	require.True(t, ok)
	assert.Equal(t, component.DamageResult{Applied: 5}, res)
	assert.Empty(t, eventsOf(w, ecs.EventDeath))

	_, ok = system.ApplyDamage(w, wall, target, 5)
	assert.False(t, ok, "entities without health cannot be damaged")

	res, _ = system.ApplyDamage(w, target, wall, 50)
	assert.True(t, res.Killed)
	deaths := eventsOf(w, ecs.EventDeath)
	require.Len(t, deaths, 1)
	assert.Equal(t, ecs.DeathEvent{Entity: target, Source: wall}, deaths[0].Data)

	w.SetActive(target, false)
	_, ok = system.LookupDamageable(w, target)
	assert.False(t, ok, "inactive entities are not damageable")
}

func TestDeathSystem(t *testing.T) {
	cases := []struct {
		name      string
		destroy   bool
		wantAlive bool
	}{
		{"destroy_on_death", true, false},
		{"deactivate", false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := tickedWorld(0, 0.1)
			target := addTarget(t, w, mgl64.Vec3{}, 10, c.destroy)
			system.ApplyDamage(w, target, 0, 10)

			system.NewDeathSystem().Update(w)

			assert.Equal(t, c.wantAlive, w.IsAlive(target))
			assert.False(t, w.IsActive(target))
		})
	}
}

func TestDeadTargetResets(t *testing.T) {
	w := tickedWorld(0, 0.1)
	target := addTarget(t, w, mgl64.Vec3{}, 10, false)
	system.ApplyDamage(w, target, 0, 10)
	system.NewDeathSystem().Update(w)
	require.False(t, w.IsActive(target))

	h, _ := ecs.Get(w, target, component.HealthComponent.Kind())
	h.Reset()
	w.SetActive(target, true)

	res, ok := system.ApplyDamage(w, target, 0, 4)
	require.True(t, ok)
	assert.Equal(t, 4.0, res.Applied)
	assert.Equal(t, 6.0, h.Current)
}

func addRespawnable(t *testing.T, w *ecs.World, spawn mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := addPlayer(t, w, spawn)
	must(t, ecs.Add(w, e, component.SpawnPointComponent.Kind(), &component.SpawnPoint{Position: spawn, Yaw: 1}))
	return e
}

func TestRespawnAfterDeath(t *testing.T) {
	w := tickedWorld(0, 0.1)
	player := addRespawnable(t, w, mgl64.Vec3{1, 0, 1})
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{9, 0, 9}

	system.ApplyDamage(w, player, 0, 500)
	system.NewRespawnSystem().Update(w)
	system.NewDeathSystem().Update(w)

	require.True(t, w.IsAlive(player))
	assert.True(t, w.IsActive(player))
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, tr.Position)
	assert.Equal(t, 1.0, tr.Yaw)

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, h.Max, h.Current)
	assert.True(t, h.IsAlive())

	respawns := eventsOf(w, ecs.EventRespawn)
	require.Len(t, respawns, 1)
	assert.Equal(t, ecs.RespawnEvent{Entity: player, Reason: system.RespawnReasonDeath}, respawns[0].Data)
}

func TestKillVolumeRespawns(t *testing.T) {
	w := tickedWorld(0, 0.1)
	player := addRespawnable(t, w, mgl64.Vec3{})
	volume := ecs.CreateEntity(w)
	must(t, ecs.Add(w, volume, component.KillVolumeComponent.Kind(), &component.KillVolume{
		Min: mgl64.Vec3{20, -1, -4},
		Max: mgl64.Vec3{26, 1, 4},
	}))

	sys := system.NewRespawnSystem()
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	tr.Position = mgl64.Vec3{19, 0, 0}
	sys.Update(w)
	assert.Empty(t, eventsOf(w, ecs.EventRespawn))

	tr.Position = mgl64.Vec3{21, 0, 0}
	sys.Update(w)
	assert.Equal(t, mgl64.Vec3{}, tr.Position)
	respawns := eventsOf(w, ecs.EventRespawn)
	require.Len(t, respawns, 1)
	assert.Equal(t, system.RespawnReasonKillVolume, respawns[0].Data.(ecs.RespawnEvent).Reason)
}

func TestTaggedPlayerLocator(t *testing.T) {
	w := tickedWorld(0, 0.1)
	_, ok := system.TaggedPlayerLocator{}.LocatePlayer(w)
	assert.False(t, ok)

	player := addPlayer(t, w, mgl64.Vec3{1, 2, 3})
	vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
	vel.Linear = mgl64.Vec3{4, 0, 0}

	info, ok := system.TaggedPlayerLocator{}.LocatePlayer(w)
	require.True(t, ok)
	assert.Equal(t, system.PlayerInfo{Entity: player, Position: mgl64.Vec3{1, 2, 3}, Velocity: mgl64.Vec3{4, 0, 0}}, info)

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	h.TakeDamage(h.Max)
	_, ok = system.TaggedPlayerLocator{}.LocatePlayer(w)
	assert.False(t, ok, "dead players are not hunted")
}
