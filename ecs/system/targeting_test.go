package system_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/ecs/system"
	"github.com/milk9111/fpsarena/ecs/system/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

func targetingState(t testingT, w *ecs.World, e ecs.Entity) *component.TargetingState {
	t.Helper()
	st, ok := ecs.Get(w, e, component.TargetingStateComponent.Kind())
	require.True(t, ok)
	return st
}

func TestEnemyAtTenUnitsAlertsAndFiresOnCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	rays := mocks.NewMockRayCaster(ctrl)
	spawner := mocks.NewMockProjectileSpawner(ctrl)

	w := tickedWorld(0, 1.0/60)
	addPlayer(t, w, mgl64.Vec3{0, 0, 10})
	enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())

	rays.EXPECT().Raycast(gomock.Any(), gomock.Any(), enemy).Return(system.RayHit{}, false).AnyTimes()

	var shots []component.ProjectileSpawn
	var shotTimes []float64
	spawner.EXPECT().SpawnProjectile(w, gomock.Any()).DoAndReturn(func(w *ecs.World, spawn component.ProjectileSpawn) ecs.Entity {
		shots = append(shots, spawn)
		shotTimes = append(shotTimes, w.Now())
		return 0
	}).Times(2)

	sys := system.NewTargetingSystem(rays, nil, spawner)
	sys.Update(w)

	st := targetingState(t, w, enemy)
	assert.True(t, st.Alerted())
	assert.Equal(t, component.StateAttacking, st.State())
	assert.True(t, st.HasLineOfSight)
	assert.Equal(t, 1.0, st.NextFireTime)

	alerts := eventsOf(w, ecs.EventAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, ecs.AlertEvent{Entity: enemy, Alerted: true}, alerts[0].Data)
	require.Len(t, eventsOf(w, ecs.EventFire), 1)

	for _, now := range []float64{0.5, 0.999, 1.0} {
		w.BeginTick(now, 1.0/60)
		sys.Update(w)
		assert.Empty(t, eventsOf(w, ecs.EventAlert), "alert is raised on the edge only")
	}

	require.Len(t, shots, 2)
	assert.Equal(t, []float64{0, 1.0}, shotTimes)
	assert.Equal(t, 2.0, st.NextFireTime)

	shot := shots[0]
	assert.Equal(t, uint64(enemy), shot.Owner)
	assert.Equal(t, component.FactionEnemy, shot.Faction)
	assert.Equal(t, 10.0, shot.Damage)
	assert.InDelta(t, 20.0, shot.Velocity.Len(), 1e-9)
	assert.Greater(t, shot.Velocity.Z(), 0.0)
}

func TestOutOfDetectionRangeClearsAlert(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		far := rapid.Float64Range(20.001, 500).Draw(rt, "far")
		angle := rapid.Float64Range(-math.Pi, math.Pi).Draw(rt, "angle")

		w := tickedWorld(0, 0.1)
		player := addPlayer(rt, w, mgl64.Vec3{0, 0, 5})
		enemy := addEnemy(rt, w, mgl64.Vec3{}, component.DefaultTargeting())
		sys := system.NewTargetingSystem(nil, nil, &countingSpawner{})

		sys.Update(w)
		st := targetingState(rt, w, enemy)
		require.True(rt, st.Alerted())

		pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
		pt.Position = mgl64.Vec3{math.Sin(angle) * far, 0, math.Cos(angle) * far}
		w.BeginTick(0.1, 0.1)
		sys.Update(w)

		require.False(rt, st.Alerted())
		require.Equal(rt, component.StateIdle, st.State())
		alerts := eventsOf(w, ecs.EventAlert)
		require.Len(rt, alerts, 1)
		require.Equal(rt, ecs.AlertEvent{Entity: enemy, Alerted: false}, alerts[0].Data)
	})
}

func TestFireCooldownIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		interval := rapid.Float64Range(0.1, 3).Draw(rt, "interval")
		steps := rapid.SliceOfN(rapid.Float64Range(0.01, 0.5), 1, 60).Draw(rt, "steps")

		cfg := component.DefaultTargeting()
		cfg.FireInterval = interval

		w := tickedWorld(0, steps[0])
		addPlayer(rt, w, mgl64.Vec3{0, 0, 10})
		enemy := addEnemy(rt, w, mgl64.Vec3{}, cfg)
		spawner := &countingSpawner{}
		sys := system.NewTargetingSystem(nil, nil, spawner)
		st := targetingState(rt, w, enemy)

		now := 0.0
		for i, dt := range steps {
			if i > 0 {
				now += dt
				w.BeginTick(now, dt)
			}
			before := len(spawner.times)
			sys.Update(w)
			if len(spawner.times) == before {
				require.Less(rt, now, st.NextFireTime, "a ready weapon must fire")
			} else {
				require.Equal(rt, now+interval, st.NextFireTime)
			}
		}

		require.NotEmpty(rt, spawner.times)
		require.Equal(rt, 0.0, spawner.times[0])
		for i := 1; i < len(spawner.times); i++ {
			require.GreaterOrEqual(rt, spawner.times[i]-spawner.times[i-1], interval-1e-9)
		}
	})
}

func TestNoPlayerStaysIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	locator := mocks.NewMockPlayerLocator(ctrl)
	spawner := mocks.NewMockProjectileSpawner(ctrl)

	w := tickedWorld(0, 0.1)
	enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())

	gomock.InOrder(
		locator.EXPECT().LocatePlayer(w).Return(system.PlayerInfo{Position: mgl64.Vec3{0, 0, 18}}, true),
		locator.EXPECT().LocatePlayer(w).Return(system.PlayerInfo{}, false).Times(2),
	)

	sys := system.NewTargetingSystem(nil, locator, spawner)
	sys.Update(w)
	st := targetingState(t, w, enemy)
	require.Equal(t, component.StateAlerted, st.State())

	for i := 1; i <= 2; i++ {
		w.BeginTick(float64(i)*0.1, 0.1)
		sys.Update(w)
		assert.Equal(t, component.StateIdle, st.State())
		assert.True(t, st.NoPlayerWarned)
	}
}

func TestLineOfSight(t *testing.T) {
	cases := []struct {
		name    string
		hit     func(player, wall ecs.Entity) (system.RayHit, bool)
		visible bool
	}{
		{"clear", func(_, _ ecs.Entity) (system.RayHit, bool) { return system.RayHit{}, false }, true},
		{"player_first", func(player, _ ecs.Entity) (system.RayHit, bool) { return system.RayHit{Entity: player}, true }, true},
		{"wall_first", func(_, wall ecs.Entity) (system.RayHit, bool) { return system.RayHit{Entity: wall}, true }, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rays := mocks.NewMockRayCaster(ctrl)
			spawner := &countingSpawner{}

			w := tickedWorld(0, 0.1)
			player := addPlayer(t, w, mgl64.Vec3{0, 0, 10})
			wall := ecs.CreateEntity(w)
			enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())

			hit, blocked := c.hit(player, wall)
			rays.EXPECT().Raycast(mgl64.Vec3{0, 0.5, 0.5}, mgl64.Vec3{0, 1.5, 10}, enemy).Return(hit, blocked)

			system.NewTargetingSystem(rays, nil, spawner).Update(w)

			st := targetingState(t, w, enemy)
			assert.Equal(t, c.visible, st.HasLineOfSight)
			assert.Equal(t, c.visible, st.Alerted())
			if c.visible {
				assert.Len(t, spawner.spawns, 1)
			} else {
				assert.Empty(t, spawner.spawns)
			}
		})
	}
}

func TestEnemyTurnsAndChases(t *testing.T) {
	w := tickedWorld(0, 0.1)
	addPlayer(t, w, mgl64.Vec3{14, 0, 0})
	enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())

	system.NewTargetingSystem(nil, nil, &countingSpawner{}).Update(w)

	tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
	assert.InDelta(t, 0.5, tr.Yaw, 1e-9, "turn is limited to turn_rate * dt")
	assert.InDelta(t, 0.3, tr.Position.X(), 1e-9)

	vel, _ := ecs.Get(w, enemy, component.VelocityComponent.Kind())
	assert.InDelta(t, 3.0, vel.Linear.X(), 1e-9)
}

func TestEnemyHoldsInsideChaseDistance(t *testing.T) {
	w := tickedWorld(0, 0.1)
	addPlayer(t, w, mgl64.Vec3{0, 0, 8})
	enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())

	system.NewTargetingSystem(nil, nil, &countingSpawner{}).Update(w)

	tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{}, tr.Position)
}

func TestDeadEnemyDoesNothing(t *testing.T) {
	w := tickedWorld(0, 0.1)
	addPlayer(t, w, mgl64.Vec3{0, 0, 10})
	enemy := addEnemy(t, w, mgl64.Vec3{}, component.DefaultTargeting())
	h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	h.TakeDamage(h.Max)

	spawner := &countingSpawner{}
	system.NewTargetingSystem(nil, nil, spawner).Update(w)

	assert.Empty(t, spawner.spawns)
	assert.Equal(t, component.StateIdle, targetingState(t, w, enemy).State())
}

func TestAimVelocityLeadsMovingTargets(t *testing.T) {
	origin := mgl64.Vec3{}
	anchor := mgl64.Vec3{0, 0, 20}

	still := system.AimVelocity(origin, anchor, mgl64.Vec3{}, 20, 0.5)
	assert.True(t, still.ApproxEqualThreshold(mgl64.Vec3{0, 0, 20}, 1e-9))

	moving := system.AimVelocity(origin, anchor, mgl64.Vec3{5, 0, 0}, 20, 0.5)
	want := mgl64.Vec3{2.5, 0, 20}.Normalize().Mul(20)
	assert.True(t, moving.ApproxEqualThreshold(want, 1e-9), "got %v want %v", moving, want)

	assert.Equal(t, mgl64.Vec3{}, system.AimVelocity(origin, origin, mgl64.Vec3{}, 20, 0.5))
}
