package system_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/ecs/entity"
	"github.com/milk9111/fpsarena/ecs/system"
	"github.com/milk9111/fpsarena/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addWall(t *testing.T, w *ecs.World, z float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewWall(w, prefabs.WallSpec{
		Position: prefabs.Vec3Spec{Z: z},
		Width:    4,
		Depth:    1,
		Height:   3,
	})
	require.NoError(t, err)
	return e
}

func withBody(t *testing.T, w *ecs.World, e ecs.Entity, body component.PhysicsBody) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body))
}

func TestRaycastStopsAtWall(t *testing.T) {
	w := tickedWorld(0, 0.1)
	wall := addWall(t, w, 5)
	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	hit, ok := pw.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}, 0)
	require.True(t, ok)
	assert.Equal(t, wall, hit.Entity)
	assert.InDelta(t, 4.5, hit.Point.Z(), 1e-6)
	assert.InDelta(t, 4.5, hit.Distance, 1e-6)

	_, ok = pw.Raycast(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, 4, 10}, 0)
	assert.False(t, ok, "rays above the wall pass over it")

	_, ok = pw.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}, wall)
	assert.False(t, ok, "ignored entity never blocks")
}

func TestRaycastEntersFromAbove(t *testing.T) {
	w := tickedWorld(0, 0.1)
	addWall(t, w, 5)
	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	hit, ok := pw.Raycast(mgl64.Vec3{0, 6, 0}, mgl64.Vec3{0, 0, 10}, 0)
	require.True(t, ok)
	assert.InDelta(t, 3.0, hit.Point.Y(), 1e-6)
	assert.InDelta(t, 5.0, hit.Point.Z(), 1e-6)
}

func TestSweepOrdersHitsAndSkipsOwnFaction(t *testing.T) {
	w := tickedWorld(0, 0.1)
	ally := addEnemy(t, w, mgl64.Vec3{0, 0, 2}, component.DefaultTargeting())
	withBody(t, w, ally, component.PhysicsBody{Kinematic: true})
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 4})
	withBody(t, w, player, component.PhysicsBody{Kinematic: true})
	wall := addWall(t, w, 8)

	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	hits := pw.Sweep(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}, 0.1, component.FactionEnemy)
	require.Len(t, hits, 2)
	assert.Equal(t, player, hits[0].Entity)
	assert.Equal(t, wall, hits[1].Entity)
	assert.Less(t, hits[0].Alpha, hits[1].Alpha)

	neutral := pw.Sweep(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}, 0.1, component.FactionNeutral)
	require.Len(t, neutral, 3)
	assert.Equal(t, ally, neutral[0].Entity)
}

func TestImpulseMovesDynamicBodiesOnly(t *testing.T) {
	w := tickedWorld(0, 0.1)
	crate := addTarget(t, w, mgl64.Vec3{0, 0, 5}, 100, true)
	withBody(t, w, crate, component.PhysicsBody{Mass: 5})
	wall := addWall(t, w, -5)

	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	assert.False(t, pw.ApplyImpulse(wall, mgl64.Vec3{0, 0, 30}, mgl64.Vec3{0, 1, -5}))
	require.True(t, pw.ApplyImpulse(crate, mgl64.Vec3{0, 0, 30}, mgl64.Vec3{0, 1, 4.5}))

	w.BeginTick(0.1, 0.1)
	pw.Update(w)

	tr, _ := ecs.Get(w, crate, component.TransformComponent.Kind())
	assert.Greater(t, tr.Position.Z(), 5.0)
	assert.InDelta(t, 0.0, tr.Position.X(), 1e-6)
	vel, _ := ecs.Get(w, crate, component.VelocityComponent.Kind())
	assert.Greater(t, vel.Linear.Z(), 0.0)
}

func TestSyncDropsRemovedAndInactiveBodies(t *testing.T) {
	w := tickedWorld(0, 0.1)
	near := addWall(t, w, 3)
	far := addWall(t, w, 6)

	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	from, to := mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}
	hit, _ := pw.Raycast(from, to, 0)
	require.Equal(t, near, hit.Entity)

	w.SetActive(near, false)
	pw.Sync(w)
	hit, _ = pw.Raycast(from, to, 0)
	require.Equal(t, far, hit.Entity)

	ecs.DestroyEntity(w, far)
	pw.Sync(w)
	_, ok := pw.Raycast(from, to, 0)
	assert.False(t, ok)

	w.SetActive(near, true)
	pw.Sync(w)
	hit, _ = pw.Raycast(from, to, 0)
	assert.Equal(t, near, hit.Entity)
}

func TestKinematicBodiesFollowTransforms(t *testing.T) {
	w := tickedWorld(0, 0.1)
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 5})
	withBody(t, w, player, component.PhysicsBody{Kinematic: true})

	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{3, 0, 5}
	pw.Sync(w)

	hit, ok := pw.Raycast(mgl64.Vec3{3, 1, 0}, mgl64.Vec3{3, 1, 10}, 0)
	require.True(t, ok)
	assert.Equal(t, player, hit.Entity)

	_, ok = pw.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 10}, 0)
	assert.False(t, ok)
}

func TestZeroLengthSweepFindsOverlappedCollider(t *testing.T) {
	w := tickedWorld(0, 0.1)
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 5})
	withBody(t, w, player, component.PhysicsBody{Kinematic: true})

	pw := system.NewPhysicsWorld()
	pw.Sync(w)

	at := mgl64.Vec3{0.3, 1, 5}
	hits := pw.Sweep(at, at, 0.1, component.FactionEnemy)
	require.Len(t, hits, 1)
	assert.Equal(t, player, hits[0].Entity)
	assert.Equal(t, 0.0, hits[0].Alpha)

	outside := mgl64.Vec3{2, 1, 5}
	assert.Empty(t, pw.Sweep(outside, outside, 0.1, component.FactionEnemy))
}

func TestKinematicMoveIsVisibleAfterUpdate(t *testing.T) {
	w := tickedWorld(0, 0.1)
	player := addPlayer(t, w, mgl64.Vec3{0, 0, 5})
	withBody(t, w, player, component.PhysicsBody{Kinematic: true})

	pw := system.NewPhysicsWorld()
	pw.Update(w)

	for i, x := range []float64{1, 2, 3} {
		tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
		tr.Position = mgl64.Vec3{x, 0, 5}
		w.BeginTick(float64(i+1)*0.1, 0.1)
		pw.Update(w)

		hits := pw.Sweep(mgl64.Vec3{x, 1, 0}, mgl64.Vec3{x, 1, 10}, 0, component.FactionEnemy)
		require.Len(t, hits, 1, "x=%v", x)
		assert.Equal(t, player, hits[0].Entity)
	}
}
