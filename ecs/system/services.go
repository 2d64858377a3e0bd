package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
)

//go:generate go tool mockgen -destination=mocks/services.go -package=mocks github.com/milk9111/fpsarena/ecs/system RayCaster,PlayerLocator,ProjectileSpawner,ProjectileSpace

// RayHit is the first blocking surface along a ray. Entity is zero for
// geometry that belongs to no entity.
type RayHit struct {
	Entity   ecs.Entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// RayCaster answers line-of-sight queries.
type RayCaster interface {
	Raycast(from, to mgl64.Vec3, ignore ecs.Entity) (RayHit, bool)
}

// PlayerInfo is a snapshot of the player as seen by enemies.
type PlayerInfo struct {
	Entity   ecs.Entity
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// PlayerLocator finds the player enemies should hunt.
type PlayerLocator interface {
	LocatePlayer(w *ecs.World) (PlayerInfo, bool)
}

// ProjectileSpawner turns fire commands into projectile entities.
type ProjectileSpawner interface {
	SpawnProjectile(w *ecs.World, spawn component.ProjectileSpawn) ecs.Entity
}

// SweepHit is one shape crossed by a projectile sweep. Alpha is the
// fraction of the sweep travelled before contact.
type SweepHit struct {
	Entity ecs.Entity
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Alpha  float64
}

// ProjectileSpace is the part of the physics world projectiles need.
type ProjectileSpace interface {
	// Sweep returns every solid shape a projectile of faction would touch
	// moving from -> to, nearest first.
	Sweep(from, to mgl64.Vec3, radius float64, faction component.Faction) []SweepHit
	ApplyImpulse(e ecs.Entity, impulse, point mgl64.Vec3) bool
}
