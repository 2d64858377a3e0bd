package component

import "github.com/go-gl/mathgl/mgl64"

// DefaultGraceWindow is how long a projectile ignores the shooter that spawned
// inside its own collider.
const DefaultGraceWindow = 0.1

// Projectile travels in a straight line until it touches something or its
// lifetime runs out. Its position lives on the entity's Transform.
type Projectile struct {
	Velocity    mgl64.Vec3
	Damage      float64
	Lifetime    float64
	Age         float64
	Radius      float64
	ImpactForce float64
	Faction     Faction
	// Owner is the shooter's entity id.
	Owner uint64
	// OwnerOverlap is set when the spawn point was inside the owner's
	// collider; the owner is then ignored for GraceWindow seconds.
	OwnerOverlap bool
	GraceWindow  float64
	// Resolved latches once the projectile has hit or expired. The entity is
	// destroyed in the same update, so no later tick sees it set.
	Resolved bool
}

// IgnoresOwner reports whether contact with the owner is still suppressed.
func (p Projectile) IgnoresOwner() bool {
	return p.OwnerOverlap && p.Age < p.GraceWindow
}

var ProjectileComponent = NewComponent[Projectile]()

// ProjectileSpawn is a fire command: everything needed to create a
// projectile entity.
type ProjectileSpawn struct {
	Owner        uint64
	Faction      Faction
	Origin       mgl64.Vec3
	Velocity     mgl64.Vec3
	Damage       float64
	Lifetime     float64
	Radius       float64
	ImpactForce  float64
	OwnerOverlap bool
}
