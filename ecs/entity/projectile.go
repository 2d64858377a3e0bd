package entity

import (
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
)

// ProjectileFactory creates projectile entities from fire commands.
type ProjectileFactory struct {
	// GraceWindow overrides component.DefaultGraceWindow when positive.
	GraceWindow float64
}

func (f ProjectileFactory) SpawnProjectile(w *ecs.World, spawn component.ProjectileSpawn) ecs.Entity {
	if w == nil {
		return 0
	}
	grace := component.DefaultGraceWindow
	if f.GraceWindow > 0 {
		grace = f.GraceWindow
	}

	e := ecs.CreateEntity(w)
	dir, _ := common.SafeNormalize(spawn.Velocity)
	transform := &component.Transform{Position: spawn.Origin, Yaw: common.YawOf(dir)}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		logger.For("projectile").WithError(err).Error("add transform")
		ecs.DestroyEntity(w, e)
		return 0
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Velocity:     spawn.Velocity,
		Damage:       spawn.Damage,
		Lifetime:     spawn.Lifetime,
		Radius:       spawn.Radius,
		ImpactForce:  spawn.ImpactForce,
		Faction:      spawn.Faction,
		Owner:        spawn.Owner,
		OwnerOverlap: spawn.OwnerOverlap,
		GraceWindow:  grace,
	}); err != nil {
		logger.For("projectile").WithError(err).Error("add projectile")
		ecs.DestroyEntity(w, e)
		return 0
	}
	return e
}
