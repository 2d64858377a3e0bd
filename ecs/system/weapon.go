package system

import (
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

// WeaponSystem fires and reloads input-driven weapons.
type WeaponSystem struct {
	spawner ProjectileSpawner
	log     *logrus.Entry
}

func NewWeaponSystem(spawner ProjectileSpawner) *WeaponSystem {
	return &WeaponSystem{spawner: spawner, log: logger.For("weapon")}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.PlayerInputComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon, input *component.PlayerInput) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			return
		}
		if weapon.FinishReload(now) {
			w.Emit(ecs.EventReload, ecs.ReloadEvent{Entity: e, Completed: true})
		}
		if input.Reload && weapon.StartReload(now) {
			w.Emit(ecs.EventReload, ecs.ReloadEvent{Entity: e, Completed: false})
			s.log.WithField("entity", e.String()).Debug("reloading")
		}
		if !input.Fire || !weapon.CanFire(now) {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		weapon.Consume(now)
		s.fire(w, e, t, weapon, input)
	})
}

func (s *WeaponSystem) fire(w *ecs.World, e ecs.Entity, t *component.Transform, weapon *component.Weapon, input *component.PlayerInput) {
	origin := t.LocalToWorld(weapon.Muzzle)
	velocity := common.Direction(input.AimYaw, input.AimPitch).Mul(weapon.ProjectileSpeed)

	faction := component.FactionPlayer
	if tag, ok := ecs.Get(w, e, component.FactionTagComponent.Kind()); ok {
		faction = tag.Faction
	}
	if s.spawner == nil {
		return
	}
	projectile := s.spawner.SpawnProjectile(w, component.ProjectileSpawn{
		Owner:        uint64(e),
		Faction:      faction,
		Origin:       origin,
		Velocity:     velocity,
		Damage:       weapon.Damage,
		Lifetime:     weapon.Lifetime,
		Radius:       weapon.Radius,
		ImpactForce:  weapon.ImpactForce,
		OwnerOverlap: PointInCollider(w, e, origin),
	})
	w.Emit(ecs.EventFire, ecs.FireEvent{Shooter: e, Projectile: projectile, Origin: origin, Velocity: velocity})
}
