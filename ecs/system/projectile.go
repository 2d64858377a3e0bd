package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

// ProjectileSystem moves projectiles, resolves the first valid contact along
// each tick's path and retires projectiles on contact or expiry.
type ProjectileSystem struct {
	space ProjectileSpace
	log   *logrus.Entry
}

func NewProjectileSystem(space ProjectileSpace) *ProjectileSystem {
	return &ProjectileSystem{space: space, log: logger.For("projectile")}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		p.Age += dt
		if p.Age >= p.Lifetime {
			p.Resolved = true
			w.Emit(ecs.EventExpire, ecs.ExpireEvent{Projectile: e})
			ecs.DestroyEntity(w, e)
			return
		}

		from := t.Position
		to := from.Add(p.Velocity.Mul(dt))
		hit, ok := s.firstContact(w, e, p, from, to)
		if !ok {
			t.Position = to
			return
		}
		t.Position = hit.Point
		s.resolve(w, e, p, hit)
	})
}

func (s *ProjectileSystem) firstContact(w *ecs.World, e ecs.Entity, p *component.Projectile, from, to mgl64.Vec3) (SweepHit, bool) {
	if s.space == nil {
		return SweepHit{}, false
	}
	owner := ecs.Entity(p.Owner)
	for _, hit := range s.space.Sweep(from, to, p.Radius, p.Faction) {
		if hit.Entity == e {
			continue
		}
		if hit.Entity != 0 && hit.Entity == owner && p.IgnoresOwner() {
			continue
		}
		if tag, ok := ecs.Get(w, hit.Entity, component.FactionTagComponent.Kind()); ok && !component.CanHit(p.Faction, tag.Faction) {
			continue
		}
		return hit, true
	}
	return SweepHit{}, false
}

// resolve applies the single contact a projectile is allowed and destroys it.
func (s *ProjectileSystem) resolve(w *ecs.World, e ecs.Entity, p *component.Projectile, hit SweepHit) {
	if p.Resolved {
		return
	}
	p.Resolved = true
	owner := ecs.Entity(p.Owner)

	var res component.DamageResult
	if hit.Entity != 0 {
		res, _ = ApplyDamage(w, hit.Entity, owner, p.Damage)
		if p.ImpactForce > 0 && s.space != nil {
			if dir, ok := common.SafeNormalize(p.Velocity); ok {
				s.space.ApplyImpulse(hit.Entity, dir.Mul(p.ImpactForce), hit.Point)
			}
		}
	}

	w.Emit(ecs.EventHit, ecs.HitEvent{
		Projectile: e,
		Target:     hit.Entity,
		Point:      hit.Point,
		Damage:     res.Applied,
		Killed:     res.Killed,
	})
	s.log.WithFields(logrus.Fields{
		"projectile": e.String(),
		"target":     hit.Entity.String(),
		"damage":     res.Applied,
	}).Debug("contact")

	ecs.DestroyEntity(w, e)
}
