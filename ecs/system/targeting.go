package system

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

// TargetingSystem runs the enemy combat loop: detect the player, check line
// of sight, turn, fire on cooldown and close distance.
type TargetingSystem struct {
	rays    RayCaster
	player  PlayerLocator
	spawner ProjectileSpawner
	log     *logrus.Entry
}

func NewTargetingSystem(rays RayCaster, player PlayerLocator, spawner ProjectileSpawner) *TargetingSystem {
	if player == nil {
		player = TaggedPlayerLocator{}
	}
	return &TargetingSystem{
		rays:    rays,
		player:  player,
		spawner: spawner,
		log:     logger.For("targeting"),
	}
}

func (s *TargetingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, found := s.player.LocatePlayer(w)

	ecs.ForEach2(w, component.TargetingComponent.Kind(), component.TargetingStateComponent.Kind(), func(e ecs.Entity, cfg *component.Targeting, st *component.TargetingState) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		if !found {
			if !st.NoPlayerWarned {
				s.log.WithField("entity", e.String()).Warn("no player to target; staying idle")
				st.NoPlayerWarned = true
			}
			st.HasLineOfSight = false
			s.stand(w, e)
			s.lose(w, e, st)
			return
		}
		st.NoPlayerWarned = false
		s.updateAgent(w, e, transform, cfg, st, player)
	})
}

func (s *TargetingSystem) updateAgent(w *ecs.World, e ecs.Entity, transform *component.Transform, cfg *component.Targeting, st *component.TargetingState, player PlayerInfo) {
	ctx := context.Background()

	dist := player.Position.Sub(transform.Position).Len()
	st.Distance = dist
	if dist > cfg.DetectionRange {
		st.HasLineOfSight = false
		s.stand(w, e)
		s.lose(w, e, st)
		return
	}

	anchor := player.Position.Add(common.Up.Mul(cfg.TargetingHeight))
	firePoint := transform.LocalToWorld(cfg.FirePoint)
	st.HasLineOfSight = s.canSee(firePoint, anchor, e, player.Entity)
	if !st.HasLineOfSight {
		s.stand(w, e)
		s.lose(w, e, st)
		return
	}

	if st.Fire(ctx, component.TransitionAcquire) {
		w.Emit(ecs.EventAlert, ecs.AlertEvent{Entity: e, Alerted: true})
		s.log.WithFields(logrus.Fields{"entity": e.String(), "distance": dist}).Debug("player acquired")
	}

	dt := w.DeltaTime()
	toPlayer := common.Horizontal(player.Position.Sub(transform.Position))
	if dir, ok := common.SafeNormalize(toPlayer); ok {
		transform.Yaw = common.TurnTowards(transform.Yaw, common.YawOf(dir), cfg.TurnRate*dt)
	}

	if dist <= cfg.AttackRange {
		st.Fire(ctx, component.TransitionEngage)
		if now := w.Now(); now >= st.NextFireTime {
			s.fire(w, e, transform, cfg, anchor, player.Velocity)
			st.ScheduleNextFire(now + cfg.FireInterval)
		}
	} else {
		st.Fire(ctx, component.TransitionDisengage)
	}

	if dist > cfg.ChaseFraction*cfg.AttackRange && cfg.MoveSpeed > 0 {
		s.chase(w, e, transform, cfg, toPlayer, dt)
	} else {
		s.stand(w, e)
	}
}

// canSee treats a clear ray, or a ray whose first blocker is the player, as
// visible.
func (s *TargetingSystem) canSee(from, to mgl64.Vec3, self, player ecs.Entity) bool {
	if s.rays == nil {
		return true
	}
	hit, blocked := s.rays.Raycast(from, to, self)
	if !blocked {
		return true
	}
	return player != 0 && hit.Entity == player
}

func (s *TargetingSystem) lose(w *ecs.World, e ecs.Entity, st *component.TargetingState) {
	if st.Fire(context.Background(), component.TransitionLose) {
		w.Emit(ecs.EventAlert, ecs.AlertEvent{Entity: e, Alerted: false})
		s.log.WithField("entity", e.String()).Debug("player lost")
	}
}

func (s *TargetingSystem) fire(w *ecs.World, e ecs.Entity, transform *component.Transform, cfg *component.Targeting, anchor, playerVel mgl64.Vec3) {
	origin := transform.LocalToWorld(cfg.FirePoint)
	velocity := AimVelocity(origin, anchor, playerVel, cfg.BulletSpeed, cfg.LeadFactor)

	faction := component.FactionEnemy
	if tag, ok := ecs.Get(w, e, component.FactionTagComponent.Kind()); ok {
		faction = tag.Faction
	}
	spawn := component.ProjectileSpawn{
		Owner:        uint64(e),
		Faction:      faction,
		Origin:       origin,
		Velocity:     velocity,
		Damage:       cfg.BulletDamage,
		Lifetime:     cfg.BulletLifetime,
		Radius:       cfg.BulletRadius,
		ImpactForce:  cfg.ImpactForce,
		OwnerOverlap: PointInCollider(w, e, origin),
	}

	if s.spawner == nil {
		s.log.WithField("entity", e.String()).Debug("fire command dropped: no projectile spawner")
		return
	}
	projectile := s.spawner.SpawnProjectile(w, spawn)
	w.Emit(ecs.EventFire, ecs.FireEvent{Shooter: e, Projectile: projectile, Origin: origin, Velocity: velocity})
}

func (s *TargetingSystem) chase(w *ecs.World, e ecs.Entity, transform *component.Transform, cfg *component.Targeting, toPlayer mgl64.Vec3, dt float64) {
	dir, ok := common.SafeNormalize(toPlayer)
	if !ok {
		s.stand(w, e)
		return
	}
	step := math.Min(cfg.MoveSpeed*dt, toPlayer.Len())
	transform.Position = transform.Position.Add(dir.Mul(step))
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Linear = dir.Mul(cfg.MoveSpeed)
	}
}

func (s *TargetingSystem) stand(w *ecs.World, e ecs.Entity) {
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Linear = mgl64.Vec3{}
	}
}

// AimVelocity leads a moving target: it aims at anchor shifted by the
// target's velocity over a fraction of the projectile's flight time.
func AimVelocity(origin, anchor, targetVel mgl64.Vec3, speed, lead float64) mgl64.Vec3 {
	flight := anchor.Sub(origin).Len() / speed
	predicted := anchor.Add(targetVel.Mul(flight * lead))
	dir, ok := common.SafeNormalize(predicted.Sub(origin))
	if !ok {
		return mgl64.Vec3{}
	}
	return dir.Mul(speed)
}

// PointInCollider reports whether p lies inside e's collider volume.
func PointInCollider(w *ecs.World, e ecs.Entity, p mgl64.Vec3) bool {
	collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return false
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	if !collider.SpansHeight(transform.Position.Y(), p.Y()) {
		return false
	}
	d := common.Horizontal(p.Sub(transform.Position))
	switch collider.Shape {
	case component.ColliderBox:
		return math.Abs(d.X()) <= collider.Width/2 && math.Abs(d.Z()) <= collider.Depth/2
	default:
		return d.Len() <= collider.Radius
	}
}
