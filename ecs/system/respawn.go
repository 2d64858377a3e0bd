package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

const (
	RespawnReasonKillVolume = "kill_volume"
	RespawnReasonDeath      = "death"
)

// RespawnSystem sends entities with a SpawnPoint back to it when they enter
// a kill volume or die.
type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	volumes := w.Query(component.KillVolumeComponent.Kind())
	ecs.ForEach2(w, component.SpawnPointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.SpawnPoint, t *component.Transform) {
		for _, v := range volumes {
			kv, ok := ecs.Get(w, v, component.KillVolumeComponent.Kind())
			if ok && kv.Contains(t.Position) {
				Respawn(w, e, RespawnReasonKillVolume)
				return
			}
		}
	})

	w.Events().Each(func(evt ecs.Event) {
		if evt.Kind != ecs.EventDeath {
			return
		}
		death, ok := evt.Data.(ecs.DeathEvent)
		if !ok || !ecs.Has(w, death.Entity, component.SpawnPointComponent.Kind()) {
			return
		}
		Respawn(w, death.Entity, RespawnReasonDeath)
	})
}

// Respawn moves e to its spawn point at full health and stops it.
func Respawn(w *ecs.World, e ecs.Entity, reason string) bool {
	sp, ok := ecs.Get(w, e, component.SpawnPointComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	t.Position = sp.Position
	t.Yaw = sp.Yaw
	t.Pitch = 0
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Linear = mgl64.Vec3{}
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Reset()
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(toPlane(sp.Position))
		body.Body.SetVelocityVector(cp.Vector{})
	}
	w.SetActive(e, true)

	w.Emit(ecs.EventRespawn, ecs.RespawnEvent{Entity: e, Reason: reason})
	logger.For("respawn").WithFields(logrus.Fields{
		"entity": e.String(),
		"reason": reason,
	}).Info("respawned")
	return true
}
