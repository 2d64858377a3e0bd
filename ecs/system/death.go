package system

import (
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
)

// DeathSystem retires entities named by this tick's DeathEvents. Entities
// with a SpawnPoint are left to the RespawnSystem.
type DeathSystem struct{}

func NewDeathSystem() *DeathSystem {
	return &DeathSystem{}
}

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	w.Events().Each(func(evt ecs.Event) {
		if evt.Kind != ecs.EventDeath {
			return
		}
		death, ok := evt.Data.(ecs.DeathEvent)
		if !ok || !w.IsAlive(death.Entity) {
			return
		}
		e := death.Entity
		if ecs.Has(w, e, component.SpawnPointComponent.Kind()) {
			return
		}

		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok || h.DestroyOnDeath {
			ecs.DestroyEntity(w, e)
			logger.For("death").WithField("entity", e.String()).Info("destroyed")
			return
		}
		w.SetActive(e, false)
		logger.For("death").WithField("entity", e.String()).Info("deactivated")
	})
}
