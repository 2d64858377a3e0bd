package system

import (
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
)

// TaggedPlayerLocator finds the first active, living PlayerTag entity.
type TaggedPlayerLocator struct{}

func (TaggedPlayerLocator) LocatePlayer(w *ecs.World) (PlayerInfo, bool) {
	if w == nil {
		return PlayerInfo{}, false
	}
	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return PlayerInfo{}, false
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return PlayerInfo{}, false
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
		return PlayerInfo{}, false
	}

	info := PlayerInfo{Entity: e, Position: transform.Position}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		info.Velocity = vel.Linear
	}
	return info, true
}
