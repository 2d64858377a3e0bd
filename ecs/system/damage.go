package system

import (
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

type damageableLookup func(w *ecs.World, e ecs.Entity) (component.Damageable, bool)

// damageables lists every component kind that can absorb damage, in
// priority order.
var damageables = []damageableLookup{
	func(w *ecs.World, e ecs.Entity) (component.Damageable, bool) {
		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok {
			return nil, false
		}
		return h, true
	},
}

// LookupDamageable returns the component of e that takes damage, if any.
func LookupDamageable(w *ecs.World, e ecs.Entity) (component.Damageable, bool) {
	if w == nil || !w.IsActive(e) {
		return nil, false
	}
	for _, lookup := range damageables {
		if d, ok := lookup(w, e); ok {
			return d, true
		}
	}
	return nil, false
}

// ApplyDamage hurts target and raises a DeathEvent on the killing blow. ok is
// false when target cannot take damage.
func ApplyDamage(w *ecs.World, target, source ecs.Entity, amount float64) (res component.DamageResult, ok bool) {
	d, ok := LookupDamageable(w, target)
	if !ok {
		return component.DamageResult{}, false
	}
	res = d.TakeDamage(amount)
	if res.Killed {
		w.Emit(ecs.EventDeath, ecs.DeathEvent{Entity: target, Source: source})
		logger.For("damage").WithFields(logrus.Fields{
			"entity": target.String(),
			"source": source.String(),
		}).Debug("killed")
	}
	return res, true
}
