package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/logger"
	"github.com/sirupsen/logrus"
)

// pilotDispatchScript is appended to every pilot script. Scripts define
// update(engine, state); state persists between ticks.
const pilotDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

// PilotSystem drives PlayerInput from tengo scripts so the arena can run
// without a human at the controls.
type PilotSystem struct {
	runtimes map[ecs.Entity]*pilotRuntime
	log      *logrus.Entry
}

type pilotRuntime struct {
	name      string
	source    string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

func NewPilotSystem() *PilotSystem {
	return &PilotSystem{
		runtimes: make(map[ecs.Entity]*pilotRuntime),
		log:      logger.For("pilot"),
	}
}

func (s *PilotSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.PilotScriptComponent.Kind(), component.PlayerInputComponent.Kind(), func(e ecs.Entity, script *component.PilotScript, input *component.PlayerInput) {
		rt, err := s.runtime(e, script)
		if err != nil {
			s.log.WithFields(logrus.Fields{"entity": e.String(), "script": script.Name}).WithError(err).Error("compile pilot script")
			return
		}
		if rt.failed {
			return
		}

		*input = component.PlayerInput{AimYaw: input.AimYaw, AimPitch: input.AimPitch}
		engine := buildPilotEngine(w, e, input)
		if err := rt.runPhase("update", engine); err != nil {
			s.fail(e, rt, err)
		}
	})
}

func (s *PilotSystem) fail(e ecs.Entity, rt *pilotRuntime, err error) {
	rt.failed = true
	s.log.WithFields(logrus.Fields{"entity": e.String(), "script": rt.name}).WithError(err).Error("pilot script stopped")
}

// runtime returns the compiled script for e, recompiling when the source
// changed since the last tick.
func (s *PilotSystem) runtime(e ecs.Entity, script *component.PilotScript) (*pilotRuntime, error) {
	src := string(script.Source)
	if rt, ok := s.runtimes[e]; ok && rt.source == src {
		return rt, nil
	}
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("pilot %q: empty script", script.Name)
	}

	compiled, err := compilePilot(src)
	if err != nil {
		return nil, fmt.Errorf("pilot %q: %w", script.Name, err)
	}
	rt := &pilotRuntime{
		name:      script.Name,
		source:    src,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func compilePilot(src string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src + "\n" + pilotDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math", "fmt", "rand"))
	return script.Compile()
}

// runPhase turns VM panics (integer division by zero and the like) into
// errors so only this pilot stops.
func (rt *pilotRuntime) runPhase(phase string, engine *tengo.ImmutableMap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pilot %q: %v", rt.name, r)
		}
	}()
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildPilotEngine(w *ecs.World, e ecs.Entity, input *component.PlayerInput) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.Now()}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.Position), nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		input.MoveX = common.Clamp(objectAsFloat(args[0]), -1, 1)
		input.MoveZ = common.Clamp(objectAsFloat(args[1]), -1, 1)
		return tengo.TrueValue, nil
	}}

	values["sprint"] = &tengo.UserFunction{Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		input.Sprint = len(args) == 0 || !args[0].IsFalsy()
		return tengo.TrueValue, nil
	}}

	values["aim"] = &tengo.UserFunction{Name: "aim", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		input.AimYaw = objectAsFloat(args[0])
		if len(args) > 1 {
			input.AimPitch = objectAsFloat(args[1])
		}
		return tengo.TrueValue, nil
	}}

	values["aim_at"] = &tengo.UserFunction{Name: "aim_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		target := mgl64.Vec3{objectAsFloat(args[0]), objectAsFloat(args[1]), objectAsFloat(args[2])}
		yaw, pitch, ok := aimAngles(w, e, target)
		if !ok {
			return tengo.FalseValue, nil
		}
		input.AimYaw, input.AimPitch = yaw, pitch
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		input.Fire = true
		return tengo.TrueValue, nil
	}}

	values["reload"] = &tengo.UserFunction{Name: "reload", Value: func(args ...tengo.Object) (tengo.Object, error) {
		input.Reload = true
		return tengo.TrueValue, nil
	}}

	values["ammo"] = &tengo.UserFunction{Name: "ammo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(weapon.Ammo)}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: h.Current}, nil
	}}

	values["nearest_enemy"] = &tengo.UserFunction{Name: "nearest_enemy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return nearestObject(w, e, component.EnemyTagComponent.Kind()), nil
	}}

	values["nearest_target"] = &tengo.UserFunction{Name: "nearest_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return nearestObject(w, e, component.TargetTagComponent.Kind()), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// aimAngles returns the yaw and pitch that point e's weapon muzzle at target.
func aimAngles(w *ecs.World, e ecs.Entity, target mgl64.Vec3) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	origin := t.Position
	if weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok {
		origin = t.LocalToWorld(weapon.Muzzle)
	}
	dir, ok := common.SafeNormalize(target.Sub(origin))
	if !ok {
		return 0, 0, false
	}
	return common.YawOf(dir), math.Asin(common.Clamp(dir.Y(), -1, 1)), true
}

func nearestObject(w *ecs.World, self ecs.Entity, tag component.AnyKind) tengo.Object {
	t, ok := ecs.Get(w, self, component.TransformComponent.Kind())
	if !ok {
		return tengo.UndefinedValue
	}
	best := ecs.Entity(0)
	bestDist := math.Inf(1)
	var bestPos mgl64.Vec3
	for _, other := range w.Query(tag, component.TransformComponent.Kind()) {
		if h, ok := ecs.Get(w, other, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			continue
		}
		ot, _ := ecs.Get(w, other, component.TransformComponent.Kind())
		if d := ot.Position.Sub(t.Position).Len(); d < bestDist {
			best, bestDist, bestPos = other, d, ot.Position
		}
	}
	if best == 0 {
		return tengo.UndefinedValue
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":        &tengo.Float{Value: bestPos.X()},
		"y":        &tengo.Float{Value: bestPos.Y()},
		"z":        &tengo.Float{Value: bestPos.Z()},
		"distance": &tengo.Float{Value: bestDist},
	}}
}

func vecObject(v mgl64.Vec3) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X()},
		&tengo.Float{Value: v.Y()},
		&tengo.Float{Value: v.Z()},
	}}
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		f, _ := tengo.ToFloat64(obj)
		return f
	}
}
