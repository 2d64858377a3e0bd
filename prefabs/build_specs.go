package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/fpsarena/ecs/component"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	return DecodeComponentSpecOver(raw, zero)
}

// DecodeComponentSpecOver decodes raw on top of defaults, so keys missing
// from the YAML keep their default values.
func DecodeComponentSpecOver[T any](raw any, defaults T) (T, error) {
	out := defaults
	if raw == nil {
		return out, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return defaults, err
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return defaults, err
	}
	return out, nil
}

// componentValidators check the components whose configuration can be
// rejected.
var componentValidators = map[string]func(raw any) error{
	"targeting": func(raw any) error {
		spec, err := DecodeTargetingSpec(raw)
		if err != nil {
			return err
		}
		_, err = component.NewTargeting(spec.Targeting())
		return err
	},
	"weapon": func(raw any) error {
		spec, err := DecodeComponentSpec[WeaponComponentSpec](raw)
		if err != nil {
			return err
		}
		_, err = component.NewWeapon(spec.Weapon())
		return err
	},
	"health": func(raw any) error {
		spec, err := DecodeHealthSpec(raw)
		if err != nil {
			return err
		}
		_, err = component.NewHealth(spec.Max, *spec.DestroyOnDeath)
		return err
	},
	"collider": func(raw any) error {
		spec, err := DecodeComponentSpec[ColliderComponentSpec](raw)
		if err != nil {
			return err
		}
		_, err = spec.Collider()
		return err
	},
	"faction": func(raw any) error {
		spec, err := DecodeComponentSpec[FactionComponentSpec](raw)
		if err != nil {
			return err
		}
		_, err = component.ParseFaction(spec.Faction)
		return err
	},
}

// Validate decodes and checks every component that has rules.
func (s EntityBuildSpec) Validate() error {
	if len(s.Components) == 0 {
		return fmt.Errorf("%w: %q defines no components", ErrInvalidSpec, s.Name)
	}
	names := make([]string, 0, len(s.Components))
	for name := range s.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		validate, ok := componentValidators[name]
		if !ok {
			continue
		}
		if err := validate(s.Components[name]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
	Yaw      float64  `yaml:"yaw"`
	Pitch    float64  `yaml:"pitch"`
}

type ColliderComponentSpec struct {
	Shape  string  `yaml:"shape"`
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
	Sensor bool    `yaml:"sensor"`
}

func (s ColliderComponentSpec) Collider() (component.Collider, error) {
	c := component.Collider{
		Radius: s.Radius,
		Width:  s.Width,
		Depth:  s.Depth,
		Height: s.Height,
		Sensor: s.Sensor,
	}
	switch s.Shape {
	case "", "circle":
		c.Shape = component.ColliderCircle
		if c.Radius <= 0 {
			return c, fmt.Errorf("%w: circle collider needs a positive radius", component.ErrInvalidConfig)
		}
	case "box":
		c.Shape = component.ColliderBox
		if c.Width <= 0 || c.Depth <= 0 {
			return c, fmt.Errorf("%w: box collider needs positive width and depth", component.ErrInvalidConfig)
		}
	default:
		return c, fmt.Errorf("%w: unknown collider shape %q", component.ErrInvalidConfig, s.Shape)
	}
	if c.Height <= 0 {
		return c, fmt.Errorf("%w: collider needs a positive height", component.ErrInvalidConfig)
	}
	return c, nil
}

type PhysicsBodyComponentSpec struct {
	Mass      float64 `yaml:"mass"`
	Friction  float64 `yaml:"friction"`
	Static    bool    `yaml:"static"`
	Kinematic bool    `yaml:"kinematic"`
}

type HealthComponentSpec struct {
	Max            float64 `yaml:"max"`
	DestroyOnDeath *bool   `yaml:"destroy_on_death"`
}

// DecodeHealthSpec fills in destroy_on_death, which defaults to true.
func DecodeHealthSpec(raw any) (HealthComponentSpec, error) {
	spec, err := DecodeComponentSpec[HealthComponentSpec](raw)
	if err != nil {
		return spec, err
	}
	if spec.DestroyOnDeath == nil {
		destroy := true
		spec.DestroyOnDeath = &destroy
	}
	return spec, nil
}

type TargetingComponentSpec struct {
	DetectionRange  float64  `yaml:"detection_range"`
	AttackRange     float64  `yaml:"attack_range"`
	FireInterval    float64  `yaml:"fire_interval"`
	BulletSpeed     float64  `yaml:"bullet_speed"`
	BulletDamage    float64  `yaml:"bullet_damage"`
	BulletLifetime  float64  `yaml:"bullet_lifetime"`
	BulletRadius    float64  `yaml:"bullet_radius"`
	ImpactForce     float64  `yaml:"impact_force"`
	TargetingHeight float64  `yaml:"targeting_height"`
	TurnRate        float64  `yaml:"turn_rate"`
	MoveSpeed       float64  `yaml:"move_speed"`
	LeadFactor      float64  `yaml:"lead_factor"`
	ChaseFraction   float64  `yaml:"chase_fraction"`
	FirePoint       Vec3Spec `yaml:"fire_point"`
}

// DecodeTargetingSpec decodes raw over the stock enemy settings.
func DecodeTargetingSpec(raw any) (TargetingComponentSpec, error) {
	d := component.DefaultTargeting()
	return DecodeComponentSpecOver(raw, TargetingComponentSpec{
		DetectionRange:  d.DetectionRange,
		AttackRange:     d.AttackRange,
		FireInterval:    d.FireInterval,
		BulletSpeed:     d.BulletSpeed,
		BulletDamage:    d.BulletDamage,
		BulletLifetime:  d.BulletLifetime,
		BulletRadius:    d.BulletRadius,
		ImpactForce:     d.ImpactForce,
		TargetingHeight: d.TargetingHeight,
		TurnRate:        d.TurnRate,
		MoveSpeed:       d.MoveSpeed,
		LeadFactor:      d.LeadFactor,
		ChaseFraction:   d.ChaseFraction,
		FirePoint:       Vec3SpecOf(d.FirePoint),
	})
}

func (s TargetingComponentSpec) Targeting() component.Targeting {
	return component.Targeting{
		DetectionRange:  s.DetectionRange,
		AttackRange:     s.AttackRange,
		FireInterval:    s.FireInterval,
		BulletSpeed:     s.BulletSpeed,
		BulletDamage:    s.BulletDamage,
		BulletLifetime:  s.BulletLifetime,
		BulletRadius:    s.BulletRadius,
		ImpactForce:     s.ImpactForce,
		TargetingHeight: s.TargetingHeight,
		TurnRate:        s.TurnRate,
		MoveSpeed:       s.MoveSpeed,
		LeadFactor:      s.LeadFactor,
		ChaseFraction:   s.ChaseFraction,
		FirePoint:       s.FirePoint.Vec(),
	}
}

type WeaponComponentSpec struct {
	FireInterval    float64  `yaml:"fire_interval"`
	ProjectileSpeed float64  `yaml:"projectile_speed"`
	Damage          float64  `yaml:"damage"`
	Lifetime        float64  `yaml:"lifetime"`
	Radius          float64  `yaml:"radius"`
	ImpactForce     float64  `yaml:"impact_force"`
	MagazineSize    int      `yaml:"magazine_size"`
	ReloadTime      float64  `yaml:"reload_time"`
	Muzzle          Vec3Spec `yaml:"muzzle"`
}

func (s WeaponComponentSpec) Weapon() component.Weapon {
	return component.Weapon{
		FireInterval:    s.FireInterval,
		ProjectileSpeed: s.ProjectileSpeed,
		Damage:          s.Damage,
		Lifetime:        s.Lifetime,
		Radius:          s.Radius,
		ImpactForce:     s.ImpactForce,
		MagazineSize:    s.MagazineSize,
		ReloadTime:      s.ReloadTime,
		Muzzle:          s.Muzzle.Vec(),
	}
}

type MotorComponentSpec struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
}

type FactionComponentSpec struct {
	Faction string `yaml:"faction"`
}

type PilotComponentSpec struct {
	Script string `yaml:"script"`
}
