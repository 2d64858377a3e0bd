package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec wraps every validation failure in this package.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func Vec3SpecOf(v mgl64.Vec3) Vec3Spec {
	return Vec3Spec{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// PlacementSpec puts a prefab into an arena.
type PlacementSpec struct {
	Prefab   string   `yaml:"prefab"`
	Position Vec3Spec `yaml:"position"`
	Yaw      float64  `yaml:"yaw"`
	// Pilot overrides the prefab's pilot script.
	Pilot string `yaml:"pilot"`
}

// WallSpec is static box geometry.
type WallSpec struct {
	Position Vec3Spec `yaml:"position"`
	Width    float64  `yaml:"width"`
	Depth    float64  `yaml:"depth"`
	Height   float64  `yaml:"height"`
}

type KillVolumeSpec struct {
	Min Vec3Spec `yaml:"min"`
	Max Vec3Spec `yaml:"max"`
}

// ArenaSpec lays out one match.
type ArenaSpec struct {
	Name        string           `yaml:"name"`
	TickRate    int              `yaml:"tick_rate"`
	Player      PlacementSpec    `yaml:"player"`
	Spawns      []PlacementSpec  `yaml:"spawns"`
	Walls       []WallSpec       `yaml:"walls"`
	KillVolumes []KillVolumeSpec `yaml:"kill_volumes"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](arenaPath(name))
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: arena %s: %w", name, err)
	}
	return &spec, nil
}

func (a ArenaSpec) Validate() error {
	var errs []error
	if a.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if a.TickRate < 0 {
		errs = append(errs, fmt.Errorf("tick_rate must not be negative, got %d", a.TickRate))
	}
	if a.Player.Prefab == "" {
		errs = append(errs, errors.New("player.prefab is required"))
	}
	for i, s := range a.Spawns {
		if s.Prefab == "" {
			errs = append(errs, fmt.Errorf("spawns[%d].prefab is required", i))
		}
	}
	for i, wall := range a.Walls {
		if wall.Width <= 0 || wall.Depth <= 0 || wall.Height <= 0 {
			errs = append(errs, fmt.Errorf("walls[%d] must have positive width, depth and height", i))
		}
	}
	for i, kv := range a.KillVolumes {
		if kv.Min.X > kv.Max.X || kv.Min.Y > kv.Max.Y || kv.Min.Z > kv.Max.Z {
			errs = append(errs, fmt.Errorf("kill_volumes[%d] min exceeds max", i))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
}

func arenaPath(name string) string {
	s := cleanPrefabPath(name)
	if !strings.HasPrefix(s, "arenas/") {
		s = "arenas/" + s
	}
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}
