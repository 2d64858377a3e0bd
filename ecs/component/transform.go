package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/common"
)

// Transform places an entity in the arena. Position is the entity's feet;
// yaw 0 faces +Z.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

func (t Transform) Rotation() mgl64.Quat {
	return common.YawRotation(t.Yaw)
}

// Forward is the horizontal facing direction.
func (t Transform) Forward() mgl64.Vec3 {
	return common.Direction(t.Yaw, 0)
}

// Aim includes pitch.
func (t Transform) Aim() mgl64.Vec3 {
	return common.Direction(t.Yaw, t.Pitch)
}

// LocalToWorld maps an offset in the entity's yaw frame to world space.
func (t Transform) LocalToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation().Rotate(local))
}

var TransformComponent = NewComponent[Transform]()

// Velocity is the linear velocity an entity moved with during the last tick.
type Velocity struct {
	Linear mgl64.Vec3
}

var VelocityComponent = NewComponent[Velocity]()
