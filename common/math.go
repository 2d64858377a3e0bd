package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis. The horizontal plane is X/Z.
var Up = mgl64.Vec3{0, 1, 0}

const epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// SafeNormalize returns v scaled to unit length, or the zero vector and false
// when v is too short to have a direction.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// YawOf returns the heading of a direction on the horizontal plane. Yaw 0
// faces +Z and grows toward +X.
func YawOf(dir mgl64.Vec3) float64 {
	return math.Atan2(dir.X(), dir.Z())
}

// YawRotation is the orientation for a heading about the world up axis.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up)
}

// Direction converts a yaw/pitch pair into a unit vector. Positive pitch
// looks up.
func Direction(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{math.Sin(yaw) * cp, math.Sin(pitch), math.Cos(yaw) * cp}
}

// WrapAngle maps an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// TurnTowards rotates current toward target by at most maxStep radians along
// the shorter arc.
func TurnTowards(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return current
	}
	delta := WrapAngle(target - current)
	if math.Abs(delta) <= maxStep {
		return WrapAngle(target)
	}
	if delta > 0 {
		return WrapAngle(current + maxStep)
	}
	return WrapAngle(current - maxStep)
}
