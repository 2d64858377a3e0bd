package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
)

// PlayerMotorSystem applies input axes and aim to the player's transform.
type PlayerMotorSystem struct{}

func NewPlayerMotorSystem() *PlayerMotorSystem { return &PlayerMotorSystem{} }

func (s *PlayerMotorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.MotorComponent.Kind(), component.PlayerInputComponent.Kind(), func(e ecs.Entity, motor *component.Motor, input *component.PlayerInput) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		t.Yaw = common.WrapAngle(input.AimYaw)
		t.Pitch = common.Clamp(input.AimPitch, -math.Pi/2, math.Pi/2)

		velocity := MoveVelocity(t.Yaw, input, motor)
		t.Position = t.Position.Add(velocity.Mul(dt))
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel.Linear = velocity
		}
	})
}

// MoveVelocity maps input axes to a horizontal velocity relative to yaw.
// Diagonal input is normalized so it is not faster than straight input.
func MoveVelocity(yaw float64, input *component.PlayerInput, motor *component.Motor) mgl64.Vec3 {
	forward := common.Direction(yaw, 0)
	right := mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
	dir := forward.Mul(input.MoveZ).Add(right.Mul(input.MoveX))
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	speed := motor.WalkSpeed
	if input.Sprint && motor.SprintSpeed > 0 {
		speed = motor.SprintSpeed
	}
	return dir.Mul(speed)
}
