package component

// PlayerInput stores per-tick input state for the player. Axes are in
// [-1, 1]; MoveZ is forward.
type PlayerInput struct {
	MoveX    float64
	MoveZ    float64
	Sprint   bool
	Fire     bool
	Reload   bool
	AimYaw   float64
	AimPitch float64
}

var PlayerInputComponent = NewComponent[PlayerInput]()

// Motor turns input axes into horizontal velocity.
type Motor struct {
	WalkSpeed   float64
	SprintSpeed float64
}

var MotorComponent = NewComponent[Motor]()

// PilotScript names the tengo script that drives PlayerInput.
type PilotScript struct {
	Name   string
	Source []byte
}

var PilotScriptComponent = NewComponent[PilotScript]()
