package component

import "github.com/jakecoffman/cp"

type ColliderShape int

const (
	ColliderCircle ColliderShape = iota
	ColliderBox
)

// Collider describes an upright volume: a circle or box footprint on the
// X/Z plane extruded Height units up from the transform's Y.
type Collider struct {
	Shape  ColliderShape
	Radius float64
	Width  float64
	Depth  float64
	Height float64
	// Sensors never block sight lines or projectiles.
	Sensor bool
}

// SpansHeight reports whether world height y falls inside the collider when
// its base sits at baseY.
func (c Collider) SpansHeight(baseY, y float64) bool {
	return y >= baseY && y <= baseY+c.Height
}

var ColliderComponent = NewComponent[Collider]()

// PhysicsBody stores Chipmunk2D runtime data for an entity's collider.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Mass      float64
	Friction  float64
	Static    bool
	Kinematic bool
}

// Dynamic bodies are moved by the solver and respond to impulses.
func (p PhysicsBody) Dynamic() bool {
	return !p.Static && !p.Kinematic
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
