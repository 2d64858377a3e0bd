package component

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/looplab/fsm"
)

const (
	DefaultLeadFactor    = 0.5
	DefaultChaseFraction = 0.8
)

// Targeting configures how an enemy detects, engages and chases the player.
// Ranges are in world units, times in seconds and TurnRate in radians per
// second.
type Targeting struct {
	DetectionRange  float64
	AttackRange     float64
	FireInterval    float64
	BulletSpeed     float64
	BulletDamage    float64
	BulletLifetime  float64
	BulletRadius    float64
	ImpactForce     float64
	TargetingHeight float64
	TurnRate        float64
	MoveSpeed       float64
	LeadFactor      float64
	// ChaseFraction of AttackRange beyond which the agent closes distance.
	ChaseFraction float64
	// FirePoint is the muzzle offset in the agent's local frame.
	FirePoint mgl64.Vec3
}

// DefaultTargeting mirrors the stock enemy prefab.
func DefaultTargeting() Targeting {
	return Targeting{
		DetectionRange:  20,
		AttackRange:     15,
		FireInterval:    1,
		BulletSpeed:     20,
		BulletDamage:    10,
		BulletLifetime:  5,
		BulletRadius:    0.1,
		ImpactForce:     30,
		TargetingHeight: 1.5,
		TurnRate:        5,
		MoveSpeed:       3,
		LeadFactor:      DefaultLeadFactor,
		ChaseFraction:   DefaultChaseFraction,
		FirePoint:       mgl64.Vec3{0, 0.5, 0.5},
	}
}

// NewTargeting validates cfg and returns a copy ready to attach.
func NewTargeting(cfg Targeting) (*Targeting, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (t Targeting) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("detection range", t.DetectionRange)
	positive("attack range", t.AttackRange)
	positive("fire interval", t.FireInterval)
	positive("bullet speed", t.BulletSpeed)
	positive("bullet lifetime", t.BulletLifetime)
	positive("turn rate", t.TurnRate)
	nonNegative("bullet damage", t.BulletDamage)
	nonNegative("bullet radius", t.BulletRadius)
	nonNegative("impact force", t.ImpactForce)
	nonNegative("move speed", t.MoveSpeed)
	unit("lead factor", t.LeadFactor)
	unit("chase fraction", t.ChaseFraction)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: targeting: %w", ErrInvalidConfig, errors.Join(errs...))
}

var TargetingComponent = NewComponent[Targeting]()

// Combat states.
const (
	StateIdle      = "idle"
	StateAlerted   = "alerted"
	StateAttacking = "attacking"
)

// Combat transitions.
const (
	TransitionAcquire   = "acquire"
	TransitionEngage    = "engage"
	TransitionDisengage = "disengage"
	TransitionLose      = "lose"
)

// TargetingState is the per-agent runtime half of Targeting.
type TargetingState struct {
	FSM *fsm.FSM

	NextFireTime   float64
	HasLineOfSight bool
	Distance       float64
	// NoPlayerWarned latches after the missing-player warning is logged.
	NoPlayerWarned bool
	Transitions    int
}

func NewTargetingState() *TargetingState {
	s := &TargetingState{}
	s.FSM = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: TransitionAcquire, Src: []string{StateIdle}, Dst: StateAlerted},
			{Name: TransitionEngage, Src: []string{StateAlerted}, Dst: StateAttacking},
			{Name: TransitionDisengage, Src: []string{StateAttacking}, Dst: StateAlerted},
			{Name: TransitionLose, Src: []string{StateAlerted, StateAttacking}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, _ *fsm.Event) {
				s.Transitions++
			},
		},
	)
	return s
}

func (s *TargetingState) State() string {
	if s == nil || s.FSM == nil {
		return StateIdle
	}
	return s.FSM.Current()
}

// Alerted is true in every state but idle.
func (s *TargetingState) Alerted() bool {
	return s.State() != StateIdle
}

// Fire runs a transition if the current state allows it and reports whether
// the state changed.
func (s *TargetingState) Fire(ctx context.Context, transition string) bool {
	if s == nil || s.FSM == nil || !s.FSM.Can(transition) {
		return false
	}
	return s.FSM.Event(ctx, transition) == nil
}

// ScheduleNextFire moves the cooldown deadline forward. It never moves back.
func (s *TargetingState) ScheduleNextFire(next float64) {
	if next > s.NextFireTime {
		s.NextFireTime = next
	}
}

var TargetingStateComponent = NewComponent[TargetingState]()
