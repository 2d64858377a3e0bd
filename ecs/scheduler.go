package ecs

// Stage orders systems inside a tick. Stages always run in declaration order.
type Stage int

const (
	StageInput Stage = iota
	StagePhysics
	StageDecision
	StageLate
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StagePhysics:
		return "physics"
	case StageDecision:
		return "decision"
	case StageLate:
		return "late"
	default:
		return "unknown"
	}
}

type Scheduler struct {
	stages [stageCount][]System
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(stage Stage, system System) {
	if system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

func (s *Scheduler) Update(w *World) {
	for _, systems := range s.stages {
		for _, system := range systems {
			system.Update(w)
		}
	}
}

// Systems returns every system in execution order.
func (s *Scheduler) Systems() []System {
	var systems []System
	for _, stage := range s.stages {
		systems = append(systems, stage...)
	}
	return systems
}
