package arena

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/milk9111/fpsarena/common"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
	"github.com/milk9111/fpsarena/ecs/entity"
	"github.com/milk9111/fpsarena/ecs/system"
	"github.com/milk9111/fpsarena/logger"
	"github.com/milk9111/fpsarena/prefabs"
	"github.com/milk9111/fpsarena/replay"
	"github.com/sirupsen/logrus"
)

const DefaultTickRate = 60

var ErrBadTickRate = errors.New("arena: tick rate must be positive")

type Options struct {
	// TickRate overrides the arena's tick_rate when positive.
	TickRate int
	// Seed makes the match id reproducible when non-zero.
	Seed int64
	// Recorder receives one frame per tick when set.
	Recorder *replay.Writer
	// SnapshotEvery is the tick interval between entity snapshots. Zero
	// means once per simulated second and negative disables snapshots.
	SnapshotEvery int
}

// Game owns one match: the world, its systems and the simulation clock.
type Game struct {
	MatchID string
	Spec    *prefabs.ArenaSpec
	World   *ecs.World
	Clock   *common.SimClock
	Arena   *entity.Arena

	physics       *system.PhysicsWorld
	scheduler     *ecs.Scheduler
	recorder      *replay.Writer
	summary       *replay.Summary
	tickRate      int
	snapshotEvery int
	log           *logrus.Entry
}

func NewGame(spec *prefabs.ArenaSpec, opts Options) (*Game, error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	tickRate := spec.TickRate
	if opts.TickRate != 0 {
		tickRate = opts.TickRate
	}
	if tickRate == 0 {
		tickRate = DefaultTickRate
	}
	if tickRate < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrBadTickRate, tickRate)
	}

	matchID, err := newMatchID(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("arena: match id: %w", err)
	}

	w := ecs.NewWorld()
	layout, err := entity.LoadArenaToWorld(w, spec)
	if err != nil {
		return nil, err
	}

	physics := system.NewPhysicsWorld()
	physics.Sync(w)
	spawner := entity.ProjectileFactory{}

	scheduler := ecs.NewScheduler()
	scheduler.Add(ecs.StageInput, system.NewPilotSystem())
	scheduler.Add(ecs.StageInput, system.NewPlayerMotorSystem())
	scheduler.Add(ecs.StagePhysics, physics)
	scheduler.Add(ecs.StagePhysics, system.NewProjectileSystem(physics))
	scheduler.Add(ecs.StageDecision, system.NewTargetingSystem(physics, system.TaggedPlayerLocator{}, spawner))
	scheduler.Add(ecs.StageDecision, system.NewWeaponSystem(spawner))
	scheduler.Add(ecs.StageLate, system.NewRespawnSystem())
	scheduler.Add(ecs.StageLate, system.NewDeathSystem())

	snapshotEvery := opts.SnapshotEvery
	if snapshotEvery == 0 {
		snapshotEvery = tickRate
	}

	g := &Game{
		MatchID:       matchID,
		Spec:          spec,
		World:         w,
		Clock:         common.NewSimClock(),
		Arena:         layout,
		physics:       physics,
		scheduler:     scheduler,
		recorder:      opts.Recorder,
		tickRate:      tickRate,
		snapshotEvery: snapshotEvery,
		log: logger.For("arena").WithFields(logrus.Fields{
			"match": matchID,
			"arena": spec.Name,
		}),
	}
	g.summary = replay.NewSummary(g.Header(opts.Seed))
	g.log.WithField("tps", tickRate).Info("match ready")
	return g, nil
}

// newMatchID derives the id from seed so seeded runs are reproducible.
func newMatchID(seed int64) (string, error) {
	if seed == 0 {
		return uuid.NewString(), nil
	}
	id, err := uuid.NewRandomFromReader(rand.New(rand.NewSource(seed)))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (g *Game) Header(seed int64) replay.Header {
	return replay.Header{
		MatchID:  g.MatchID,
		Arena:    g.Spec.Name,
		TickRate: g.tickRate,
		Seed:     seed,
	}
}

func (g *Game) TickRate() int {
	return g.tickRate
}

// TickDuration is the fixed step in seconds.
func (g *Game) TickDuration() float64 {
	return 1 / float64(g.tickRate)
}

func (g *Game) Physics() *system.PhysicsWorld {
	return g.physics
}

// SetRecorder starts writing frames to w from the next tick. A nil w stops
// recording.
func (g *Game) SetRecorder(w *replay.Writer) {
	g.recorder = w
}

func (g *Game) Recorder() *replay.Writer {
	return g.recorder
}

func (g *Game) Summary() *replay.Summary {
	return g.summary
}

// Player returns the player entity while it is alive.
func (g *Game) Player() (ecs.Entity, bool) {
	if g.Arena == nil || !g.World.IsAlive(g.Arena.Player) {
		return 0, false
	}
	return g.Arena.Player, true
}

// Advance runs one tick of dt seconds and returns the events it raised.
func (g *Game) Advance(dt float64) ([]ecs.Event, error) {
	now := g.Clock.Advance(dt)
	g.World.BeginTick(now, dt)
	g.scheduler.Update(g.World)

	events := g.World.Events().Drain()
	frame := replay.Frame{Tick: g.World.Tick(), Time: now}
	for _, evt := range events {
		frame.Events = append(frame.Events, replay.FromEvent(evt))
	}
	if g.snapshotEvery > 0 && g.World.Tick()%uint64(g.snapshotEvery) == 0 {
		frame.Entities = g.snapshot()
	}

	g.summary.Add(frame)
	if g.recorder != nil {
		if err := g.recorder.WriteFrame(frame); err != nil {
			return events, err
		}
	}
	return events, nil
}

// Step advances by one fixed tick.
func (g *Game) Step() ([]ecs.Event, error) {
	return g.Advance(g.TickDuration())
}

// Run steps ticks times, stopping early when ctx is done.
func (g *Game) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	g.log.WithFields(logrus.Fields{
		"ticks": g.World.Tick(),
		"shots": g.summary.Shots,
		"kills": g.summary.Kills,
	}).Info("match finished")
	return nil
}

func (g *Game) snapshot() []replay.Snapshot {
	var out []replay.Snapshot
	ecs.ForEach2(g.World, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform) {
		snap := replay.Snapshot{
			Entity: e.String(),
			Pos:    t.Position,
			Yaw:    t.Yaw,
			Health: h.Current,
		}
		if name, ok := ecs.Get(g.World, e, component.NameComponent.Kind()); ok {
			snap.Name = name.Value
		}
		if state, ok := ecs.Get(g.World, e, component.TargetingStateComponent.Kind()); ok {
			snap.State = state.State()
		}
		out = append(out, snap)
	})
	return out
}
