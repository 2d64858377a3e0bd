package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpsarena/ecs"
	"github.com/milk9111/fpsarena/ecs/component"
)

const (
	defaultDamping   = 0.1
	defaultFriction  = 0.7
	minSweepLength   = 1e-9
	defaultBodyMass  = 1
	spaceIterations  = 10
	collisionTypeAny = cp.CollisionType(1)
)

// PhysicsWorld mirrors collider entities into a Chipmunk2D space laid out on
// the X/Z plane. Heights are not simulated: every collider is an upright
// prism and queries check the vertical extent themselves.
type PhysicsWorld struct {
	space         *cp.Space
	world         *ecs.World
	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{})
	space.SetDamping(defaultDamping)
	return &PhysicsWorld{
		space:         space,
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
}

func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Update pushes transforms into the space, steps it by the tick's delta and
// copies dynamic bodies back out.
func (pw *PhysicsWorld) Update(w *ecs.World) {
	if pw == nil || w == nil {
		return
	}
	pw.Sync(w)
	if dt := w.DeltaTime(); dt > 0 {
		pw.space.Step(dt)
	}
	pw.syncTransforms(w)
}

// Sync creates and removes bodies to match the world and moves kinematic
// bodies to their transforms without stepping.
func (pw *PhysicsWorld) Sync(w *ecs.World) {
	if pw == nil || w == nil {
		return
	}
	pw.world = w
	pw.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		collider, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := pw.entities[e]
		if info == nil {
			info = pw.createBodyInfo(w, e, transform, collider, bodyComp)
			if info == nil {
				continue
			}
			pw.entities[e] = info
			pw.shapeToEntity[info.shape] = e
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			continue
		}
		if info.static || bodyComp.Dynamic() {
			continue
		}

		pos := toPlane(transform.Position)
		if info.body.Position() != pos {
			info.body.SetPosition(pos)
			pw.reindex(info)
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocityVector(toPlane(vel.Linear))
		}
	}
}

// reindex re-inserts a moved shape so queries between steps see its new
// bounds. Space.Step only refreshes them for the next step.
func (pw *PhysicsWorld) reindex(info *bodyInfo) {
	if info.shape == nil {
		return
	}
	pw.space.RemoveShape(info.shape)
	pw.space.AddShape(info.shape)
}

func (pw *PhysicsWorld) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, collider *component.Collider, bodyComp *component.PhysicsBody) *bodyInfo {
	center := toPlane(transform.Position)

	if bodyComp.Static {
		var shape *cp.Shape
		switch collider.Shape {
		case component.ColliderBox:
			bb := cp.NewBBForExtents(center, collider.Width/2, collider.Depth/2)
			shape = cp.NewBox2(pw.space.StaticBody, bb, 0)
		default:
			shape = cp.NewCircle(pw.space.StaticBody, collider.Radius, center)
		}
		pw.configureShape(w, e, shape, collider, bodyComp)
		pw.space.AddShape(shape)
		return &bodyInfo{body: pw.space.StaticBody, shape: shape, static: true}
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = defaultBodyMass
		}
		// upright colliders never spin
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(center)

	var shape *cp.Shape
	switch collider.Shape {
	case component.ColliderBox:
		shape = cp.NewBox(body, collider.Width, collider.Depth, 0)
	default:
		shape = cp.NewCircle(body, collider.Radius, cp.Vector{})
	}
	pw.configureShape(w, e, shape, collider, bodyComp)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (pw *PhysicsWorld) configureShape(w *ecs.World, e ecs.Entity, shape *cp.Shape, collider *component.Collider, bodyComp *component.PhysicsBody) {
	friction := bodyComp.Friction
	if friction <= 0 {
		friction = defaultFriction
	}
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeAny)
	shape.SetSensor(collider.Sensor)

	faction := component.FactionNeutral
	if tag, ok := ecs.Get(w, e, component.FactionTagComponent.Kind()); ok {
		faction = tag.Faction
	}
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: factionCategory(faction),
		Mask:       cp.ALL_CATEGORIES,
	})
}

// factionCategory gives each team its own category bit. Neutral shares bit
// zero with nothing else so every mask includes it.
func factionCategory(f component.Faction) uint {
	return 1 << uint(f)
}

// sweepFilter lets a projectile of faction see every category except its
// own team's.
func sweepFilter(f component.Faction) cp.ShapeFilter {
	mask := cp.ALL_CATEGORIES
	if f != component.FactionNeutral {
		mask &^= factionCategory(f)
	}
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask}
}

func (pw *PhysicsWorld) syncTransforms(w *ecs.World) {
	for e, info := range pw.entities {
		if info.static {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || !bodyComp.Dynamic() {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.Position = mgl64.Vec3{pos.X, transform.Position.Y(), pos.Y}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.Linear = mgl64.Vec3{v.X, 0, v.Y}
		}
	}
}

func (pw *PhysicsWorld) cleanupEntities(w *ecs.World) {
	for e, info := range pw.entities {
		if w.IsActive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		pw.removeBody(info)
		delete(pw.entities, e)
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			bodyComp.Body = nil
			bodyComp.Shape = nil
		}
	}
}

func (pw *PhysicsWorld) removeBody(info *bodyInfo) {
	if info.shape != nil {
		pw.space.RemoveShape(info.shape)
		delete(pw.shapeToEntity, info.shape)
	}
	if info.body != nil && !info.static {
		pw.space.RemoveBody(info.body)
	}
}

// Raycast returns the first non-sensor collider crossed by from -> to,
// skipping ignore.
func (pw *PhysicsWorld) Raycast(from, to mgl64.Vec3, ignore ecs.Entity) (RayHit, bool) {
	hits := pw.query(from, to, 0, cp.SHAPE_FILTER_ALL)
	for _, h := range hits {
		if h.Entity == ignore && ignore != 0 {
			continue
		}
		return RayHit{
			Entity:   h.Entity,
			Point:    h.Point,
			Normal:   h.Normal,
			Distance: to.Sub(from).Len() * h.Alpha,
		}, true
	}
	return RayHit{}, false
}

// Sweep implements ProjectileSpace.
func (pw *PhysicsWorld) Sweep(from, to mgl64.Vec3, radius float64, faction component.Faction) []SweepHit {
	return pw.query(from, to, radius, sweepFilter(faction))
}

// ApplyImpulse pushes a dynamic body. Static and kinematic bodies ignore it.
func (pw *PhysicsWorld) ApplyImpulse(e ecs.Entity, impulse, point mgl64.Vec3) bool {
	if pw == nil {
		return false
	}
	info, ok := pw.entities[e]
	if !ok || info.static || info.body.GetType() != cp.BODY_DYNAMIC {
		return false
	}
	info.body.ApplyImpulseAtWorldPoint(toPlane(impulse), toPlane(point))
	return true
}

func (pw *PhysicsWorld) query(from, to mgl64.Vec3, radius float64, filter cp.ShapeFilter) []SweepHit {
	if pw == nil || pw.space == nil {
		return nil
	}
	a, b := toPlane(from), toPlane(to)
	var hits []SweepHit

	visit := func(shape *cp.Shape, enter float64, normal cp.Vector) {
		if shape.Sensor() {
			return
		}
		exit := 1.0
		var back cp.SegmentQueryInfo
		if shape.SegmentQuery(b, a, radius, &back) {
			exit = 1 - back.Alpha
		}
		alpha, ok := pw.verticalEntry(shape, from.Y(), to.Y(), enter, exit)
		if !ok {
			return
		}
		hits = append(hits, SweepHit{
			Entity: pw.shapeToEntity[shape],
			Point:  lerpVec(from, to, alpha),
			Normal: mgl64.Vec3{normal.X, 0, normal.Y},
			Alpha:  alpha,
		})
	}

	if a.Sub(b).Length() < minSweepLength {
		pw.space.BBQuery(cp.NewBBForCircle(a, radius), filter, func(shape *cp.Shape, _ interface{}) {
			info := shape.PointQuery(a)
			if info.Distance > radius {
				return
			}
			visit(shape, 0, info.Gradient.Neg())
		}, nil)
	} else {
		pw.space.SegmentQuery(a, b, radius, filter, func(shape *cp.Shape, _ cp.Vector, normal cp.Vector, alpha float64, _ interface{}) {
			visit(shape, alpha, normal)
		}, nil)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Alpha < hits[j].Alpha })
	return hits
}

// verticalEntry finds the first alpha in [enter, exit] where the segment's
// height lies inside the shape's vertical extent.
func (pw *PhysicsWorld) verticalEntry(shape *cp.Shape, y0, y1, enter, exit float64) (float64, bool) {
	e, ok := pw.shapeToEntity[shape]
	if !ok || pw.world == nil {
		return enter, true
	}
	collider, ok := ecs.Get(pw.world, e, component.ColliderComponent.Kind())
	if !ok {
		return enter, true
	}
	transform, ok := ecs.Get(pw.world, e, component.TransformComponent.Kind())
	if !ok {
		return enter, true
	}
	lo := transform.Position.Y()
	hi := lo + collider.Height

	yEnter := y0 + (y1-y0)*enter
	if yEnter >= lo && yEnter <= hi {
		return enter, true
	}
	dy := y1 - y0
	if dy == 0 {
		return 0, false
	}
	// the segment is heading into the band from above or below
	bound := lo
	if yEnter > hi {
		bound = hi
	}
	alpha := (bound - y0) / dy
	if alpha < enter || alpha > exit {
		return 0, false
	}
	return alpha, true
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
