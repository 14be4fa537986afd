package physics

import (
	"math"

	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
)

const (
	collisionCharacter cp.CollisionType = iota + 1
	collisionSolid
)

// ChipmunkWorld is a rigid-body world backed by chipmunk2d. Characters are
// boxes with infinite moment so they never tip over.
type ChipmunkWorld struct {
	space   *cp.Space
	shapes  map[*cp.Shape]*chipmunkBody
	contact ContactListener
}

func NewChipmunkWorld(gravity float64) *ChipmunkWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	w := &ChipmunkWorld{
		space:  space,
		shapes: make(map[*cp.Shape]*chipmunkBody),
	}

	handler := space.NewCollisionHandler(collisionCharacter, collisionSolid)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world := userData.(*ChipmunkWorld)
		a, b := arb.Shapes()
		n := arb.Normal()
		body, ok := world.shapes[a]
		if !ok {
			body, ok = world.shapes[b]
			n = n.Neg()
		}
		if ok && world.contact != nil {
			// The arbiter normal points from the character into the solid.
			world.contact(body, -n.Y)
		}
		return true
	}
	return w
}

func (w *ChipmunkWorld) AddBody(spec BodySpec) Body {
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: spec.Position.X, Y: spec.Position.Y})

	shape := cp.NewBox(body, spec.Width, spec.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionCharacter)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(spec.Category),
		Mask:       cp.ALL_CATEGORIES,
	})

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &chipmunkBody{
		world:    w,
		body:     body,
		shape:    shape,
		owner:    spec.Owner,
		category: spec.Category,
		enabled:  true,
	}
	w.shapes[shape] = b
	return b
}

func (w *ChipmunkWorld) RemoveBody(body Body) {
	b, ok := body.(*chipmunkBody)
	if !ok {
		return
	}
	b.SetSimulationEnabled(false)
	delete(w.shapes, b.shape)
}

func (w *ChipmunkWorld) AddSolid(r gamemath.Rect) {
	shape := cp.NewBox2(w.space.StaticBody, cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}, 0)
	shape.SetFriction(1)
	shape.SetCollisionType(collisionSolid)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(CategorySolid),
		Mask:       cp.ALL_CATEGORIES,
	})
	w.space.AddShape(shape)
}

func (w *ChipmunkWorld) SetContactListener(fn ContactListener) {
	w.contact = fn
}

// QueryOverlap narrows candidates with a bounding-box query, then keeps only
// shapes whose nearest point lies within radius of center.
func (w *ChipmunkWorld) QueryOverlap(center gamemath.Vec2, radius float64, mask Category) []Body {
	var out []Body
	filter := cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
	c := cp.Vector{X: center.X, Y: center.Y}
	bb := cp.BB{L: c.X - radius, B: c.Y - radius, R: c.X + radius, T: c.Y + radius}
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
		b, ok := w.shapes[shape]
		if !ok || !b.enabled {
			return
		}
		if shape.PointQuery(c).Distance <= radius {
			out = append(out, b)
		}
	}, nil)
	return out
}

func (w *ChipmunkWorld) Step(dt float64) {
	w.space.Step(dt)
}

type chipmunkBody struct {
	world    *ChipmunkWorld
	body     *cp.Body
	shape    *cp.Shape
	owner    donburi.Entity
	category Category
	enabled  bool
}

func (b *chipmunkBody) Owner() donburi.Entity   { return b.owner }
func (b *chipmunkBody) Category() Category      { return b.category }
func (b *chipmunkBody) SimulationEnabled() bool { return b.enabled }

func (b *chipmunkBody) Position() gamemath.Vec2 {
	p := b.body.Position()
	return gamemath.Vec2{X: p.X, Y: p.Y}
}

func (b *chipmunkBody) SetPosition(p gamemath.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.shape.CacheBB()
}

func (b *chipmunkBody) Velocity() gamemath.Vec2 {
	v := b.body.Velocity()
	return gamemath.Vec2{X: v.X, Y: v.Y}
}

func (b *chipmunkBody) SetVelocity(v gamemath.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}

func (b *chipmunkBody) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}

func (b *chipmunkBody) ApplyImpulse(j gamemath.Vec2) {
	v := b.body.Velocity()
	m := b.body.Mass()
	b.body.SetVelocity(v.X+j.X/m, v.Y+j.Y/m)
}

func (b *chipmunkBody) SetSimulationEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	space := b.world.space
	if enabled {
		space.AddBody(b.body)
		space.AddShape(b.shape)
	} else {
		space.RemoveShape(b.shape)
		space.RemoveBody(b.body)
	}
}
