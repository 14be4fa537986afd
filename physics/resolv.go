package physics

import (
	"math"

	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

const (
	tagSolid     = "solid"
	tagCharacter = "character"

	// resolv spaces use integer cells anchored at the origin, so world units
	// are scaled up and shifted into the positive quadrant.
	resolvScale    = 16.0
	resolvCellSize = 16
	maxFallSpeed   = 50.0
	contactEpsilon = 1e-6
)

// ResolvWorld is a kinematic AABB world. Gravity and velocity are integrated
// by hand and solids block movement axis by axis.
type ResolvWorld struct {
	space   *resolv.Space
	origin  gamemath.Vec2
	gravity float64
	bodies  []*resolvBody
	contact ContactListener
}

// NewResolvWorld creates a world covering bounds (world units, Y up).
func NewResolvWorld(bounds gamemath.Rect, gravity float64) *ResolvWorld {
	w := int(math.Ceil(bounds.W * resolvScale))
	h := int(math.Ceil(bounds.H * resolvScale))
	return &ResolvWorld{
		space:   resolv.NewSpace(w, h, resolvCellSize, resolvCellSize),
		origin:  gamemath.Vec2{X: bounds.X, Y: bounds.Y},
		gravity: gravity,
	}
}

func (w *ResolvWorld) toSpace(x, y float64) (float64, float64) {
	return (x - w.origin.X) * resolvScale, (y - w.origin.Y) * resolvScale
}

func (w *ResolvWorld) AddBody(spec BodySpec) Body {
	b := &resolvBody{
		world:    w,
		owner:    spec.Owner,
		category: spec.Category,
		pos:      spec.Position,
		w:        spec.Width,
		h:        spec.Height,
		mass:     spec.Mass,
		enabled:  true,
	}
	if b.mass <= 0 {
		b.mass = 1
	}
	x, y := w.toSpace(spec.Position.X-spec.Width/2, spec.Position.Y-spec.Height/2)
	b.obj = resolv.NewObject(x, y, spec.Width*resolvScale, spec.Height*resolvScale, tagCharacter)
	b.obj.Data = b
	w.space.Add(b.obj)
	w.bodies = append(w.bodies, b)
	return b
}

func (w *ResolvWorld) RemoveBody(body Body) {
	b, ok := body.(*resolvBody)
	if !ok {
		return
	}
	if b.enabled {
		w.space.Remove(b.obj)
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

func (w *ResolvWorld) AddSolid(r gamemath.Rect) {
	x, y := w.toSpace(r.X, r.Y)
	w.space.Add(resolv.NewObject(x, y, r.W*resolvScale, r.H*resolvScale, tagSolid))
}

func (w *ResolvWorld) SetContactListener(fn ContactListener) {
	w.contact = fn
}

func (w *ResolvWorld) QueryOverlap(center gamemath.Vec2, radius float64, mask Category) []Body {
	x, y := w.toSpace(center.X-radius, center.Y-radius)
	probe := resolv.NewObject(x, y, 2*radius*resolvScale, 2*radius*resolvScale)
	w.space.Add(probe)
	defer w.space.Remove(probe)

	check := probe.Check(0, 0, tagCharacter)
	if check == nil {
		return nil
	}
	var out []Body
	for _, o := range check.Objects {
		b, ok := o.Data.(*resolvBody)
		if !ok || !b.enabled || b.category&mask == 0 {
			continue
		}
		// Check only compares cells; do the exact test here.
		if gamemath.DiscOverlapsRect(center, radius, b.bounds()) {
			out = append(out, b)
		}
	}
	return out
}

// Step integrates every enabled body and resolves it against the solids.
func (w *ResolvWorld) Step(dt float64) {
	for _, b := range w.bodies {
		if !b.enabled {
			continue
		}
		vy, wantY := gamemath.Integrate(b.vel.Y, -w.gravity, dt)
		if clamped := gamemath.ClampSpeed(vy, maxFallSpeed); clamped != vy {
			vy, wantY = clamped, clamped*dt
		}
		b.vel.Y = vy

		dx := w.sweepX(b, b.vel.X*dt)
		if dx != b.vel.X*dt {
			b.vel.X = 0
		}
		b.pos.X += dx

		dy := w.sweepY(b, wantY)
		touching := dy != wantY
		if touching {
			normalY := 1.0
			if wantY > 0 {
				normalY = -1
			}
			b.vel.Y = 0
			if !b.touching && w.contact != nil {
				w.contact(b, normalY)
			}
		}
		b.touching = touching
		b.pos.Y += dy
		b.sync()
	}
}

// solidsNear returns the solids sharing a cell with b once moved by (dx, dy).
func (w *ResolvWorld) solidsNear(b *resolvBody, dx, dy float64) []gamemath.Rect {
	check := b.obj.Check(dx*resolvScale, dy*resolvScale, tagSolid)
	if check == nil {
		return nil
	}
	rects := make([]gamemath.Rect, 0, len(check.Objects))
	for _, o := range check.Objects {
		if !o.HasTags(tagSolid) {
			continue
		}
		rects = append(rects, gamemath.Rect{
			X: o.X/resolvScale + w.origin.X,
			Y: o.Y/resolvScale + w.origin.Y,
			W: o.W / resolvScale,
			H: o.H / resolvScale,
		})
	}
	return rects
}

func (w *ResolvWorld) sweepX(b *resolvBody, dx float64) float64 {
	if dx == 0 {
		return 0
	}
	box := b.bounds()
	for _, s := range w.solidsNear(b, dx, 0) {
		if box.Y >= s.Y+s.H-contactEpsilon || s.Y >= box.Y+box.H-contactEpsilon {
			continue
		}
		if dx > 0 && box.X+box.W <= s.X+contactEpsilon && box.X+box.W+dx > s.X {
			dx = s.X - (box.X + box.W)
		} else if dx < 0 && box.X >= s.X+s.W-contactEpsilon && box.X+dx < s.X+s.W {
			dx = s.X + s.W - box.X
		}
	}
	return dx
}

func (w *ResolvWorld) sweepY(b *resolvBody, dy float64) float64 {
	if dy == 0 {
		return 0
	}
	box := b.bounds()
	for _, s := range w.solidsNear(b, 0, dy) {
		if box.X >= s.X+s.W-contactEpsilon || s.X >= box.X+box.W-contactEpsilon {
			continue
		}
		if dy > 0 && box.Y+box.H <= s.Y+contactEpsilon && box.Y+box.H+dy > s.Y {
			dy = s.Y - (box.Y + box.H)
		} else if dy < 0 && box.Y >= s.Y+s.H-contactEpsilon && box.Y+dy < s.Y+s.H {
			dy = s.Y + s.H - box.Y
		}
	}
	return dy
}

type resolvBody struct {
	world    *ResolvWorld
	obj      *resolv.Object
	owner    donburi.Entity
	category Category
	pos      gamemath.Vec2
	vel      gamemath.Vec2
	w, h     float64
	mass     float64
	enabled  bool
	touching bool
}

func (b *resolvBody) bounds() gamemath.Rect {
	return gamemath.RectAround(b.pos, b.w, b.h)
}

func (b *resolvBody) sync() {
	b.obj.X, b.obj.Y = b.world.toSpace(b.pos.X-b.w/2, b.pos.Y-b.h/2)
	b.obj.Update()
}

func (b *resolvBody) Owner() donburi.Entity   { return b.owner }
func (b *resolvBody) Category() Category      { return b.category }
func (b *resolvBody) Position() gamemath.Vec2 { return b.pos }
func (b *resolvBody) Velocity() gamemath.Vec2 { return b.vel }
func (b *resolvBody) SimulationEnabled() bool { return b.enabled }

func (b *resolvBody) SetPosition(p gamemath.Vec2) {
	b.pos = p
	b.touching = false
	b.sync()
}

func (b *resolvBody) SetVelocity(v gamemath.Vec2) { b.vel = v }

// SetAngularVelocity is a no-op: AABB bodies never rotate.
func (b *resolvBody) SetAngularVelocity(float64) {}

func (b *resolvBody) ApplyImpulse(j gamemath.Vec2) {
	b.vel = b.vel.Add(j.Scale(1 / b.mass))
}

func (b *resolvBody) SetSimulationEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if enabled {
		b.sync()
		b.world.space.Add(b.obj)
	} else {
		b.world.space.Remove(b.obj)
		b.touching = false
	}
}
