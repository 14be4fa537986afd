package systems

import (
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

type fakeBody struct {
	owner    donburi.Entity
	category physics.Category
	pos      gamemath.Vec2
	vel      gamemath.Vec2
	angVel   float64
	w, h     float64
	enabled  bool
}

func (b *fakeBody) Owner() donburi.Entity        { return b.owner }
func (b *fakeBody) Category() physics.Category   { return b.category }
func (b *fakeBody) Position() gamemath.Vec2      { return b.pos }
func (b *fakeBody) SetPosition(p gamemath.Vec2)  { b.pos = p }
func (b *fakeBody) Velocity() gamemath.Vec2      { return b.vel }
func (b *fakeBody) SetVelocity(v gamemath.Vec2)  { b.vel = v }
func (b *fakeBody) SetAngularVelocity(w float64) { b.angVel = w }
func (b *fakeBody) ApplyImpulse(j gamemath.Vec2) { b.vel = b.vel.Add(j) }
func (b *fakeBody) SimulationEnabled() bool      { return b.enabled }
func (b *fakeBody) SetSimulationEnabled(on bool) { b.enabled = on }

// fakeWorld is a physics.World that never moves anything on its own.
type fakeWorld struct {
	bodies    []*fakeBody
	contact   physics.ContactListener
	steps     int
	duplicate bool // report every hit twice
}

func (w *fakeWorld) AddBody(spec physics.BodySpec) physics.Body {
	b := &fakeBody{
		owner:    spec.Owner,
		category: spec.Category,
		pos:      spec.Position,
		w:        spec.Width,
		h:        spec.Height,
		enabled:  true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *fakeWorld) RemoveBody(body physics.Body) {
	for i, b := range w.bodies {
		if physics.Body(b) == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *fakeWorld) AddSolid(gamemath.Rect) {}

func (w *fakeWorld) QueryOverlap(center gamemath.Vec2, radius float64, mask physics.Category) []physics.Body {
	var out []physics.Body
	for _, b := range w.bodies {
		if !b.enabled || b.category&mask == 0 {
			continue
		}
		if !gamemath.DiscOverlapsRect(center, radius, gamemath.RectAround(b.pos, b.w, b.h)) {
			continue
		}
		out = append(out, b)
		if w.duplicate {
			out = append(out, b)
		}
	}
	return out
}

func (w *fakeWorld) SetContactListener(fn physics.ContactListener) { w.contact = fn }
func (w *fakeWorld) Step(float64)                                  { w.steps++ }

func (w *fakeWorld) bodyOf(e donburi.Entity) *fakeBody {
	for _, b := range w.bodies {
		if b.owner == e {
			return b
		}
	}
	return nil
}

type displayCall struct {
	op           string
	id           uint
	current, max int
}

// recordingDisplay is a HealthDisplay that logs every call.
type recordingDisplay struct {
	calls []displayCall
}

func (d *recordingDisplay) Register(id uint, current, maxHP int) {
	d.calls = append(d.calls, displayCall{"register", id, current, maxHP})
}

func (d *recordingDisplay) Update(id uint, current, maxHP int) {
	d.calls = append(d.calls, displayCall{"update", id, current, maxHP})
}

func (d *recordingDisplay) Unregister(id uint) {
	d.calls = append(d.calls, displayCall{op: "unregister", id: id})
}

func (d *recordingDisplay) updates(id uint) []int {
	var out []int
	for _, c := range d.calls {
		if c.op == "update" && c.id == id {
			out = append(out, c.current)
		}
	}
	return out
}
