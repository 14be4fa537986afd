// Package physics defines the narrow physics surface the combat layer uses
// and two implementations of it: a resolv collision space for the headless
// authority and a chipmunk rigid-body space for local play.
package physics

import (
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Category is a bit in a body's collision category set. Queries select bodies
// with a mask of categories.
type Category uint32

const (
	CategoryCharacter Category = 1 << iota
	CategorySolid

	CategoryAll Category = 1<<32 - 1
)

// BodySpec describes a dynamic box body. Position is the box centre.
type BodySpec struct {
	Owner    donburi.Entity
	Position gamemath.Vec2
	Width    float64
	Height   float64
	Mass     float64
	Category Category
}

// Body is a handle to one simulated body.
type Body interface {
	Owner() donburi.Entity
	Category() Category
	Position() gamemath.Vec2
	SetPosition(p gamemath.Vec2)
	Velocity() gamemath.Vec2
	SetVelocity(v gamemath.Vec2)
	SetAngularVelocity(w float64)
	ApplyImpulse(j gamemath.Vec2)
	SimulationEnabled() bool
	// SetSimulationEnabled removes the body from (or returns it to) the
	// simulation. A disabled body neither moves, collides nor shows up in
	// queries.
	SetSimulationEnabled(enabled bool)
}

// ContactListener receives the Y component of the contact normal, pointing
// from the other surface toward b, when b starts touching a solid.
type ContactListener func(b Body, normalY float64)

// World is the physics collaborator.
type World interface {
	AddBody(spec BodySpec) Body
	RemoveBody(b Body)
	AddSolid(r gamemath.Rect)
	// QueryOverlap returns every enabled body whose category is in mask and
	// which overlaps the disc. The result may list one owner more than once
	// when it is made of several shapes.
	QueryOverlap(center gamemath.Vec2, radius float64, mask Category) []Body
	SetContactListener(fn ContactListener)
	Step(dt float64)
}
