package physics

import (
	"testing"

	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestChipmunkWorldReportsFloorContact(t *testing.T) {
	w := NewChipmunkWorld(9.81)
	w.AddSolid(gamemath.Rect{X: -5, Y: -1, W: 20, H: 1})

	var normals []float64
	w.SetContactListener(func(b Body, normalY float64) {
		normals = append(normals, normalY)
	})
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 2})

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
	}

	require.NotEmpty(t, normals)
	assert.Greater(t, normals[0], 0.5)
	assert.InDelta(t, 0.8, b.Position().Y, 0.15)
}

func TestChipmunkWorldQueryOverlap(t *testing.T) {
	w := NewChipmunkWorld(0)
	a := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 0})
	addCharacter(w, donburi.Entity(2), gamemath.Vec2{X: 5, Y: 0})

	hits := w.QueryOverlap(gamemath.Vec2{X: 0.6, Y: 0}, 0.5, CategoryCharacter)
	require.Len(t, hits, 1)
	assert.Equal(t, a.Owner(), hits[0].Owner())

	assert.Empty(t, w.QueryOverlap(gamemath.Vec2{X: 0.6, Y: 0}, 0.5, CategorySolid))

	a.SetSimulationEnabled(false)
	assert.Empty(t, w.QueryOverlap(gamemath.Vec2{X: 0.6, Y: 0}, 0.5, CategoryCharacter))
}

func TestChipmunkWorldQueryOverlapIsADisc(t *testing.T) {
	w := NewChipmunkWorld(0)
	a := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 0})

	// The box corner is at (0.4, 0.8). Both discs below reach the box's
	// bounding box, but only the second touches the box itself.
	assert.Empty(t, w.QueryOverlap(gamemath.Vec2{X: 0.9, Y: 1.3}, 0.6, CategoryCharacter),
		"corner is ~0.71 away")

	hits := w.QueryOverlap(gamemath.Vec2{X: 0.9, Y: 0}, 0.6, CategoryCharacter)
	require.Len(t, hits, 1)
	assert.Equal(t, a.Owner(), hits[0].Owner())
}

func TestChipmunkBodyVelocity(t *testing.T) {
	w := NewChipmunkWorld(0)
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{})

	b.SetVelocity(gamemath.Vec2{X: 3, Y: 1})
	b.ApplyImpulse(gamemath.Vec2{Y: 2})
	assert.Equal(t, gamemath.Vec2{X: 3, Y: 3}, b.Velocity())

	b.SetPosition(gamemath.Vec2{X: 4, Y: 4})
	assert.Equal(t, gamemath.Vec2{X: 4, Y: 4}, b.Position())
}
