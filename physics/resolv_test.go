package physics

import (
	"testing"

	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newTestResolvWorld() *ResolvWorld {
	w := NewResolvWorld(gamemath.Rect{X: -10, Y: -10, W: 40, H: 30}, 9.81)
	w.AddSolid(gamemath.Rect{X: -5, Y: -1, W: 20, H: 1})
	return w
}

func addCharacter(w World, owner donburi.Entity, pos gamemath.Vec2) Body {
	return w.AddBody(BodySpec{
		Owner:    owner,
		Position: pos,
		Width:    0.8,
		Height:   1.6,
		Mass:     1,
		Category: CategoryCharacter,
	})
}

func TestResolvWorldLandsOnFloor(t *testing.T) {
	w := newTestResolvWorld()
	var normals []float64
	w.SetContactListener(func(b Body, normalY float64) {
		normals = append(normals, normalY)
	})
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 2})

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 0.8, b.Position().Y, 1e-3, "resting on top of the floor")
	assert.InDelta(t, 0, b.Velocity().Y, 1e-9)
	require.Len(t, normals, 1, "contact is reported once on touch down")
	assert.Equal(t, 1.0, normals[0])
}

func TestResolvWorldWalkingAlongFloorIsNotBlocked(t *testing.T) {
	w := newTestResolvWorld()
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 0.8})

	for i := 0; i < 60; i++ {
		b.SetVelocity(gamemath.Vec2{X: 2, Y: b.Velocity().Y})
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 2, b.Position().X, 0.05)
}

func TestResolvWorldDisabledBodyIsFrozen(t *testing.T) {
	w := newTestResolvWorld()
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 5})
	b.SetSimulationEnabled(false)

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	assert.Equal(t, gamemath.Vec2{X: 0, Y: 5}, b.Position())
	assert.Empty(t, w.QueryOverlap(gamemath.Vec2{X: 0, Y: 5}, 1, CategoryAll))

	b.SetSimulationEnabled(true)
	assert.Len(t, w.QueryOverlap(gamemath.Vec2{X: 0, Y: 5}, 1, CategoryAll), 1)
}

func TestResolvWorldQueryOverlap(t *testing.T) {
	w := newTestResolvWorld()
	a := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 0.8})
	addCharacter(w, donburi.Entity(2), gamemath.Vec2{X: 3, Y: 0.8})

	t.Run("exact_overlap", func(t *testing.T) {
		hits := w.QueryOverlap(gamemath.Vec2{X: 0.6, Y: 0.8}, 0.5, CategoryCharacter)
		require.Len(t, hits, 1)
		assert.Equal(t, a.Owner(), hits[0].Owner())
	})

	t.Run("same_cell_but_apart", func(t *testing.T) {
		hits := w.QueryOverlap(gamemath.Vec2{X: 1.5, Y: 0.8}, 0.5, CategoryCharacter)
		assert.Empty(t, hits)
	})

	t.Run("mask_filters", func(t *testing.T) {
		hits := w.QueryOverlap(gamemath.Vec2{X: 0.6, Y: 0.8}, 0.5, CategorySolid)
		assert.Empty(t, hits)
	})
}

func TestResolvWorldRemoveBody(t *testing.T) {
	w := newTestResolvWorld()
	b := addCharacter(w, donburi.Entity(1), gamemath.Vec2{X: 0, Y: 0.8})
	w.RemoveBody(b)
	assert.Empty(t, w.QueryOverlap(gamemath.Vec2{X: 0, Y: 0.8}, 1, CategoryAll))
}

func TestResolvBodyImpulse(t *testing.T) {
	w := newTestResolvWorld()
	b := w.AddBody(BodySpec{Position: gamemath.Vec2{Y: 5}, Width: 1, Height: 1, Mass: 2})
	b.ApplyImpulse(gamemath.Vec2{Y: 7})
	assert.Equal(t, gamemath.Vec2{Y: 3.5}, b.Velocity())
}
