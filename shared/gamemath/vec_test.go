package gamemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscOverlapsRect(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 2, H: 2}

	cases := []struct {
		name   string
		center Vec2
		radius float64
		want   bool
	}{
		{"center_inside", Vec2{1, 1}, 0.1, true},
		{"touching_edge", Vec2{3, 1}, 1, true},
		{"just_outside_edge", Vec2{3.01, 1}, 1, false},
		{"near_corner_outside", Vec2{2.8, 2.8}, 1, false},
		{"near_corner_inside", Vec2{2.5, 2.5}, 1, true},
		{"zero_radius_point_inside", Vec2{0.5, 0.5}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DiscOverlapsRect(c.center, c.radius, box))
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := RectAround(Vec2{0, 0}, 2, 2)
	assert.True(t, a.Overlaps(RectAround(Vec2{1.5, 0}, 2, 2)))
	assert.False(t, a.Overlaps(RectAround(Vec2{2, 0}, 2, 2)), "shared edge is not an overlap")
	assert.Equal(t, Vec2{0, 0}, a.Center())
}

func TestIntegrate(t *testing.T) {
	v, d := Integrate(0, -10, 0.5)
	assert.InDelta(t, -5, v, 1e-9)
	assert.InDelta(t, -1.25, d, 1e-9)
	assert.Equal(t, 3.0, ClampSpeed(7, 3))
	assert.Equal(t, -3.0, ClampSpeed(-7, 3))
}
