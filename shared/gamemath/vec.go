package gamemath

import "math"

// Vec2 is a 2D vector in world units. Y points up.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned box given by its minimum corner and size.
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the box of size w*h centred on c.
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// DiscOverlapsRect reports whether the disc (center, radius) intersects r.
// A zero radius degenerates to a point-in-rect test.
func DiscOverlapsRect(center Vec2, radius float64, r Rect) bool {
	nx := math.Max(r.X, math.Min(center.X, r.X+r.W))
	ny := math.Max(r.Y, math.Min(center.Y, r.Y+r.H))
	dx := center.X - nx
	dy := center.Y - ny
	return dx*dx+dy*dy <= radius*radius
}
