// Package ui keeps the on-screen health readout in sync with the arena. It
// holds no ebiten state so it can be driven and tested headless; ui/hud draws it.
package ui

import (
	"log"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// drainTime is how long the trailing segment takes to catch up after damage.
const drainTime = 0.4

// Bar is one character's health bar. Current is the real value; Shown trails
// it downward so a hit reads as a draining chunk.
type Bar struct {
	ID      uint
	Current int
	Max     int

	shown float32
	tween *gween.Tween
}

func (b *Bar) set(current, maxHP int) {
	b.Current, b.Max = current, maxHP
	if float32(current) >= b.shown {
		// Heals and respawns snap.
		b.shown = float32(current)
		b.tween = nil
		return
	}
	b.tween = gween.New(b.shown, float32(current), drainTime, ease.OutQuad)
}

func (b *Bar) update(dt float32) {
	if b.tween == nil {
		return
	}
	v, done := b.tween.Update(dt)
	b.shown = v
	if done {
		b.tween = nil
	}
}

// Ratio is Current/Max in [0, 1].
func (b *Bar) Ratio() float64 {
	return ratio(float64(b.Current), b.Max)
}

// ShownRatio is the trailing value over Max.
func (b *Bar) ShownRatio() float64 {
	return ratio(float64(b.shown), b.Max)
}

func (b *Bar) Draining() bool {
	return b.tween != nil
}

func ratio(v float64, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return max(0, min(1, v/float64(maxHP)))
}

// Registry is the arena's HealthDisplay: one bar per spawned character, in
// spawn order.
type Registry struct {
	bars  map[uint]*Bar
	order []*Bar
}

func NewRegistry() *Registry {
	return &Registry{bars: make(map[uint]*Bar)}
}

func (r *Registry) Register(id uint, current, maxHP int) {
	if b, ok := r.bars[id]; ok {
		log.Printf("[ui] character %d registered twice, resetting its bar", id)
		b.tween = nil
		b.shown = float32(current)
		b.Current, b.Max = current, maxHP
		return
	}
	b := &Bar{ID: id, Current: current, Max: maxHP, shown: float32(current)}
	r.bars[id] = b
	r.order = append(r.order, b)
}

func (r *Registry) Update(id uint, current, maxHP int) {
	b, ok := r.bars[id]
	if !ok {
		log.Printf("[ui] health update for unregistered character %d", id)
		return
	}
	b.set(current, maxHP)
}

func (r *Registry) Unregister(id uint) {
	b, ok := r.bars[id]
	if !ok {
		return
	}
	delete(r.bars, id)
	for i, other := range r.order {
		if other == b {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Bar(id uint) (*Bar, bool) {
	b, ok := r.bars[id]
	return b, ok
}

// Bars returns the registered bars in spawn order.
func (r *Registry) Bars() []*Bar {
	return append([]*Bar(nil), r.order...)
}

// Tick advances every drain animation.
func (r *Registry) Tick(dt time.Duration) {
	for _, b := range r.order {
		b.update(float32(dt.Seconds()))
	}
}
