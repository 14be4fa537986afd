package systems

import (
	"testing"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func addFakeBody(w *fakeWorld, owner donburi.Entity, x float64, cat physics.Category) {
	w.AddBody(physics.BodySpec{
		Owner:    owner,
		Position: gamemath.Vec2{X: x},
		Width:    0.8,
		Height:   1.6,
		Category: cat,
	})
}

func swing(attacker donburi.Entity, facing components.Facing) CombatIntent {
	return CombatIntent{
		Attacker:   attacker,
		Facing:     facing,
		Range:      0.5,
		Radius:     0.5,
		Damage:     20,
		TargetMask: physics.CategoryCharacter,
	}
}

func TestResolveExcludesAttackerAndDedupes(t *testing.T) {
	w := &fakeWorld{duplicate: true}
	addFakeBody(w, 1, 0, physics.CategoryCharacter)
	addFakeBody(w, 2, 0.6, physics.CategoryCharacter)
	addFakeBody(w, 3, 0.9, physics.CategoryCharacter)

	got := HitDetector{Physics: w}.Resolve(swing(1, components.FacingRight))
	assert.Equal(t, []donburi.Entity{2, 3}, got)
}

func TestResolveFacing(t *testing.T) {
	w := &fakeWorld{}
	addFakeBody(w, 1, 0, physics.CategoryCharacter)
	addFakeBody(w, 2, -1, physics.CategoryCharacter)

	d := HitDetector{Physics: w}
	assert.Empty(t, d.Resolve(swing(1, components.FacingRight)))
	assert.Equal(t, []donburi.Entity{2}, d.Resolve(swing(1, components.FacingLeft)))
}

func TestResolveMask(t *testing.T) {
	w := &fakeWorld{}
	addFakeBody(w, 1, 0, physics.CategoryCharacter)
	addFakeBody(w, 2, 0.6, physics.CategorySolid)

	assert.Empty(t, HitDetector{Physics: w}.Resolve(swing(1, components.FacingRight)))
}

func TestResolveNothingInRange(t *testing.T) {
	w := &fakeWorld{}
	addFakeBody(w, 1, 0, physics.CategoryCharacter)
	addFakeBody(w, 2, 10, physics.CategoryCharacter)

	assert.Empty(t, HitDetector{Physics: w}.Resolve(swing(1, components.FacingRight)))
	assert.Empty(t, HitDetector{}.Resolve(swing(1, components.FacingRight)))
}

func TestIntentCenter(t *testing.T) {
	i := CombatIntent{Origin: gamemath.Vec2{X: 2, Y: 1}, Facing: components.FacingLeft, Range: 0.5}
	assert.Equal(t, gamemath.Vec2{X: 1.5, Y: 1}, i.Center())
}
