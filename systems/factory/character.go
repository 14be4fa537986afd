package factory

import (
	"image/color"

	"github.com/automoto/doomerang-arena/archetypes"
	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

var palette = []color.RGBA{
	{R: 0xe0, G: 0x4b, B: 0x3a, A: 0xff},
	{R: 0x3a, G: 0x8b, B: 0xe0, A: 0xff},
	{R: 0x5c, G: 0xc2, B: 0x5a, A: 0xff},
	{R: 0xe0, G: 0xb8, B: 0x3a, A: 0xff},
}

// CharacterSpec describes a character to spawn. Anim and View default to an
// AnimationState and a Sprite when nil.
type CharacterSpec struct {
	ID       uint
	Name     string
	Position gamemath.Vec2
	Facing   components.Facing
	Anim     components.Animator
	View     components.Visibility

	// Networked characters carry replicated health. Authority marks the
	// server's copy; mirrors start from Health/HealthSeq.
	Networked bool
	Authority bool
	Health    int
	HealthSeq uint64
}

// PaletteColor picks a stable sprite colour for a character id.
func PaletteColor(id uint) color.RGBA {
	return palette[int(id)%len(palette)]
}

func CreateCharacter(w donburi.World, space physics.World, t config.Tuning, spec CharacterSpec) *donburi.Entry {
	var entry *donburi.Entry
	if spec.Networked {
		entry = archetypes.NetworkedCharacter.Spawn(w)
	} else {
		entry = archetypes.Character.Spawn(w)
	}

	if spec.Anim == nil {
		spec.Anim = components.NewAnimationState()
	}
	if spec.View == nil {
		spec.View = components.NewSprite(PaletteColor(spec.ID))
	}
	if spec.Facing == 0 {
		spec.Facing = components.FacingRight
	}

	body := space.AddBody(physics.BodySpec{
		Owner:    entry.Entity(),
		Position: spec.Position,
		Width:    t.Movement.BodyWidth,
		Height:   t.Movement.BodyHeight,
		Mass:     t.Movement.BodyMass,
		Category: physics.CategoryCharacter,
	})

	components.Character.SetValue(entry, components.CharacterData{ID: spec.ID, Name: spec.Name})
	components.Body.SetValue(entry, components.BodyData{Body: body})
	components.Health.SetValue(entry, components.NewHealth(t.Combat.MaxHealth, spec.Anim, spec.View))
	components.Motion.SetValue(entry, components.NewMotion(spec.Facing))
	components.Anim.SetValue(entry, components.AnimatorData{Animator: spec.Anim})
	components.View.SetValue(entry, components.ViewData{View: spec.View})

	if spec.Networked {
		value := t.Combat.MaxHealth
		if !spec.Authority && spec.HealthSeq > 0 {
			value = spec.Health
		}
		components.ReplicatedHealth.SetValue(entry, components.NewReplicatedHealth(
			value, t.Combat.MaxHealth, spec.HealthSeq, spec.Authority,
		))
	}

	spec.Anim.SetBool(components.ParamFacingRight, spec.Facing == components.FacingRight)
	return entry
}
