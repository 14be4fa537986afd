package systems

import (
	"math"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Controller drives one character. Motion and animation handling is shared by
// every mode; attacks and outcomes go through the arena's Authority.
type Controller struct {
	arena  *Arena
	entry  *donburi.Entry
	id     uint
	tuning config.Tuning
	detach func()
}

func (c *Controller) ID() uint              { return c.id }
func (c *Controller) Entry() *donburi.Entry { return c.entry }

func (c *Controller) body() physics.Body {
	return components.Body.Get(c.entry).Body
}

func (c *Controller) animator() components.Animator {
	return components.Anim.Get(c.entry).Animator
}

func (c *Controller) view() components.Visibility {
	return components.View.Get(c.entry).View
}

// Dead reports whether input is currently gated off.
func (c *Controller) Dead() bool {
	return components.Motion.Get(c.entry).Dead
}

func (c *Controller) Position() gamemath.Vec2 {
	return c.body().Position()
}

// OnMoveInput sets horizontal velocity from axis in [-1, 1]. Facing only
// changes for a non-zero axis.
func (c *Controller) OnMoveInput(axis float64) {
	m := components.Motion.Get(c.entry)
	if m.Dead {
		return
	}
	axis = gamemath.ClampSpeed(axis, 1)

	body := c.body()
	v := body.Velocity()
	body.SetVelocity(gamemath.Vec2{X: axis * c.tuning.Movement.MoveSpeed, Y: v.Y})

	if axis > 0 {
		m.Facing = components.FacingRight
	} else if axis < 0 {
		m.Facing = components.FacingLeft
	}

	anim := c.animator()
	anim.SetFloat(components.ParamSpeed, math.Abs(axis))
	anim.SetBool(components.ParamFacingRight, m.Facing == components.FacingRight)
}

// OnJumpInput jumps when grounded. Airborne requests are dropped.
func (c *Controller) OnJumpInput() {
	m := components.Motion.Get(c.entry)
	if m.Dead || !m.Grounded {
		return
	}
	c.body().ApplyImpulse(gamemath.Vec2{Y: c.tuning.Movement.JumpImpulse})
	m.Grounded = false
	m.Jumping = true
	c.animator().SetBool(components.ParamIsJumping, true)
}

// OnFallInput forces a fast fall while airborne.
func (c *Controller) OnFallInput() {
	m := components.Motion.Get(c.entry)
	if m.Dead || m.Grounded {
		return
	}
	body := c.body()
	v := body.Velocity()
	body.SetVelocity(gamemath.Vec2{X: v.X, Y: -c.tuning.Movement.FastFallSpeed})
}

func (c *Controller) OnAttackInput() {
	if c.Dead() {
		return
	}
	c.arena.authority.Attack(c)
}

// OnGroundContact marks the character grounded when the contact normal points
// up steeply enough to be a floor.
func (c *Controller) OnGroundContact(normalY float64) {
	if normalY <= config.GroundNormalThreshold {
		return
	}
	m := components.Motion.Get(c.entry)
	m.Grounded = true
	m.Jumping = false
	c.animator().SetBool(components.ParamIsJumping, false)
}

// Intent builds a swing from the body's current position and facing.
func (c *Controller) Intent() CombatIntent {
	m := components.Motion.Get(c.entry)
	return CombatIntent{
		Attacker:   c.entry.Entity(),
		AttackerID: c.id,
		Origin:     c.body().Position(),
		Facing:     m.Facing,
		Range:      c.tuning.Combat.AttackRange,
		Radius:     c.tuning.Combat.AttackRadius,
		Damage:     c.tuning.Combat.AttackDamage,
		TargetMask: physics.CategoryCharacter,
	}
}

// checkFall applies fall damage once per life when the body drops below the
// death line.
func (c *Controller) checkFall() {
	m := components.Motion.Get(c.entry)
	if !m.FallArmed || m.Dead {
		return
	}
	if c.body().Position().Y >= c.tuning.Combat.DeathY {
		return
	}
	m.FallArmed = false
	// The check is disarmed until respawn, so the hit must always be lethal.
	amount := max(c.tuning.Combat.FallDamage, components.Health.Get(c.entry).Max)
	c.arena.authority.Damage(c.entry, amount)
}

func (c *Controller) markDead() {
	m := components.Motion.Get(c.entry)
	m.Dead = true
	m.Grounded = false
	m.Jumping = false
}

func (c *Controller) revive() {
	m := components.Motion.Get(c.entry)
	m.Dead = false
	m.Grounded = false
	m.Jumping = false
	m.FallArmed = true

	anim := c.animator()
	anim.SetBool(components.ParamFacingRight, m.Facing == components.FacingRight)
	anim.SetBool(components.ParamIsJumping, false)
	anim.SetFloat(components.ParamSpeed, 0)
}
