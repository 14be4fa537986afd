package components

// Animator parameter and trigger names shared by every character rig.
const (
	ParamSpeed       = "Speed"
	ParamFacingRight = "FacingRight"
	ParamIsJumping   = "IsJumping"

	TriggerAttack = "Attack"
	TriggerHit    = "Hit"
	TriggerDie    = "Die"
)

// Animator drives a character's animation state machine.
type Animator interface {
	SetFloat(name string, value float64)
	SetBool(name string, value bool)
	SetTrigger(name string)
	ResetTrigger(name string)
	// Rebind rebuilds the state machine and samples it at time zero.
	Rebind()
}

// Visibility shows or hides a character's on-screen representation.
type Visibility interface {
	SetVisible(visible bool)
	Visible() bool
}
