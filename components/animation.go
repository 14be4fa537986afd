package components

import "github.com/yohamta/donburi"

// AnimationState is a parameter table animator. Renderers poll it each frame
// and consume triggers as they start the matching clip.
type AnimationState struct {
	floats   map[string]float64
	bools    map[string]bool
	triggers map[string]bool

	// Fired records every trigger set since the last Rebind, in order.
	Fired   []string
	Rebinds int
}

func NewAnimationState() *AnimationState {
	return &AnimationState{
		floats:   make(map[string]float64),
		bools:    make(map[string]bool),
		triggers: make(map[string]bool),
	}
}

func (a *AnimationState) SetFloat(name string, value float64) { a.floats[name] = value }
func (a *AnimationState) SetBool(name string, value bool)     { a.bools[name] = value }
func (a *AnimationState) Float(name string) float64           { return a.floats[name] }
func (a *AnimationState) Bool(name string) bool               { return a.bools[name] }

func (a *AnimationState) SetTrigger(name string) {
	a.triggers[name] = true
	a.Fired = append(a.Fired, name)
}

func (a *AnimationState) ResetTrigger(name string) {
	delete(a.triggers, name)
}

// Pending reports whether a trigger is set and not yet consumed.
func (a *AnimationState) Pending(name string) bool {
	return a.triggers[name]
}

// Consume clears a pending trigger and reports whether it was set.
func (a *AnimationState) Consume(name string) bool {
	if !a.triggers[name] {
		return false
	}
	delete(a.triggers, name)
	return true
}

func (a *AnimationState) Rebind() {
	clear(a.floats)
	clear(a.bools)
	clear(a.triggers)
	a.Fired = a.Fired[:0]
	a.Rebinds++
}

type AnimatorData struct {
	Animator Animator
}

var Anim = donburi.NewComponentType[AnimatorData]()
