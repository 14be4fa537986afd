package components

import "github.com/yohamta/donburi"

// HealthChange is delivered to OnChanged listeners after every mutation.
type HealthChange struct {
	Previous int
	Current  int
	Max      int
}

// HealthListener is a pair of optional callbacks. OnDeath has no payload.
type HealthListener struct {
	OnChanged func(HealthChange)
	OnDeath   func()
}

type healthSub struct {
	id int
	l  HealthListener
}

// HealthData owns one character's health. Dead is true exactly when Current
// is zero, and OnDeath fires only on the transition into that state.
type HealthData struct {
	Current int
	Max     int
	Dead    bool

	Anim Animator
	View Visibility

	subs   []healthSub
	nextID int
}

func NewHealth(maxHealth int, anim Animator, view Visibility) HealthData {
	return HealthData{
		Current: maxHealth,
		Max:     maxHealth,
		Anim:    anim,
		View:    view,
	}
}

func (h *HealthData) IsAlive() bool {
	return !h.Dead
}

// ApplyDamage lowers health by amount, clamped at zero. Negative amounts count
// as zero. Damage to a dead character is ignored.
func (h *HealthData) ApplyDamage(amount int) {
	if h.Dead {
		return
	}
	if amount < 0 {
		amount = 0
	}
	prev := h.Current
	h.Current = max(0, h.Current-amount)

	if h.Anim != nil {
		h.Anim.SetTrigger(TriggerHit)
	}
	lethal := h.Current == 0
	if lethal {
		h.Dead = true
		if h.Anim != nil {
			h.Anim.SetTrigger(TriggerDie)
		}
	}

	h.notifyChanged(prev)
	if lethal {
		h.notifyDeath()
	}
}

// Reset restores full health, clears hit/die cues and shows the character if
// it was hidden.
func (h *HealthData) Reset() {
	prev := h.Current
	h.Dead = false
	h.Current = h.Max

	if h.Anim != nil {
		h.Anim.ResetTrigger(TriggerHit)
		h.Anim.ResetTrigger(TriggerDie)
	}
	if h.View != nil && !h.View.Visible() {
		h.View.SetVisible(true)
	}
	h.notifyChanged(prev)
}

// Subscribe registers l and returns an id for Unsubscribe. Listeners run in
// subscription order.
func (h *HealthData) Subscribe(l HealthListener) int {
	h.nextID++
	h.subs = append(h.subs, healthSub{id: h.nextID, l: l})
	return h.nextID
}

func (h *HealthData) Unsubscribe(id int) bool {
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (h *HealthData) subscribed(id int) bool {
	for _, s := range h.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Listeners may unsubscribe (themselves or others) while being notified, so
// iterate over a snapshot and skip anyone removed mid-dispatch.
func (h *HealthData) notifyChanged(prev int) {
	change := HealthChange{Previous: prev, Current: h.Current, Max: h.Max}
	for _, s := range append([]healthSub(nil), h.subs...) {
		if s.l.OnChanged != nil && h.subscribed(s.id) {
			s.l.OnChanged(change)
		}
	}
}

func (h *HealthData) notifyDeath() {
	for _, s := range append([]healthSub(nil), h.subs...) {
		if s.l.OnDeath != nil && h.subscribed(s.id) {
			s.l.OnDeath()
		}
	}
}

var Health = donburi.NewComponentType[HealthData]()
