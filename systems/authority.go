package systems

import (
	"log"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
)

// Authority decides where combat outcomes are computed.
type Authority interface {
	// Attack handles an attack input or intent from c.
	Attack(c *Controller)
	// Damage applies amount to target if this process owns outcomes.
	Damage(target *donburi.Entry, amount int)
	// Attach subscribes c to the notifications this mode reacts to and
	// returns the matching teardown.
	Attach(c *Controller) (detach func())
	// Respawned runs after the scheduler brought c back at pos.
	Respawned(c *Controller, pos gamemath.Vec2)
	// Networked characters carry replicated health.
	Networked() bool
	// Owner reports whether this process is the source of truth.
	Owner() bool
}

// Uplink carries client-to-authority messages.
type Uplink interface {
	SendAttackIntent() error
	SendInput(in messages.PlayerInput) error
}

// Downlink carries authority-to-observer messages. Implementations deliver to
// every observer except the authority itself, in issue order.
type Downlink interface {
	BroadcastHealth(msg messages.HealthChanged)
	BroadcastAttackPlayed(msg messages.AttackPlayed)
	BroadcastRespawn(msg messages.Respawned)
}

// resolveAttack runs c's swing through the detector and damages every target.
func resolveAttack(c *Controller) []donburi.Entity {
	a := c.arena
	intent := c.Intent()
	targets := a.Detector.Resolve(intent)
	for _, e := range targets {
		if !a.World.Valid(e) {
			continue
		}
		target := a.World.Entry(e)
		if !target.HasComponent(components.Health) {
			continue
		}
		components.Health.Get(target).ApplyDamage(intent.Damage)
	}
	c.animator().SetTrigger(components.TriggerAttack)
	return targets
}

func applyDamage(target *donburi.Entry, amount int) {
	if target == nil || !target.Valid() || !target.HasComponent(components.Health) {
		return
	}
	components.Health.Get(target).ApplyDamage(amount)
}

// LocalAuthority resolves everything in-process.
type LocalAuthority struct{}

func NewLocalAuthority() *LocalAuthority { return &LocalAuthority{} }

func (LocalAuthority) Networked() bool { return false }
func (LocalAuthority) Owner() bool     { return true }

func (LocalAuthority) Attack(c *Controller) {
	resolveAttack(c)
}

func (LocalAuthority) Damage(target *donburi.Entry, amount int) {
	applyDamage(target, amount)
}

func (LocalAuthority) Respawned(*Controller, gamemath.Vec2) {}

func (LocalAuthority) Attach(c *Controller) func() {
	a := c.arena
	hp := components.Health.Get(c.entry)
	id := hp.Subscribe(components.HealthListener{
		OnChanged: func(ch components.HealthChange) {
			a.updateDisplay(c.id, ch.Current, ch.Max)
		},
		OnDeath: func() {
			c.markDead()
			a.Scheduler.HandleDeath(c.entry)
		},
	})
	return func() {
		if c.entry.Valid() {
			components.Health.Get(c.entry).Unsubscribe(id)
		}
	}
}

// ServerAuthority resolves outcomes and replicates them through a Downlink.
type ServerAuthority struct {
	down Downlink
}

func NewServerAuthority(down Downlink) *ServerAuthority {
	return &ServerAuthority{down: down}
}

func (*ServerAuthority) Networked() bool { return true }
func (*ServerAuthority) Owner() bool     { return true }

// Attack recomputes the swing from the attacker's body on this process; the
// sender's own idea of its position is never consulted.
func (s *ServerAuthority) Attack(c *Controller) {
	resolveAttack(c)
	if s.down != nil {
		s.down.BroadcastAttackPlayed(messages.AttackPlayed{CharacterID: c.id})
	}
}

func (*ServerAuthority) Damage(target *donburi.Entry, amount int) {
	applyDamage(target, amount)
}

// Respawned tells observers where c reappeared. The owning client predicts
// its own movement and would otherwise keep its pre-death position.
func (s *ServerAuthority) Respawned(c *Controller, pos gamemath.Vec2) {
	if s.down != nil {
		s.down.BroadcastRespawn(messages.Respawned{CharacterID: c.id, X: pos.X, Y: pos.Y})
	}
}

func (s *ServerAuthority) Attach(c *Controller) func() {
	hpID := components.Health.Get(c.entry).Subscribe(components.HealthListener{
		OnChanged: func(ch components.HealthChange) {
			rh := components.ReplicatedHealth.Get(c.entry)
			prev := rh.Value
			if err := rh.Set(ch.Current); err != nil {
				log.Printf("[combat] character %d: %v", c.id, err)
				return
			}
			if prev == ch.Current || s.down == nil {
				return
			}
			s.down.BroadcastHealth(messages.HealthChanged{
				CharacterID: c.id,
				Previous:    prev,
				Current:     ch.Current,
				Max:         ch.Max,
				Seq:         rh.Seq(),
			})
		},
	})
	rhID := subscribeReplicated(c, true)

	return func() {
		if !c.entry.Valid() {
			return
		}
		components.Health.Get(c.entry).Unsubscribe(hpID)
		components.ReplicatedHealth.Get(c.entry).Unsubscribe(rhID)
	}
}

// ClientAuthority forwards attacks to the server and mirrors its outcomes.
// Movement stays local for responsiveness.
type ClientAuthority struct {
	up Uplink
}

func NewClientAuthority(up Uplink) *ClientAuthority {
	return &ClientAuthority{up: up}
}

func (*ClientAuthority) Networked() bool { return true }
func (*ClientAuthority) Owner() bool     { return false }

func (a *ClientAuthority) Attack(c *Controller) {
	if a.up == nil {
		return
	}
	if err := a.up.SendAttackIntent(); err != nil {
		log.Printf("[combat] send attack intent: %v", err)
	}
}

// Damage is ignored: mirrors only learn about damage from the server.
func (*ClientAuthority) Damage(*donburi.Entry, int) {}

func (*ClientAuthority) Respawned(*Controller, gamemath.Vec2) {}

func (*ClientAuthority) Attach(c *Controller) func() {
	id := subscribeReplicated(c, false)
	return func() {
		if c.entry.Valid() {
			components.ReplicatedHealth.Get(c.entry).Unsubscribe(id)
		}
	}
}

// subscribeReplicated wires the observer every networked process runs on
// replicated health. Reaching zero starts the death sequence; leaving zero
// revives. Only the owner schedules the respawn.
func subscribeReplicated(c *Controller, owner bool) int {
	a := c.arena
	return components.ReplicatedHealth.Get(c.entry).Subscribe(func(prev, cur int) {
		rh := components.ReplicatedHealth.Get(c.entry)
		a.updateDisplay(c.id, cur, rh.Max)
		if !owner && cur < prev {
			c.animator().SetTrigger(components.TriggerHit)
		}

		switch {
		case cur == 0 && prev > 0:
			c.markDead()
			if owner {
				a.Scheduler.HandleDeath(c.entry)
				return
			}
			c.animator().SetTrigger(components.TriggerDie)
			c.body().SetSimulationEnabled(false)
			c.view().SetVisible(false)
		case prev == 0 && cur > 0:
			if !owner {
				body := c.body()
				body.SetSimulationEnabled(true)
				body.SetVelocity(gamemath.Vec2{})
				body.SetAngularVelocity(0)
				c.animator().Rebind()
				c.view().SetVisible(true)
			}
			c.revive()
		}
	})
}
