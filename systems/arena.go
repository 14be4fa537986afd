package systems

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/yohamta/donburi"
)

// ErrDuplicateCharacter is returned by Spawn for an id that is already live.
var ErrDuplicateCharacter = errors.New("character already spawned")

// HealthDisplay is the on-screen health readout. Characters are registered on
// spawn and unregistered on despawn.
type HealthDisplay interface {
	Register(id uint, current, maxHP int)
	Update(id uint, current, maxHP int)
	Unregister(id uint)
}

type ArenaOptions struct {
	Physics   physics.World
	Spawns    *SpawnPoints
	Tuning    config.Tuning
	Authority Authority
	// Display is optional.
	Display HealthDisplay
}

// Arena owns the characters of one match and everything that acts on them.
type Arena struct {
	World     donburi.World
	Physics   physics.World
	Detector  HitDetector
	Scheduler *RespawnScheduler
	Spawns    *SpawnPoints
	Tuning    config.Tuning

	authority Authority
	display   HealthDisplay

	controllers map[donburi.Entity]*Controller
	byID        map[uint]*Controller
	order       []*Controller
}

func NewArena(opts ArenaOptions) *Arena {
	if opts.Authority == nil {
		opts.Authority = NewLocalAuthority()
	}
	if opts.Display == nil {
		log.Printf("[combat] no health display attached, health bars disabled")
	}

	w := donburi.NewWorld()
	a := &Arena{
		World:       w,
		Physics:     opts.Physics,
		Detector:    HitDetector{Physics: opts.Physics},
		Scheduler:   NewRespawnScheduler(w, opts.Spawns, opts.Tuning.Respawn.Delay()),
		Spawns:      opts.Spawns,
		Tuning:      opts.Tuning,
		authority:   opts.Authority,
		display:     opts.Display,
		controllers: make(map[donburi.Entity]*Controller),
		byID:        make(map[uint]*Controller),
	}
	a.Scheduler.OnRespawn = a.onRespawn
	a.Physics.SetContactListener(func(b physics.Body, normalY float64) {
		if c, ok := a.controllers[b.Owner()]; ok {
			c.OnGroundContact(normalY)
		}
	})
	return a
}

func (a *Arena) Authority() Authority { return a.authority }

// SetTuning swaps the tuning for every character. Body dimensions and the
// respawn delay only apply to characters spawned afterwards.
func (a *Arena) SetTuning(t config.Tuning) {
	a.Tuning = t
	for _, c := range a.order {
		c.tuning = t
	}
}

// Spawn creates a character and wires its observers.
func (a *Arena) Spawn(spec factory.CharacterSpec) (*Controller, error) {
	if _, ok := a.byID[spec.ID]; ok {
		return nil, fmt.Errorf("spawn %d: %w", spec.ID, ErrDuplicateCharacter)
	}
	spec.Networked = a.authority.Networked()
	spec.Authority = a.authority.Owner()

	entry := factory.CreateCharacter(a.World, a.Physics, a.Tuning, spec)
	c := &Controller{
		arena:  a,
		entry:  entry,
		id:     spec.ID,
		tuning: a.Tuning,
	}
	c.detach = a.authority.Attach(c)

	a.controllers[entry.Entity()] = c
	a.byID[spec.ID] = c
	a.order = append(a.order, c)

	cur, maxHP := a.healthOf(c)
	if a.display != nil {
		a.display.Register(spec.ID, cur, maxHP)
	}
	if spec.Networked && !spec.Authority && cur == 0 {
		// Joined while this character was dead.
		c.markDead()
		c.body().SetSimulationEnabled(false)
		c.view().SetVisible(false)
	}
	return c, nil
}

// Despawn removes a character. Any pending respawn is cancelled first so it
// cannot run against a removed entity.
func (a *Arena) Despawn(id uint) bool {
	c, ok := a.byID[id]
	if !ok {
		return false
	}
	e := c.entry.Entity()
	a.Scheduler.Cancel(e)
	if c.detach != nil {
		c.detach()
	}
	if a.display != nil {
		a.display.Unregister(id)
	}
	a.Physics.RemoveBody(c.body())
	a.World.Remove(e)

	delete(a.controllers, e)
	delete(a.byID, id)
	for i, other := range a.order {
		if other == c {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

func (a *Arena) Controller(id uint) (*Controller, bool) {
	c, ok := a.byID[id]
	return c, ok
}

// Controllers returns every live controller in spawn order.
func (a *Arena) Controllers() []*Controller {
	return append([]*Controller(nil), a.order...)
}

// Update steps physics, checks the death line and advances respawns.
func (a *Arena) Update(dt time.Duration) {
	a.Physics.Step(dt.Seconds())
	if a.authority.Owner() {
		for _, c := range a.Controllers() {
			c.checkFall()
		}
	}
	a.Scheduler.Tick(dt)
}

// ResolveAttack handles an attack from id. On the server this is the entry
// point for a client's AttackIntent.
func (a *Arena) ResolveAttack(id uint) bool {
	c, ok := a.byID[id]
	if !ok {
		log.Printf("[combat] attack from unknown character %d", id)
		return false
	}
	c.OnAttackInput()
	return true
}

func (a *Arena) ApplyInput(id uint, in messages.PlayerInput) bool {
	c, ok := a.byID[id]
	if !ok {
		return false
	}
	c.OnMoveInput(in.Move)
	if in.Jump {
		c.OnJumpInput()
	}
	if in.Fall {
		c.OnFallInput()
	}
	return true
}

// ApplyHealthChanged applies an authority health write on a mirror.
func (a *Arena) ApplyHealthChanged(msg messages.HealthChanged) bool {
	c, ok := a.byID[msg.CharacterID]
	if !ok || !c.entry.HasComponent(components.ReplicatedHealth) {
		return false
	}
	return components.ReplicatedHealth.Get(c.entry).Receive(msg.Previous, msg.Current, msg.Seq)
}

// ApplyAttackPlayed plays another process's resolved attack.
func (a *Arena) ApplyAttackPlayed(msg messages.AttackPlayed) bool {
	c, ok := a.byID[msg.CharacterID]
	if !ok {
		return false
	}
	c.animator().SetTrigger(components.TriggerAttack)
	return true
}

// ApplyRespawn moves a mirrored character to where the authority respawned it.
func (a *Arena) ApplyRespawn(msg messages.Respawned) bool {
	c, ok := a.byID[msg.CharacterID]
	if !ok {
		return false
	}
	body := c.body()
	body.SetPosition(gamemath.Vec2{X: msg.X, Y: msg.Y})
	body.SetVelocity(gamemath.Vec2{})
	return true
}

func (a *Arena) ApplySpawn(msg messages.SpawnEvent) (*Controller, error) {
	return a.Spawn(factory.CharacterSpec{
		ID:        msg.CharacterID,
		Name:      msg.Name,
		Position:  gamemath.Vec2{X: msg.X, Y: msg.Y},
		Facing:    components.Facing(msg.Facing),
		Health:    msg.Health,
		HealthSeq: msg.HealthSeq,
	})
}

func (a *Arena) ApplyDespawn(msg messages.DespawnEvent) bool {
	return a.Despawn(msg.CharacterID)
}

// SyncPosition snaps a mirrored character to a replicated position.
func (a *Arena) SyncPosition(id uint, pos gamemath.Vec2) {
	if c, ok := a.byID[id]; ok && !c.Dead() {
		c.body().SetPosition(pos)
	}
}

// SyncFacing applies a replicated facing to a mirrored character.
func (a *Arena) SyncFacing(id uint, f components.Facing) {
	c, ok := a.byID[id]
	if !ok || (f != components.FacingLeft && f != components.FacingRight) {
		return
	}
	components.Motion.Get(c.entry).Facing = f
	c.animator().SetBool(components.ParamFacingRight, f == components.FacingRight)
}

// SpawnEventFor describes a live character for a newly joined observer.
func (a *Arena) SpawnEventFor(id uint) (messages.SpawnEvent, bool) {
	c, ok := a.byID[id]
	if !ok {
		return messages.SpawnEvent{}, false
	}
	pos := c.Position()
	cur, _ := a.healthOf(c)
	ev := messages.SpawnEvent{
		CharacterID: id,
		Name:        components.Character.Get(c.entry).Name,
		X:           pos.X,
		Y:           pos.Y,
		Facing:      int(components.Motion.Get(c.entry).Facing),
		Health:      cur,
	}
	if c.entry.HasComponent(components.ReplicatedHealth) {
		ev.HealthSeq = components.ReplicatedHealth.Get(c.entry).Seq()
	}
	return ev, true
}

func (a *Arena) healthOf(c *Controller) (int, int) {
	if c.entry.HasComponent(components.ReplicatedHealth) {
		rh := components.ReplicatedHealth.Get(c.entry)
		return rh.Value, rh.Max
	}
	hp := components.Health.Get(c.entry)
	return hp.Current, hp.Max
}

func (a *Arena) updateDisplay(id uint, current, maxHP int) {
	if a.display != nil {
		a.display.Update(id, current, maxHP)
	}
}

func (a *Arena) onRespawn(entry *donburi.Entry, pos gamemath.Vec2, teleported bool) {
	c, ok := a.controllers[entry.Entity()]
	if !ok {
		return
	}
	c.revive()
	a.authority.Respawned(c, pos)
}
