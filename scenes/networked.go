package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/network"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/shared/netconfig"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/automoto/doomerang-arena/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/ecs"
)

// snapDistance is how far, in world units, the server may disagree with our
// prediction before the local character is snapped to it.
const snapDistance = 0.5

var ErrDisconnected = errors.New("disconnected from server")

type NetworkOptions struct {
	Address    string
	PlayerName string
	LevelFS    fs.FS
	Level      string
	Tuning     config.Tuning
}

// NetworkedScene mirrors a server-run match. Our own character moves locally
// and is corrected from snapshots; attacks and health come from the server.
type NetworkedScene struct {
	opts       NetworkOptions
	ecs        *ecs.ECS
	netClient  *network.Client
	arena      *systems.Arena
	hud        *ui.Registry
	render     *renderer
	prediction network.PredictionBuffer
	sent       *messages.PlayerInput
	keys       Binding
	once       sync.Once
	err        error
}

func NewNetworkedScene(client *network.Client, opts NetworkOptions) *NetworkedScene {
	return &NetworkedScene{
		opts:      opts,
		netClient: client,
		keys:      PlayerOneKeys,
	}
}

func (ns *NetworkedScene) Update() error {
	ns.once.Do(func() { ns.err = ns.configure() })
	if ns.err != nil {
		return ns.err
	}

	switch ns.netClient.State() {
	case network.StateError:
		ns.netClient.Disconnect()
		return fmt.Errorf("%w: %v", ErrDisconnected, ns.netClient.LastError())
	case network.StateDisconnected:
		ns.netClient.Disconnect()
		return ErrDisconnected
	}

	ns.applyEvents()
	if snap := ns.netClient.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}

	ns.ecs.Update()
	return nil
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecs == nil {
		return
	}
	ns.ecs.Draw(screen)
}

func (ns *NetworkedScene) configure() error {
	lvl, tuning, err := loadLevel(ns.opts.LevelFS, ns.opts.Level, ns.opts.Tuning)
	if err != nil {
		return err
	}

	// Same collision backend as the server so prediction agrees with it.
	space := physics.NewResolvWorld(lvl.Bounds, tuning.Movement.Gravity)
	for _, r := range lvl.Solids {
		space.AddSolid(r)
	}

	ns.hud = ui.NewRegistry()
	ns.arena = systems.NewArena(systems.ArenaOptions{
		Physics:   space,
		Tuning:    tuning,
		Authority: systems.NewClientAuthority(ns.netClient),
		Display:   ns.hud,
	})
	ns.render = newRenderer(ns.arena, lvl, ns.hud)

	w := ecs.NewECS(ns.arena.World)
	w.AddSystem(ns.updateInput)
	w.AddSystem(ns.updateArena)
	w.AddSystem(ns.render.update)
	w.AddRenderer(layerDefault, ns.render.drawLevel)
	w.AddRenderer(layerDefault, ns.render.drawCharacters)
	w.AddRenderer(layerDefault, ns.render.drawHUD)
	ns.ecs = w

	log.Printf("[networked] connecting to %s as %q", ns.opts.Address, ns.opts.PlayerName)
	ns.netClient.Connect(ns.opts.Address, netconfig.ProtocolVersion, ns.opts.PlayerName)
	return nil
}

// applyEvents applies replicated events in the order the server sent them.
func (ns *NetworkedScene) applyEvents() {
	for _, ev := range ns.netClient.DrainEvents() {
		switch msg := ev.(type) {
		case messages.SpawnEvent:
			if _, err := ns.arena.ApplySpawn(msg); err != nil {
				log.Printf("[networked] %v", err)
			}
		case messages.DespawnEvent:
			ns.arena.ApplyDespawn(msg)
		case messages.HealthChanged:
			ns.arena.ApplyHealthChanged(msg)
		case messages.AttackPlayed:
			ns.arena.ApplyAttackPlayed(msg)
		case messages.Respawned:
			ns.arena.ApplyRespawn(msg)
		}
	}
}

func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	myID := ns.netClient.CharacterID()
	for _, cs := range network.DecodeSnapshot(snapshot) {
		id := cs.State.CharacterID
		if !cs.HasPosition {
			continue
		}
		if id != myID {
			ns.arena.SyncPosition(id, cs.Position)
			ns.arena.SyncFacing(id, components.Facing(cs.State.Facing))
			continue
		}
		// Inputs the server has not seen yet are still in flight; only
		// correct when the acknowledged prediction was clearly wrong.
		if ns.prediction.NextSeq() == 0 || cs.State.LastSequence == 0 {
			ns.arena.SyncPosition(id, cs.Position)
			continue
		}
		if ns.prediction.PredictionError(cs.State.LastSequence, cs.Position) > snapDistance {
			ns.arena.SyncPosition(id, cs.Position)
		}
	}
}

func (ns *NetworkedScene) updateInput(_ *ecs.ECS) {
	if ns.netClient.State() != network.StateJoinedGame {
		return
	}
	c, ok := ns.arena.Controller(ns.netClient.CharacterID())
	if !ok || c.Dead() {
		return
	}

	in := ns.keys.read()
	in.apply(c)

	msg := ns.prediction.Next()
	msg.Move, msg.Jump, msg.Fall = in.Move, in.Jump, in.Fall
	if err := ns.netClient.SendInput(msg); err != nil {
		log.Printf("[networked] send input: %v", err)
		return
	}
	ns.sent = &msg
}

// updateArena steps the local simulation and records where the input sent
// this frame left our character.
func (ns *NetworkedScene) updateArena(_ *ecs.ECS) {
	dt := time.Second / time.Duration(ebiten.TPS())
	ns.arena.Update(dt)
	ns.hud.Tick(dt)

	if ns.sent == nil {
		return
	}
	if c, ok := ns.arena.Controller(ns.netClient.CharacterID()); ok {
		ns.prediction.Store(*ns.sent, c.Position())
	}
	ns.sent = nil
}
