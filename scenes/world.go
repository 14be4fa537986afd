package scenes

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/automoto/doomerang-arena/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

type LocalOptions struct {
	LevelFS fs.FS
	Level   string
	Tuning  config.Tuning
	// Watcher and Store are optional. Reloaded tuning is applied to live
	// characters and saved to Store. Body size and respawn delay changes
	// only reach characters spawned afterwards.
	Watcher *config.Watcher
	Store   *config.Store
}

type localPlayer struct {
	id   uint
	name string
	keys Binding
}

// PlatformerScene is two players sharing one keyboard, resolved locally.
type PlatformerScene struct {
	opts    LocalOptions
	ecs     *ecs.ECS
	arena   *systems.Arena
	hud     *ui.Registry
	render  *renderer
	players []localPlayer
	once    sync.Once
	err     error
}

func NewPlatformerScene(opts LocalOptions) *PlatformerScene {
	return &PlatformerScene{
		opts: opts,
		players: []localPlayer{
			{id: 1, name: "Player 1", keys: PlayerOneKeys},
			{id: 2, name: "Player 2", keys: PlayerTwoKeys},
		},
	}
}

func (ps *PlatformerScene) Update() error {
	ps.once.Do(func() { ps.err = ps.configure() })
	if ps.err != nil {
		return ps.err
	}
	ps.ecs.Update()
	return nil
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlatformerScene) configure() error {
	lvl, tuning, err := loadLevel(ps.opts.LevelFS, ps.opts.Level, ps.opts.Tuning)
	if err != nil {
		return err
	}

	space := physics.NewChipmunkWorld(tuning.Movement.Gravity)
	for _, r := range lvl.Solids {
		space.AddSolid(r)
	}

	ps.hud = ui.NewRegistry()
	ps.arena = systems.NewArena(systems.ArenaOptions{
		Physics: space,
		Spawns:  systems.NewSpawnPoints(time.Now().UnixNano(), lvl.Spawns...),
		Tuning:  tuning,
		Display: ps.hud,
	})

	for i, p := range ps.players {
		spec := factory.CharacterSpec{ID: p.id, Name: p.name}
		if n := ps.arena.Spawns.Len(); n > 0 {
			spec.Position = lvl.Spawns[i%n]
		}
		if i%2 == 1 {
			spec.Facing = components.FacingLeft
		}
		if _, err := ps.arena.Spawn(spec); err != nil {
			return fmt.Errorf("spawn %s: %w", p.name, err)
		}
	}

	ps.render = newRenderer(ps.arena, lvl, ps.hud)

	w := ecs.NewECS(ps.arena.World)
	w.AddSystem(ps.applyTuning)
	w.AddSystem(ps.updateInput)
	w.AddSystem(ps.updateArena)
	w.AddSystem(ps.render.update)

	w.AddRenderer(layerDefault, ps.render.drawLevel)
	w.AddRenderer(layerDefault, ps.render.drawCharacters)
	w.AddRenderer(layerDefault, ps.render.drawHUD)
	ps.ecs = w

	log.Printf("[scene] local match on %s with %d players", ps.opts.Level, len(ps.players))
	return nil
}

func (ps *PlatformerScene) applyTuning(_ *ecs.ECS) {
	if ps.opts.Watcher == nil {
		return
	}
	select {
	case t := <-ps.opts.Watcher.Updates:
		t.Combat.DeathY = ps.arena.Tuning.Combat.DeathY
		ps.arena.SetTuning(t)
		if err := ps.opts.Store.Save(t); err != nil {
			log.Printf("[config] %v", err)
		}
	default:
	}
}

func (ps *PlatformerScene) updateInput(_ *ecs.ECS) {
	for _, p := range ps.players {
		if c, ok := ps.arena.Controller(p.id); ok {
			p.keys.read().apply(c)
		}
	}
}

func (ps *PlatformerScene) updateArena(_ *ecs.ECS) {
	dt := time.Second / time.Duration(ebiten.TPS())
	ps.arena.Update(dt)
	ps.hud.Tick(dt)
}
