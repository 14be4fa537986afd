package core

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/physics"
	"github.com/automoto/doomerang-arena/shared/leveldata"
	"github.com/automoto/doomerang-arena/systems"
)

// ServerLevel holds the server's collision space and spawn data for a level.
type ServerLevel struct {
	Name   string
	World  leveldata.WorldLevel
	Space  *physics.ResolvWorld
	Spawns *systems.SpawnPoints
}

// LoadServerLevel parses a TMX map and builds its collision space. Spawn
// points are lifted by half a body height so characters appear standing on
// the marker. A deathY map property overrides the tuning's death line.
func LoadServerLevel(fsys fs.FS, name string, t config.Tuning, seed int64) (*ServerLevel, error) {
	data, err := leveldata.LoadCollisionData(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	return NewServerLevel(name, data, t, seed), nil
}

func NewServerLevel(name string, data *leveldata.CollisionData, t config.Tuning, seed int64) *ServerLevel {
	wl := data.ToWorld(t.Movement.BodyHeight/2, t.Combat.DeathY)

	space := physics.NewResolvWorld(wl.Bounds, t.Movement.Gravity)
	for _, r := range wl.Solids {
		space.AddSolid(r)
	}

	log.Printf("[server] loaded level %s: %d solids, %d spawn points, death line %.1f",
		name, len(wl.Solids), len(wl.Spawns), wl.DeathY)
	if len(wl.Spawns) == 0 {
		log.Printf("[server] level %s has no spawn points, characters respawn in place", name)
	}

	return &ServerLevel{
		Name:   name,
		World:  wl,
		Space:  space,
		Spawns: systems.NewSpawnPoints(seed, wl.Spawns...),
	}
}

// Tuning returns t with the level's death line applied.
func (l *ServerLevel) Tuning(t config.Tuning) config.Tuning {
	t.Combat.DeathY = l.World.DeathY
	return t
}
