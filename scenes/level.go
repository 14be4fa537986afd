package scenes

import (
	"fmt"
	"io/fs"

	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/leveldata"
)

// loadLevel reads a TMX map into world units and returns the tuning with the
// map's death line applied.
func loadLevel(fsys fs.FS, name string, t config.Tuning) (leveldata.WorldLevel, config.Tuning, error) {
	data, err := leveldata.LoadCollisionData(fsys, name)
	if err != nil {
		return leveldata.WorldLevel{}, t, fmt.Errorf("load level: %w", err)
	}
	lvl := data.ToWorld(t.Movement.BodyHeight/2, t.Combat.DeathY)
	t.Combat.DeathY = lvl.DeathY
	return lvl, t, nil
}
