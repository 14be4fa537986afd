package leveldata

import "github.com/automoto/doomerang-arena/shared/gamemath"

// boundsPadding is extra room, in world units, kept around the map so bodies
// can fall past the death line without leaving the physics space.
const boundsPadding = 8

// WorldLevel is a level in world units with Y pointing up and the map's
// bottom edge at Y=0.
type WorldLevel struct {
	Solids []gamemath.Rect
	Spawns []gamemath.Vec2
	Bounds gamemath.Rect
	DeathY float64
}

// ToWorld converts pixel data to world units. One tile is one world unit.
// lift raises every spawn point, so a body centred on it stands on the floor
// instead of inside it. defaultDeathY applies when the map has no deathY.
func (d *CollisionData) ToWorld(lift, defaultDeathY float64) WorldLevel {
	ppu := float64(d.TileSize)
	if ppu <= 0 {
		ppu = 1
	}
	mapH := float64(d.MapHeight)

	lvl := WorldLevel{DeathY: defaultDeathY}
	if d.HasDeathY {
		lvl.DeathY = d.DeathY
	}

	for _, r := range d.SolidRects {
		lvl.Solids = append(lvl.Solids, gamemath.Rect{
			X: r.X / ppu,
			Y: (mapH - r.Y - r.H) / ppu,
			W: r.W / ppu,
			H: r.H / ppu,
		})
	}
	for _, s := range d.SpawnPoints {
		lvl.Spawns = append(lvl.Spawns, gamemath.Vec2{
			X: s.X / ppu,
			Y: (mapH-s.Y)/ppu + lift,
		})
	}

	w := float64(d.MapWidth) / ppu
	h := mapH / ppu
	bottom := min(0, lvl.DeathY) - boundsPadding
	lvl.Bounds = gamemath.Rect{
		X: -boundsPadding,
		Y: bottom,
		W: w + 2*boundsPadding,
		H: h + boundsPadding - bottom,
	}
	return lvl
}
