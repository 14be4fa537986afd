// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi or the physics backends.
package leveldata

// CollisionData holds all collision-relevant data parsed from a TMX level
// file, in TMX pixel coordinates (Y down).
type CollisionData struct {
	SolidRects  []SolidRect
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
	TileSize    int

	// DeathY is the map's "deathY" property in world units, if set.
	DeathY    float64
	HasDeathY bool
}

// SolidRect represents a solid collision tile.
type SolidRect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
