package systems

import (
	"math/rand"

	"github.com/automoto/doomerang-arena/shared/gamemath"
)

// SpawnPoints is the read-only pool respawns draw from. A single point is
// always returned as is; larger pools are sampled uniformly.
type SpawnPoints struct {
	points []gamemath.Vec2
	rng    *rand.Rand
}

func NewSpawnPoints(seed int64, points ...gamemath.Vec2) *SpawnPoints {
	return &SpawnPoints{
		points: append([]gamemath.Vec2(nil), points...),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *SpawnPoints) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Pick returns a spawn position, or false when the pool is empty.
func (s *SpawnPoints) Pick() (gamemath.Vec2, bool) {
	switch s.Len() {
	case 0:
		return gamemath.Vec2{}, false
	case 1:
		return s.points[0], true
	}
	return s.points[s.rng.Intn(len(s.points))], true
}

// At returns the i-th point, wrapping around. Used to place initial spawns.
func (s *SpawnPoints) At(i int) (gamemath.Vec2, bool) {
	if s.Len() == 0 {
		return gamemath.Vec2{}, false
	}
	return s.points[i%len(s.points)], true
}
